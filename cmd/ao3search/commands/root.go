package commands

import (
	"ao3search/internal/components/telemetry"
	"ao3search/lib/configutil"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg  Config
	otel telemetry.Otel
	tel  telemetry.API
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ao3search.json5", "The configuration file to read, a <name>.local.json5 next to it overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

var rootCmd = &cobra.Command{
	Use:           "ao3search",
	Short:         "ao3search searches archiveofourown.org and extracts the works it finds.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(os.Stderr, verbose)

		cfg = defaultConfig()
		err := readConfig(cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}

		otel, err = telemetry.Setup(cmd.Context(), "ao3search", cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		tel = telemetry.NewSlogAPI()
		return nil
	},
}

// readConfig merges the config file over the defaults. The default name is
// looked up from the working directory upwards and may be absent, a path
// given with --config must exist.
func readConfig(explicit bool) error {
	if explicit {
		err := configutil.MergeConfig(configPath, &cfg)
		if err != nil {
			return fmt.Errorf("read config %s: %w", configPath, err)
		}
		return nil
	}
	err := configutil.MergeRecursively(configPath, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "name", configPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// execute runs the command line and flushes telemetry afterwards, failed
// commands included.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	shutdownErr := otel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}
	otel = telemetry.Otel{}

	return err
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
