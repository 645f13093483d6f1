package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// ReadConfig reads a json5 configuration file, `name` should come with a file extension.
// The following files are merged, where higher number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// os.ErrNotExist is returned when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	return out, MergeConfig(name, &out)
}

// MergeConfig is ReadConfig but it merges the files on top of the values
// already present in `out`, so defaults can be filled in beforehand.
func MergeConfig[T any](name string, out *T) error {
	allNotFound := true

	dirname := filepath.Dir(name)
	prefixname, ext := splitExt(filepath.Base(name))

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(defaultFile) > 0 {
		err = mergeJson5(defaultFile, out)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		allNotFound = false
	}

	localFilepath := filepath.Join(
		dirname,
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
	localFile, err := os.ReadFile(localFilepath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(localFile) > 0 {
		err = mergeJson5(localFile, out)
		if err != nil {
			return fmt.Errorf("%s: %w", localFilepath, err)
		}
		slog.Debug("merging config with local overrides", "local", localFilepath)
		allNotFound = false
	}

	if allNotFound {
		return os.ErrNotExist
	}
	return nil
}

func mergeJson5[T any](contents []byte, out *T) error {
	var override T
	err := json5.Unmarshal(contents, &override)
	if err != nil {
		return err
	}
	return mergo.Merge(out, override, mergo.WithOverride)
}

// MergeRecursively is MergeConfig but it goes up the filesystem from the
// working directory until the root to find a configuration file matching the
// name. Absolute names are read as they are.
func MergeRecursively[T any](name string, out *T) error {
	if filepath.IsAbs(name) {
		return MergeConfig(name, out)
	}

	current, err := os.Getwd()
	if err != nil {
		return err
	}

	for {
		err := MergeConfig(filepath.Join(current, name), out)
		if err == nil {
			return nil
		}
		if !os.IsNotExist(err) {
			return err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return os.ErrNotExist
		}
		current = parent
	}
}
