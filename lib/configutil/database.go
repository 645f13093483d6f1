package configutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Database configures where scraped results are stored. `File` opens a local
// sqlite database, `Url` opens a remote libsql database and takes precedence.
type Database struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// OpenDB opens the configured database and applies `schema` to it.
func (config Database) OpenDB(schema string) (*sql.DB, error) {
	db, err := config.open()
	if err != nil {
		return nil, err
	}
	if schema == "" {
		return db, nil
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func (config Database) open() (*sql.DB, error) {
	if config.Url != "" {
		link, err := url.Parse(config.Url)
		if err != nil {
			return nil, err
		}
		if config.AuthToken != "" {
			query := link.Query()
			query.Set("authToken", config.AuthToken)
			link.RawQuery = query.Encode()
		}
		return sql.Open("libsql", link.String())
	}

	if config.File == "" {
		return nil, fmt.Errorf("a database file or url was not specified")
	}

	if config.File != ":memory:" && !strings.HasPrefix(config.File, "file:") {
		err := os.MkdirAll(filepath.Dir(config.File), 0777)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite does not handle concurrent writers, funnel everything through one connection
	db.SetMaxOpenConns(1)
	if config.File != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
