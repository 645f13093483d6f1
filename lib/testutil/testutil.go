package testutil

import (
	"ao3search/lib/configutil"
	"database/sql"
	"os"
	"testing"
)

// OpenDB opens an in-memory sqlite database with `schema` applied, it is
// closed when the test finishes.
func OpenDB(t testing.TB, schema string) *sql.DB {
	t.Helper()

	db, err := configutil.Database{File: ":memory:"}.OpenDB(schema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// ReadFile returns the contents of a fixture, failing the test if it cannot
// be read.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return contents
}
