// Package testutil provides shared test helpers for record stores and the
// query log database.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/torii/internal/querylog"
	"github.com/starford/torii/internal/records"
)

// TestQueryLog creates a temporary SQLite query log that is automatically cleaned up.
func TestQueryLog(t *testing.T) *querylog.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "torii-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := querylog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SampleHolder returns a holder serving the bundled five-record dataset.
func SampleHolder(t *testing.T) *records.Holder {
	t.Helper()
	return records.NewHolder(records.Default())
}
