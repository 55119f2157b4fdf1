// Package db holds the SQLite registry of provisioned reference tags. The
// controller itself persists nothing; only the provisioning command writes
// here, so an operator can audit which reference tags exist.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS provisioned_tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL,
	comfort_index REAL NOT NULL,
	provisioned_at TEXT NOT NULL
);
`

// Open opens (creating if necessary) the tag registry at path.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return conn, nil
}
