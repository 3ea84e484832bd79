package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens the SQLite file at path. A single connection keeps writers from
// tripping over SQLITE_BUSY.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
