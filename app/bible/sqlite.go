package bible

import (
	"database/sql"
	"log/slog"
)

// NewSQLiteDB opens the verse database. sql.Open itself barely touches the
// file; callers should Ping to find out whether the store is usable.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	slog.Info("opening SQLite DB", "dbPath", dbPath)
	db, err := sql.Open(SQLiteDriverName, dbPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}
