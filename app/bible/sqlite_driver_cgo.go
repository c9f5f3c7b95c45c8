//go:build native_sqlite
// +build native_sqlite

package bible

import (
	_ "github.com/mattn/go-sqlite3"
)

const SQLiteDriverName = "sqlite3"
