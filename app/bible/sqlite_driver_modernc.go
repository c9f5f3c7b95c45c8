//go:build !native_sqlite
// +build !native_sqlite

package bible

import (
	_ "modernc.org/sqlite"
)

const SQLiteDriverName = "sqlite"
