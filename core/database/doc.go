// Package database opens the SQL connection used by the catalog backend.
//
// Connect wraps GORM and supports MySQL (production) and SQLite (local runs
// and tests, including ":memory:").
//
// GetTableColumns inspects a table's columns through SHOW COLUMNS on MySQL
// or PRAGMA table_info on SQLite. The catalog store uses it to verify that
// its tables carry every column it needs before serving.
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "relay_attributes")
package database
