// Package database handles connections to the catalog database.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL or SQLite
// connections from the application's configuration. The catalog models themselves
// live in the feature packages; this package only opens, tunes and migrates.
//
// # Connect
//
// Connect opens the configured dialect, tunes the connection pool and pings the
// server within the configured timeout so a misconfigured database fails fast.
//
// # Helpers
//
//   - Refs and Upsert write one level of a child collection, updating rows that
//     already carry a primary key and inserting the others.
//   - GetTableColumns reports the live columns of a table for schema checks.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.Migrate(db, &movie.Movie{}, &show.Show{})
package database
