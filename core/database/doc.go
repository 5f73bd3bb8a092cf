// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure the inventory store
// connection from the application's configuration.
//
// # Connect
//
// Connect establishes a connection using the configured driver. MySQL is the
// deployment driver; SQLite (":memory:") backs the test suites so service
// and handler tests can run against a real database without a server.
//
// # Schema Inspection
//
// TableColumns and MissingColumns allow the verify command to confirm that
// the items table exists and carries the columns the repository expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "items", []string{"id", "name"})
package database
