// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL or SQLite from the application's
// configuration. SQLite is the default so a single binary can persist scenes
// without a server; MySQL is used for shared deployments.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies the connection
// timeouts and pings the database before returning it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the integrity server check compare
// the live scenes table against the columns the scene store expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "scenes", []string{"name", "body"})
package database
