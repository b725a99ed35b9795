// Package database handles database connections.
//
// It provides a thin wrapper around GORM to configure MySQL (production) and
// sqlite (tests, single-node) connections based on the application's
// configuration. Two tables live here: the first-party `books` catalog owned
// by the catalog feature, and the `cache_entries` table owned by the cache
// feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
