// Package database handles the optional MySQL connection for run history.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The database is strictly
// optional: a checker run degrades to no history recording when the
// connection fails or recording is disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("History database unavailable", zap.Error(err))
//	}
package database
