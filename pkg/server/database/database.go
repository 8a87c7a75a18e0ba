/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package database defines the server models and manages the connection to
// the relational store
package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite is the embedded sqlite driver
	DriverSQLite = "sqlite"
	// DriverPostgres is the postgres driver
	DriverPostgres = "postgres"
)

// DriverOf returns the driver that serves the given data source name. URLs
// with a postgres scheme and key=value DSNs naming a host are postgres
// connections, anything else is a sqlite file path.
func DriverOf(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	if strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname=") {
		return DriverPostgres
	}

	return DriverSQLite
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// getDBLogLevel maps the server log level to the gorm log level. The gorm
// query log is only printed in debug mode.
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

func dialector(dsn string) (gorm.Dialector, error) {
	if DriverOf(dsn) == DriverPostgres {
		return postgres.Open(dsn), nil
	}

	if !isMemory(dsn) {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating database directory at %s", dir)
		}
	}

	return sqlite.Open(dsn), nil
}

// Open connects to the database at dsn
func Open(dsn, logLevel string) (*gorm.DB, error) {
	d, err := dialector(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(getDBLogLevel(logLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}

	return db, nil
}

// InitSchema migrates the database schema to reflect the latest model
// definitions
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&Event{},
		&Image{},
	); err != nil {
		return errors.Wrap(err, "auto migrating models")
	}

	return nil
}

// Init opens the database and brings its schema up to date
func Init(dsn, logLevel string) (*gorm.DB, error) {
	db, err := Open(dsn, logLevel)
	if err != nil {
		return nil, err
	}

	if err := InitSchema(db); err != nil {
		Close(db)
		return nil, err
	}
	if err := Migrate(db); err != nil {
		Close(db)
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}

// Close closes the connection pool of db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting the connection pool")
	}

	return sqlDB.Close()
}
