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

// Package database provides the local SQLite store of the chronicle cli
package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	// sqlite driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SQLCommon is the set of queries shared by a connection and a transaction
type SQLCommon interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// DB wraps a connection, optionally inside a transaction
type DB struct {
	Conn *sql.DB
	Tx   *sql.Tx
}

// Open opens a connection to the database at the given path. The path may
// also be a sqlite URI such as an in-memory database.
func Open(p string) (*DB, error) {
	if !strings.HasPrefix(p, "file:") {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, errors.Wrapf(err, "creating database directory for %s", p)
		}
	}

	conn, err := sql.Open("sqlite3", p)
	if err != nil {
		return nil, errors.Wrap(err, "opening db connection")
	}

	// a single connection serializes writers, including the background
	// history writes
	conn.SetMaxOpenConns(1)

	return &DB{Conn: conn}, nil
}

func (d *DB) q() SQLCommon {
	if d.Tx != nil {
		return d.Tx
	}

	return d.Conn
}

// Begin starts a transaction and returns a DB bound to it
func (d *DB) Begin() (*DB, error) {
	tx, err := d.Conn.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "beginning a transaction")
	}

	return &DB{Conn: d.Conn, Tx: tx}, nil
}

// Commit commits the transaction
func (d *DB) Commit() error {
	if d.Tx == nil {
		return errors.New("not in a transaction")
	}

	return d.Tx.Commit()
}

// Rollback rolls back the transaction
func (d *DB) Rollback() error {
	if d.Tx == nil {
		return errors.New("not in a transaction")
	}

	return d.Tx.Rollback()
}

// Exec executes a query without returning rows
func (d *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return d.q().Exec(query, args...)
}

// Query executes a query that returns rows
func (d *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return d.q().Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (d *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return d.q().QueryRow(query, args...)
}

// Close closes the connection
func (d *DB) Close() error {
	return d.Conn.Close()
}
