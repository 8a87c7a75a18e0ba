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

// Package migrate applies the schema migrations of the local database
package migrate

import (
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

// TableName is the table in which applied migrations are recorded
const TableName = "migrations"

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: database.MigrationFiles,
		Root:       "migrations",
	}
}

// Run applies all pending migrations and returns how many were applied
func Run(db *database.DB) (int, error) {
	ms := migrate.MigrationSet{TableName: TableName}

	n, err := ms.Exec(db.Conn, "sqlite3", source(), migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "running migrations")
	}

	log.Debug("applied %d local migrations\n", n)

	return n, nil
}

// Pending returns the number of migrations not yet applied
func Pending(db *database.DB) (int, error) {
	ms := migrate.MigrationSet{TableName: TableName}

	planned, _, err := ms.PlanMigration(db.Conn, "sqlite3", source(), migrate.Up, 0)
	if err != nil {
		return 0, errors.Wrap(err, "planning migrations")
	}

	return len(planned), nil
}
