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

package database

import (
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chronicle/chronicle/pkg/server/database/migrations"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrInvalidMigrationName is returned for a file not named NNN-description.sql
var ErrInvalidMigrationName = errors.New("invalid migration filename")

var migrationName = regexp.MustCompile(`^(\d{3})-([a-z0-9][a-z0-9-]*)\.sql$`)

type migration struct {
	filename string
	version  int
}

func parseMigrationName(name string) (migration, error) {
	m := migrationName.FindStringSubmatch(name)
	if m == nil {
		return migration{}, errors.Wrapf(ErrInvalidMigrationName, "'%s'", name)
	}

	v, err := strconv.Atoi(m[1])
	if err != nil {
		return migration{}, errors.Wrapf(ErrInvalidMigrationName, "'%s'", name)
	}

	return migration{filename: name, version: v}, nil
}

// readMigrations returns the migrations of fsys sorted by version
func readMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "reading migration directory")
	}

	ret := []migration{}
	seen := map[int]string{}
	for _, e := range entries {
		m, err := parseMigrationName(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[m.version]; ok {
			return nil, errors.Errorf("duplicate migration version %d: %s and %s", m.version, prev, m.filename)
		}
		seen[m.version] = m.filename

		ret = append(ret, m)
	}

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].version < ret[j].version
	})

	return ret, nil
}

// Migrate applies the embedded migrations that have not run yet
func Migrate(db *gorm.DB) error {
	return migrate(db, migrations.Files)
}

func apply(db *gorm.DB, fsys fs.FS, m migration) error {
	b, err := fs.ReadFile(fsys, m.filename)
	if err != nil {
		return errors.Wrapf(err, "reading migration file %s", m.filename)
	}

	sql := strings.TrimSpace(string(b))
	if sql == "" {
		return errors.Errorf("migration file %s is empty", m.filename)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(sql).Error; err != nil {
			return errors.Wrapf(err, "migration %s failed", m.filename)
		}
		if err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version).Error; err != nil {
			return errors.Wrapf(err, "recording migration %s", m.filename)
		}

		return nil
	})
}

// migrate runs each pending migration of fsys in its own transaction
func migrate(db *gorm.DB, fsys fs.FS) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		return errors.Wrap(err, "initializing migration table")
	}

	var version int
	if err := db.Raw("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version).Error; err != nil {
		return errors.Wrap(err, "reading current version")
	}

	ms, err := readMigrations(fsys)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"version": version,
		"files":   len(ms),
	}).Debug("Database schema version.")

	for _, m := range ms {
		if m.version <= version {
			continue
		}

		if err := apply(db, fsys, m); err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"file": m.filename,
		}).Info("Applied migration.")
	}

	return nil
}
