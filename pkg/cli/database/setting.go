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
	"database/sql"

	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

// SettingID is the id of the singleton settings record
const SettingID = 1

// Setting is the locally cached preferences and history snapshot
type Setting struct {
	ID                int
	IsDarkTheme       bool
	IsLocationEnabled bool
	Language          string
	DiaryHistory      string
}

// NewSetting returns a settings record with the default values
func NewSetting(id int) Setting {
	return Setting{
		ID:           id,
		DiaryHistory: event.EmptySnapshot,
	}
}

// GetSetting returns the settings record with the given id, or nil if it
// was never created
func GetSetting(db *DB, id int) (*Setting, error) {
	var s Setting

	err := db.QueryRow("SELECT id, is_dark_theme, is_location_enabled, language, diary_history FROM settings WHERE id = ?", id).
		Scan(&s.ID, &s.IsDarkTheme, &s.IsLocationEnabled, &s.Language, &s.DiaryHistory)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "querying setting %d", id)
	}

	return &s, nil
}

// Insert inserts the settings record
func (s Setting) Insert(db *DB) error {
	_, err := db.Exec("INSERT INTO settings (id, is_dark_theme, is_location_enabled, language, diary_history) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.IsDarkTheme, s.IsLocationEnabled, s.Language, s.DiaryHistory)
	if err != nil {
		return errors.Wrapf(err, "inserting setting %d", s.ID)
	}

	return nil
}

// Update replaces the settings record in place
func (s Setting) Update(db *DB) error {
	_, err := db.Exec("UPDATE settings SET is_dark_theme = ?, is_location_enabled = ?, language = ?, diary_history = ? WHERE id = ?",
		s.IsDarkTheme, s.IsLocationEnabled, s.Language, s.DiaryHistory, s.ID)
	if err != nil {
		return errors.Wrapf(err, "updating setting %d", s.ID)
	}

	return nil
}

// UpsertSetting reads the singleton record, applies the change to it and
// writes it back, inserting it first if it does not exist. The read and the
// write are separate statements, so concurrent callers can lose each
// other's changes.
func UpsertSetting(db *DB, change func(*Setting)) error {
	cur, err := GetSetting(db, SettingID)
	if err != nil {
		return errors.Wrap(err, "reading setting")
	}

	if cur == nil {
		s := NewSetting(SettingID)
		change(&s)

		return s.Insert(db)
	}

	change(cur)

	return cur.Update(db)
}

// SaveHistory stores the serialized event history
func SaveHistory(db *DB, snapshot string) error {
	return UpsertSetting(db, func(s *Setting) {
		s.DiaryHistory = snapshot
	})
}

// SetDarkTheme stores the theme preference
func SetDarkTheme(db *DB, enabled bool) error {
	return UpsertSetting(db, func(s *Setting) {
		s.IsDarkTheme = enabled
	})
}

// SetLocationEnabled stores whether the location is attached to new events
func SetLocationEnabled(db *DB, enabled bool) error {
	return UpsertSetting(db, func(s *Setting) {
		s.IsLocationEnabled = enabled
	})
}

// SetLanguage stores the display language label
func SetLanguage(db *DB, label string) error {
	return UpsertSetting(db, func(s *Setting) {
		s.Language = label
	})
}
