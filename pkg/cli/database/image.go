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

	"github.com/pkg/errors"
)

// ImageUpload records the remote URL of a local file that was uploaded
type ImageUpload struct {
	Path       string
	URL        string
	UploadedAt int64
}

// GetImageUpload returns the upload for the given local path, or nil if the
// file was never uploaded
func GetImageUpload(db *DB, path string) (*ImageUpload, error) {
	var u ImageUpload

	err := db.QueryRow("SELECT path, url, uploaded_at FROM image_uploads WHERE path = ?", path).Scan(&u.Path, &u.URL, &u.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "querying image upload for %s", path)
	}

	return &u, nil
}

// Save inserts or replaces the upload record
func (u ImageUpload) Save(db *DB) error {
	_, err := db.Exec("INSERT OR REPLACE INTO image_uploads (path, url, uploaded_at) VALUES (?, ?, ?)", u.Path, u.URL, u.UploadedAt)
	if err != nil {
		return errors.Wrapf(err, "saving image upload for %s", u.Path)
	}

	return nil
}
