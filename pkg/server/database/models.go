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
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user
type User struct {
	Model
	UUID        string     `json:"uuid" gorm:"type:text;uniqueIndex"`
	Email       string     `json:"email" gorm:"type:text;uniqueIndex"`
	Password    string     `json:"-"`
	LastLoginAt *time.Time `json:"-"`
	NoDigest    bool       `json:"-" gorm:"default:false"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"type:text;uniqueIndex"`
	LastUsedAt time.Time
	ExpiresAt  time.Time `gorm:"index"`
}

// Event is a stored diary event. UUID is the document key. EventID starts
// empty and is set by the client once the document exists.
type Event struct {
	Model
	UUID     string `gorm:"type:text;uniqueIndex"`
	EventID  string `gorm:"type:text;index"`
	UserUUID string `gorm:"type:text;index"`
	Title    string
	Body     string
	Date     string `gorm:"type:text;index"`
	Time     string
	Images   string `gorm:"type:text"`
	Location string
	Weather  string
	Public   bool `gorm:"index;default:false"`
	Tag      string
}

// ImageURLs decodes the stored image list
func (e Event) ImageURLs() ([]string, error) {
	if e.Images == "" {
		return []string{}, nil
	}

	var ret []string
	if err := json.Unmarshal([]byte(e.Images), &ret); err != nil {
		return nil, errors.Wrap(err, "decoding images")
	}

	return ret, nil
}

// SetImageURLs encodes the image list into the model
func (e *Event) SetImageURLs(urls []string) error {
	if urls == nil {
		urls = []string{}
	}

	b, err := json.Marshal(urls)
	if err != nil {
		return errors.Wrap(err, "encoding images")
	}

	e.Images = string(b)
	return nil
}

// Image is an uploaded image blob
type Image struct {
	Model
	UUID        string `gorm:"type:text;uniqueIndex"`
	UserID      int    `gorm:"index"`
	Name        string `gorm:"type:text;uniqueIndex"`
	ContentType string
	Size        int64
}
