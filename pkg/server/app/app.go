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

// Package app implements the operations of the chronicle server on top of
// its database, cache and blob store
package app

import (
	"time"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/server/blob"
	"github.com/chronicle/chronicle/pkg/server/cache"
	"github.com/chronicle/chronicle/pkg/server/mailer"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyBaseURL is an error for missing BaseURL content in the app configuration
	ErrEmptyBaseURL = errors.New("No BaseURL was provided")
	// ErrEmptyEmailBackend is an error for missing EmailBackend content in the app configuration
	ErrEmptyEmailBackend = errors.New("No EmailBackend was provided")
	// ErrEmptyCache is an error for missing cache in the app configuration
	ErrEmptyCache = errors.New("No cache was provided")
	// ErrEmptyBlob is an error for missing blob store in the app configuration
	ErrEmptyBlob = errors.New("No blob store was provided")
)

// DefaultPublicFeedTTL is how long the public feed stays cached
const DefaultPublicFeedTTL = 5 * time.Minute

// App is an application context
type App struct {
	DB           *gorm.DB
	Clock        clock.Clock
	EmailBackend mailer.Backend
	Cache        cache.Cache
	Blob         blob.Store
	// BaseURL is the public URL of the server used in emails and image links
	BaseURL             string
	DisableRegistration bool
	Port                string
	PublicFeedTTL       time.Duration
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.EmailBackend == nil {
		return ErrEmptyEmailBackend
	}
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.Cache == nil {
		return ErrEmptyCache
	}
	if a.Blob == nil {
		return ErrEmptyBlob
	}

	return nil
}

func (a *App) publicFeedTTL() time.Duration {
	if a.PublicFeedTTL > 0 {
		return a.PublicFeedTTL
	}

	return DefaultPublicFeedTTL
}
