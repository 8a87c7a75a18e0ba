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

// Package context defines the runtime context of the chronicle cli
package context

import (
	"io"
	"net/http"

	"github.com/chronicle/chronicle/pkg/cli/client"
	"github.com/chronicle/chronicle/pkg/cli/config"
	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/events"
	"github.com/chronicle/chronicle/pkg/cli/history"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/pkg/errors"
)

// ErrNotLoggedIn is returned by commands that need a session
var ErrNotLoggedIn = errors.New("not logged in. Run 'chronicle login' first")

// Paths contain the base directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// Ctx holds the information of the current runtime
type Ctx struct {
	Paths            Paths
	Version          string
	DB               *database.DB
	Config           config.Config
	SessionKey       string
	SessionKeyExpiry int64
	UserUUID         string
	Clock            clock.Clock
	HTTPClient       *http.Client
	Remote           remote.Source
	Connectivity     connectivity.Checker
}

// Client returns a chronicle server client carrying the current session
func (c Ctx) Client() *client.Client {
	return client.New(client.Options{
		Endpoint:   c.Config.APIEndpoint,
		Version:    c.Version,
		SessionKey: c.SessionKey,
		HTTPClient: c.HTTPClient,
	})
}

// Events returns the event service over the configured remote
func (c Ctx) Events() *events.Service {
	return events.New(c.Remote)
}

// History returns a history loader over the configured remote and local cache
func (c Ctx) History() *history.Loader {
	return history.New(c.Remote, c.DB, c.Connectivity)
}

// LoggedIn reports whether a session exists that has not expired
func (c Ctx) LoggedIn() bool {
	if c.SessionKey == "" || c.UserUUID == "" {
		return false
	}

	return c.SessionKeyExpiry == 0 || c.Clock.Now().Unix() < c.SessionKeyExpiry
}

// RequireLogin returns ErrNotLoggedIn unless a session is active
func (c Ctx) RequireLogin() error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}

	return nil
}

// Close releases the remote and the database
func (c Ctx) Close() error {
	if cl, ok := c.Remote.(io.Closer); ok {
		if err := cl.Close(); err != nil {
			return errors.Wrap(err, "closing remote")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return errors.Wrap(err, "closing database")
		}
	}

	return nil
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx Ctx) Ctx {
	if ctx.SessionKey != "" {
		ctx.SessionKey = "1"
	} else {
		ctx.SessionKey = "0"
	}

	if ctx.Config.WeatherAPIKey != "" {
		ctx.Config.WeatherAPIKey = "1"
	}
	if ctx.Config.ChatAPIKey != "" {
		ctx.Config.ChatAPIKey = "1"
	}

	return ctx
}
