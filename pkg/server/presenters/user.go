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

package presenters

import (
	"time"

	"github.com/chronicle/chronicle/pkg/server/database"
)

// Session is the response of the register and signin endpoints
type Session struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
	UserUUID  string `json:"user_uuid"`
}

// PresentSession presents the session of the user
func PresentSession(s database.Session, user database.User) Session {
	return Session{
		Key:       s.Key,
		ExpiresAt: s.ExpiresAt.Unix(),
		UserUUID:  user.UUID,
	}
}

// User is a user as seen by the user itself
type User struct {
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Digest    bool      `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentUser presents the user
func PresentUser(u database.User) User {
	return User{
		UUID:      u.UUID,
		Email:     u.Email,
		Digest:    !u.NoDigest,
		CreatedAt: FormatTS(u.CreatedAt),
	}
}
