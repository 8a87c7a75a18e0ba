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

// Package permissions decides which events a user may read or change
package permissions

import (
	"github.com/chronicle/chronicle/pkg/server/database"
)

func owns(user *database.User, e database.Event) bool {
	if user == nil {
		return false
	}
	if e.UserUUID == "" {
		return false
	}

	return e.UserUUID == user.UUID
}

// ViewEvent checks if the given user can view the given event. Public
// events are visible to everyone, guests included.
func ViewEvent(user *database.User, e database.Event) bool {
	if e.Public {
		return true
	}

	return owns(user, e)
}

// EditEvent checks if the given user can change or delete the given event
func EditEvent(user *database.User, e database.Event) bool {
	return owns(user, e)
}
