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

package permissions

import (
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/testutils"
)

func TestViewEvent(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")

	private := testutils.SetupEvent(db, user, testutils.EventParams{Title: "private", Date: "2024-03-10"})
	public := testutils.SetupEvent(db, user, testutils.EventParams{Title: "public", Date: "2024-03-10", Public: true})

	testCases := []struct {
		name     string
		user     *database.User
		event    database.Event
		expected bool
	}{
		{name: "owner accessing private event", user: &user, event: private, expected: true},
		{name: "non-owner accessing private event", user: &anotherUser, event: private, expected: false},
		{name: "guest accessing private event", user: nil, event: private, expected: false},
		{name: "owner accessing public event", user: &user, event: public, expected: true},
		{name: "non-owner accessing public event", user: &anotherUser, event: public, expected: true},
		{name: "guest accessing public event", user: nil, event: public, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, ViewEvent(tc.user, tc.event), tc.expected, "result mismatch")
		})
	}
}

func TestEditEvent(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")

	public := testutils.SetupEvent(db, user, testutils.EventParams{Title: "public", Date: "2024-03-10", Public: true})

	t.Run("owner", func(t *testing.T) {
		assert.Equal(t, EditEvent(&user, public), true, "result mismatch")
	})

	t.Run("non-owner of a public event", func(t *testing.T) {
		assert.Equal(t, EditEvent(&anotherUser, public), false, "result mismatch")
	})

	t.Run("guest", func(t *testing.T) {
		assert.Equal(t, EditEvent(nil, public), false, "result mismatch")
	})

	t.Run("unowned event", func(t *testing.T) {
		assert.Equal(t, EditEvent(&database.User{}, database.Event{}), false, "result mismatch")
	})
}
