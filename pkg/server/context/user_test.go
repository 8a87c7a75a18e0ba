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

package context

import (
	"context"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/database"
)

func TestUser(t *testing.T) {
	ctx := context.Background()

	if User(ctx) != nil {
		t.Fatal("empty context should carry no user")
	}
	if Session(ctx) != nil {
		t.Fatal("empty context should carry no session")
	}

	u := &database.User{UUID: "u1"}
	s := &database.Session{Key: "k1"}
	ctx = WithSession(WithUser(ctx, u), s)

	assert.Equal(t, User(ctx), u, "user mismatch")
	assert.Equal(t, Session(ctx), s, "session mismatch")
}
