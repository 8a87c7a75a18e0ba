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

package app

import (
	"testing"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/server/blob"
	"github.com/chronicle/chronicle/pkg/server/cache"
	"github.com/chronicle/chronicle/pkg/server/testutils"
	"golang.org/x/crypto/bcrypt"
)

// NewTest returns an app for a testing environment with an in-memory
// database and cache, and a blob store in a temporary directory
func NewTest(t *testing.T) App {
	bcryptCost = bcrypt.MinCost

	c := clock.NewMock()

	store, err := blob.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	return App{
		DB:                  testutils.InitMemoryDB(t),
		Clock:               c,
		EmailBackend:        &testutils.MockEmailbackendImplementation{},
		Cache:               cache.NewMemory(c),
		Blob:                store,
		BaseURL:             "http://127.0.0.1:3001",
		Port:                "3001",
		DisableRegistration: false,
	}
}
