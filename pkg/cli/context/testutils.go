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
	"testing"

	"github.com/chronicle/chronicle/pkg/cli/config"
	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/pkg/errors"
)

func getDefaultTestPaths(t *testing.T) Paths {
	tmpDir := t.TempDir()

	return Paths{
		Home:   tmpDir,
		Cache:  tmpDir,
		Config: tmpDir,
		Data:   tmpDir,
	}
}

// InitTestCtx initializes a test context with an in-memory database, an
// in-memory remote and a temporary directory for all paths. The returned
// context is online and signed in as "user-1".
func InitTestCtx(t *testing.T) Ctx {
	return InitTestCtxWithDB(t, database.InitTestMemoryDB(t))
}

// InitTestCtxWithDB initializes a test context with the provided database
func InitTestCtxWithDB(t *testing.T, db *database.DB) Ctx {
	paths := getDefaultTestPaths(t)

	if err := InitDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "creating test directories"))
	}

	mock := clock.NewMock()

	return Ctx{
		DB:               db,
		Paths:            paths,
		Config:           config.Default(),
		Clock:            mock,
		SessionKey:       "someSessionKey",
		SessionKeyExpiry: mock.Now().AddDate(0, 0, 1).Unix(),
		UserUUID:         "user-1",
		Remote:           remote.NewMemory(),
		Connectivity:     connectivity.Static(true),
	}
}
