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

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/testutils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupCmdTest points the data directory at a temporary one and returns the
// path of a database file in it
func setupCmdTest(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("DBURL", "")
	t.Setenv("SmtpHost", "")

	return filepath.Join(dir, "test.db")
}

func openDB(t *testing.T, path string) *gorm.DB {
	db, err := database.Init(path, "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

func closeDB(db *gorm.DB) {
	database.Close(db)
}

func TestUserCreateCmd(t *testing.T) {
	tmpDB := setupCmdTest(t)

	var out bytes.Buffer
	err := userCreateCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com", "--password", "password123"}, &out)
	if err != nil {
		t.Fatal(err)
	}

	db := openDB(t, tmpDB)

	var count int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&count), "counting users")
	assert.Equal(t, count, int64(1), "should have 1 user")

	var user database.User
	testutils.MustExec(t, db.Where("email = ?", "test@example.com").First(&user), "finding user")
	assert.Equal(t, user.Email, "test@example.com", "email mismatch")
	assert.Equal(t, strings.Contains(out.String(), "User created successfully"), true, "output mismatch")
}

func TestUserCreateCmd_MissingFlag(t *testing.T) {
	tmpDB := setupCmdTest(t)

	var out bytes.Buffer
	err := userCreateCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com"}, &out)

	assert.Equal(t, errors.Cause(err), errMissingFlag, "error mismatch")
	assert.Equal(t, strings.Contains(out.String(), "Error: password is required"), true, "output mismatch")
}

func TestUserRemoveCmd(t *testing.T) {
	testCases := []struct {
		answer        string
		expectedCount int64
	}{
		{answer: "y\n", expectedCount: 0},
		{answer: "n\n", expectedCount: 1},
		{answer: "\n", expectedCount: 1},
	}

	for _, tc := range testCases {
		t.Run(strings.TrimSpace(tc.answer), func(t *testing.T) {
			tmpDB := setupCmdTest(t)

			db := openDB(t, tmpDB)
			testutils.SetupUserData(db, "test@example.com", "password123")
			closeDB(db)

			var out bytes.Buffer
			err := userRemoveCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com"}, strings.NewReader(tc.answer), &out)
			if err != nil {
				t.Fatal(err)
			}

			db2 := openDB(t, tmpDB)

			var count int64
			testutils.MustExec(t, db2.Model(&database.User{}).Count(&count), "counting users")
			assert.Equal(t, count, tc.expectedCount, "user count mismatch")
		})
	}
}

func TestUserRemoveCmd_NotFound(t *testing.T) {
	tmpDB := setupCmdTest(t)

	var out bytes.Buffer
	err := userRemoveCmd([]string{"--dbUrl", tmpDB, "--email", "nobody@example.com"}, strings.NewReader("y\n"), &out)

	assert.NotEqual(t, err, nil, "error mismatch")
}

func TestUserResetPasswordCmd(t *testing.T) {
	tmpDB := setupCmdTest(t)

	db := openDB(t, tmpDB)
	user := testutils.SetupUserData(db, "test@example.com", "oldpassword123")
	testutils.SetupSession(db, user)
	oldPasswordHash := user.Password
	closeDB(db)

	var out bytes.Buffer
	err := userResetPasswordCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com", "--password", "newpassword123"}, &out)
	if err != nil {
		t.Fatal(err)
	}

	db2 := openDB(t, tmpDB)

	var updatedUser database.User
	testutils.MustExec(t, db2.Where("email = ?", "test@example.com").First(&updatedUser), "finding user")

	assert.NotEqual(t, updatedUser.Password, oldPasswordHash, "password hash should be different")

	err = bcrypt.CompareHashAndPassword([]byte(updatedUser.Password), []byte("newpassword123"))
	assert.Equal(t, err, nil, "new password should match")

	err = bcrypt.CompareHashAndPassword([]byte(updatedUser.Password), []byte("oldpassword123"))
	assert.NotEqual(t, err, nil, "old password should not match")

	var sessionCount int64
	testutils.MustExec(t, db2.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
	assert.Equal(t, sessionCount, int64(0), "sessions should be signed out")
}

func TestUserDigestCmd(t *testing.T) {
	tmpDB := setupCmdTest(t)

	db := openDB(t, tmpDB)
	testutils.SetupUserData(db, "test@example.com", "password123")
	closeDB(db)

	var out bytes.Buffer
	if err := userDigestCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com", "--off"}, &out); err != nil {
		t.Fatal(err)
	}

	db2 := openDB(t, tmpDB)
	var user database.User
	testutils.MustExec(t, db2.Where("email = ?", "test@example.com").First(&user), "finding user")
	assert.Equal(t, user.NoDigest, true, "digest should be off")
	closeDB(db2)

	if err := userDigestCmd([]string{"--dbUrl", tmpDB, "--email", "test@example.com"}, &out); err != nil {
		t.Fatal(err)
	}

	db3 := openDB(t, tmpDB)
	testutils.MustExec(t, db3.Where("email = ?", "test@example.com").First(&user), "finding user")
	assert.Equal(t, user.NoDigest, false, "digest should be on")
}

func TestRun(t *testing.T) {
	testCases := []struct {
		args         []string
		expectedCode int
		expectedOut  string
	}{
		{args: []string{}, expectedCode: 0, expectedOut: "Available commands"},
		{args: []string{"version"}, expectedCode: 0, expectedOut: "chronicle-server-"},
		{args: []string{"unknown"}, expectedCode: 1, expectedOut: "Unknown command unknown"},
		{args: []string{"user"}, expectedCode: 1, expectedOut: "reset-password"},
		{args: []string{"user", "rename"}, expectedCode: 1, expectedOut: "Unknown subcommand: rename"},
	}

	for _, tc := range testCases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			code := run(tc.args, strings.NewReader(""), &out)

			assert.Equal(t, code, tc.expectedCode, "exit code mismatch")
			assert.Equal(t, strings.Contains(out.String(), tc.expectedOut), true, "output mismatch: "+out.String())
		})
	}
}
