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

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/testutils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := NewTest(t)

		user, err := a.CreateUser(" alice@example.com ", "pass1234", "pass1234")
		if err != nil {
			t.Fatal(err)
		}

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting user")
		assert.Equal(t, count, int64(1), "user count mismatch")

		var record database.User
		testutils.MustExec(t, a.DB.First(&record), "finding user")
		assert.Equal(t, record.Email, "alice@example.com", "email mismatch")
		assert.Equal(t, record.UUID, user.UUID, "uuid mismatch")
		assert.NotEqual(t, record.UUID, "", "uuid should be set")
		if record.LastLoginAt == nil {
			t.Error("last login should be set")
		}

		passwordErr := bcrypt.CompareHashAndPassword([]byte(record.Password), []byte("pass1234"))
		assert.Equal(t, passwordErr, nil, "password mismatch")
	})

	t.Run("duplicate email", func(t *testing.T) {
		a := NewTest(t)
		testutils.SetupUserData(a.DB, "alice@example.com", "somepassword")

		_, err := a.CreateUser("alice@example.com", "newpassword", "newpassword")
		assert.Equal(t, err, ErrDuplicateEmail, "error mismatch")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting user")
		assert.Equal(t, count, int64(1), "user count mismatch")
	})

	testCases := []struct {
		name         string
		email        string
		password     string
		confirmation string
		expected     error
	}{
		{name: "missing email", email: "", password: "pass1234", confirmation: "pass1234", expected: ErrEmailRequired},
		{name: "invalid email", email: "alice", password: "pass1234", confirmation: "pass1234", expected: ErrEmailInvalid},
		{name: "short password", email: "alice@example.com", password: "pass", confirmation: "pass", expected: ErrPasswordTooShort},
		{name: "confirmation mismatch", email: "alice@example.com", password: "pass1234", confirmation: "pass12345", expected: ErrPasswordConfirmationMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewTest(t)

			_, err := a.CreateUser(tc.email, tc.password, tc.confirmation)
			assert.Equal(t, err, tc.expected, "error mismatch")

			var count int64
			testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting user")
			assert.Equal(t, count, int64(0), "no user should be created")
		})
	}
}

func TestAuthenticate(t *testing.T) {
	a := NewTest(t)
	user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

	testCases := []struct {
		name     string
		email    string
		password string
		expected error
	}{
		{name: "success", email: "alice@example.com", password: "pass1234", expected: nil},
		{name: "wrong password", email: "alice@example.com", password: "wrong1234", expected: ErrLoginInvalid},
		{name: "unknown email", email: "bob@example.com", password: "pass1234", expected: ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Authenticate(tc.email, tc.password)
			assert.Equal(t, err, tc.expected, "error mismatch")

			if tc.expected == nil {
				assert.Equal(t, got.ID, user.ID, "user mismatch")
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	a := NewTest(t)
	user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

	session, err := a.SignIn(&user)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, session.UserID, user.ID, "session user mismatch")
	assert.Equal(t, session.ExpiresAt.Equal(a.Clock.Now().Add(SessionDuration)), true, "expiry mismatch")

	var record database.User
	testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&record), "finding user")
	if record.LastLoginAt == nil {
		t.Fatal("last login should be set")
	}
	assert.Equal(t, record.LastLoginAt.Equal(a.Clock.Now()), true, "last login mismatch")
}

func TestUpdateUserPassword(t *testing.T) {
	a := NewTest(t)
	user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")
	testutils.SetupSession(a.DB, user)
	testutils.SetupSession(a.DB, user)

	t.Run("mismatch", func(t *testing.T) {
		err := a.UpdateUserPassword(&user, "newpass1234", "other1234")
		assert.Equal(t, err, ErrPasswordConfirmationMismatch, "error mismatch")
	})

	t.Run("success", func(t *testing.T) {
		if err := a.UpdateUserPassword(&user, "newpass1234", "newpass1234"); err != nil {
			t.Fatal(err)
		}

		if _, err := a.Authenticate("alice@example.com", "newpass1234"); err != nil {
			t.Fatalf("new password should authenticate: %v", err)
		}
		_, err := a.Authenticate("alice@example.com", "pass1234")
		assert.Equal(t, err, ErrLoginInvalid, "old password should not authenticate")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&count), "counting sessions")
		assert.Equal(t, count, int64(0), "sessions should be deleted")
	})
}

func TestSetDigest(t *testing.T) {
	a := NewTest(t)
	user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

	if err := a.SetDigest(&user, false); err != nil {
		t.Fatal(err)
	}

	var record database.User
	testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&record), "finding user")
	assert.Equal(t, record.NoDigest, true, "digest should be off")

	if err := a.SetDigest(&user, true); err != nil {
		t.Fatal(err)
	}
	testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&record), "finding user")
	assert.Equal(t, record.NoDigest, false, "digest should be on")
}

func TestRemoveUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := NewTest(t)
		alice := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob@example.com", "pass1234")
		testutils.SetupSession(a.DB, alice)
		testutils.SetupSession(a.DB, bob)

		if err := a.RemoveUser("alice@example.com"); err != nil {
			t.Fatal(err)
		}

		var userCount, sessionCount int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
		testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
		assert.Equal(t, userCount, int64(1), "userCount mismatch")
		assert.Equal(t, sessionCount, int64(1), "sessionCount mismatch")
	})

	t.Run("with events", func(t *testing.T) {
		a := NewTest(t)
		alice := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")
		testutils.SetupEvent(a.DB, alice, testutils.EventParams{Title: "t", Date: "2024-03-12"})

		err := a.RemoveUser("alice@example.com")
		assert.Equal(t, errors.Cause(err), ErrUserHasExistingResources, "error mismatch")

		var userCount int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
		assert.Equal(t, userCount, int64(1), "userCount mismatch")
	})

	t.Run("not found", func(t *testing.T) {
		a := NewTest(t)

		err := a.RemoveUser("nobody@example.com")
		assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch")
	})
}
