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

package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/mailer"
	"github.com/chronicle/chronicle/pkg/server/presenters"
	"github.com/chronicle/chronicle/pkg/server/testutils"
	"golang.org/x/crypto/bcrypt"
)

func credentialsJSON(email, password string) string {
	return fmt.Sprintf(`{"email": "%s", "password": "%s"}`, email, password)
}

func TestRegister(t *testing.T) {
	testCases := []struct {
		email    string
		password string
	}{
		{
			email:    "alice@example.com",
			password: "pass1234",
		},
		{
			email:    "bob@example.com",
			password: "Y9EwmjH@Jq6y5a64MSACUoM4w7SAhzvY",
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("register %s", tc.email), func(t *testing.T) {
			// Setup
			a := app.NewTest(t)
			emailBackend := a.EmailBackend.(*testutils.MockEmailbackendImplementation)
			server := MustNewServer(t, &a)

			req := testutils.MakeReq(server.URL, "POST", "/api/v1/register", credentialsJSON(tc.email, tc.password))

			// Execute
			res := testutils.HTTPDo(t, req)

			// Test
			assert.StatusCodeEquals(t, res, http.StatusCreated, "")

			var user database.User
			testutils.MustExec(t, a.DB.Where("email = ?", tc.email).First(&user), "finding user")
			passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tc.password))
			assert.Equal(t, passwordErr, nil, "Password mismatch")

			var got presenters.Session
			testutils.MustDecodeJSON(t, res, &got)

			var session database.Session
			testutils.MustExec(t, a.DB.Where("key = ?", got.Key).First(&session), "finding session")
			assert.Equal(t, session.UserID, user.ID, "session user mismatch")
			assert.Equal(t, got.UserUUID, user.UUID, "user_uuid mismatch")
			assert.Equal(t, got.ExpiresAt, session.ExpiresAt.Unix(), "expires_at mismatch")

			sent := emailBackend.Sent()
			assert.Equalf(t, len(sent), 1, "email queue count mismatch")
			assert.Equal(t, sent[0].TemplateType, mailer.EmailTypeWelcome, "email type mismatch")
			assert.DeepEqual(t, sent[0].To, []string{tc.email}, "email to mismatch")
		})
	}
}

func TestRegisterError(t *testing.T) {
	testCases := []struct {
		name         string
		payload      string
		expectedCode int
	}{
		{
			name:         "missing email",
			payload:      credentialsJSON("", "pass1234"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid email",
			payload:      credentialsJSON("alice", "pass1234"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "short password",
			payload:      credentialsJSON("alice@example.com", "pass"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "malformed body",
			payload:      `{"email":`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			a := app.NewTest(t)
			server := MustNewServer(t, &a)

			req := testutils.MakeReq(server.URL, "POST", "/api/v1/register", tc.payload)

			// Execute
			res := testutils.HTTPDo(t, req)

			// Test
			assert.StatusCodeEquals(t, res, tc.expectedCode, "")

			var userCount int64
			testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
			assert.Equal(t, userCount, int64(0), "userCount mismatch")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	// Setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)
	testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

	req := testutils.MakeReq(server.URL, "POST", "/api/v1/register", credentialsJSON("alice@example.com", "pass5678"))

	// Execute
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusConflict, "")

	var userCount, sessionCount int64
	testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
	testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
	assert.Equal(t, userCount, int64(1), "userCount mismatch")
	assert.Equal(t, sessionCount, int64(0), "sessionCount mismatch")
}

func TestRegisterDisabled(t *testing.T) {
	// Setup
	a := app.NewTest(t)
	a.DisableRegistration = true
	server := MustNewServer(t, &a)

	req := testutils.MakeReq(server.URL, "POST", "/api/v1/register", credentialsJSON("alice@example.com", "pass1234"))

	// Execute
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

	var userCount int64
	testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&userCount), "counting users")
	assert.Equal(t, userCount, int64(0), "userCount mismatch")
}

func TestSignin(t *testing.T) {
	testCases := []struct {
		name         string
		email        string
		password     string
		expectedCode int
	}{
		{
			name:         "success",
			email:        "alice@example.com",
			password:     "pass1234",
			expectedCode: http.StatusOK,
		},
		{
			name:         "wrong password",
			email:        "alice@example.com",
			password:     "wrongpassword",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "unknown email",
			email:        "bob@example.com",
			password:     "pass1234",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing email",
			email:        "",
			password:     "pass1234",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			a := app.NewTest(t)
			server := MustNewServer(t, &a)
			user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

			req := testutils.MakeReq(server.URL, "POST", "/api/v1/signin", credentialsJSON(tc.email, tc.password))

			// Execute
			res := testutils.HTTPDo(t, req)

			// Test
			assert.StatusCodeEquals(t, res, tc.expectedCode, "")

			var sessionCount int64
			testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")

			if tc.expectedCode != http.StatusOK {
				assert.Equal(t, sessionCount, int64(0), "sessionCount mismatch")
				return
			}

			assert.Equal(t, sessionCount, int64(1), "sessionCount mismatch")

			var got presenters.Session
			testutils.MustDecodeJSON(t, res, &got)
			assert.Equal(t, got.UserUUID, user.UUID, "user_uuid mismatch")

			var session database.Session
			testutils.MustExec(t, a.DB.First(&session), "finding session")
			assert.Equal(t, got.Key, session.Key, "key mismatch")
			assert.Equal(t, session.ExpiresAt.Unix(), a.Clock.Now().Add(app.SessionDuration).Unix(), "session expiry mismatch")
		})
	}
}

func TestSignout(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		alice := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bob@example.com", "pass1234")
		bobSession := testutils.SetupSession(a.DB, bob)

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/signout", "")

		// Execute
		res := testutils.HTTPAuthDo(t, a.DB, req, alice)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

		var sessions []database.Session
		testutils.MustExec(t, a.DB.Find(&sessions), "finding sessions")
		assert.Equalf(t, len(sessions), 1, "session count mismatch")
		assert.Equal(t, sessions[0].Key, bobSession.Key, "remaining session mismatch")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		bob := testutils.SetupUserData(a.DB, "bob@example.com", "pass1234")
		testutils.SetupSession(a.DB, bob)

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/signout", "")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

		var sessionCount int64
		testutils.MustExec(t, a.DB.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
		assert.Equal(t, sessionCount, int64(1), "sessionCount mismatch")
	})
}

func TestMe(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

		req := testutils.MakeReq(server.URL, "GET", "/api/v1/me", "")

		// Execute
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var got presenters.User
		testutils.MustDecodeJSON(t, res, &got)
		assert.Equal(t, got.UUID, user.UUID, "uuid mismatch")
		assert.Equal(t, got.Email, "alice@example.com", "email mismatch")
		assert.Equal(t, got.Digest, true, "digest mismatch")
	})

	t.Run("expired session", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

		session := database.Session{
			Key:       "expired-session-key",
			UserID:    user.ID,
			ExpiresAt: a.Clock.Now().Add(-time.Minute),
		}
		testutils.MustExec(t, a.DB.Save(&session), "preparing session")

		req := testutils.MakeReq(server.URL, "GET", "/api/v1/me", "")
		req.Header.Set("Authorization", "Bearer expired-session-key")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)

		req := testutils.MakeReq(server.URL, "GET", "/api/v1/me", "")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "")
	})
}
