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

// Package testutils provides utilities used in server tests
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/helpers"
	"github.com/chronicle/chronicle/pkg/server/mailer"
	"github.com/chronicle/chronicle/pkg/server/token"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitMemoryDB opens a private in-memory database with the schema and the
// migrations applied. It is closed when the test ends.
func InitMemoryDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", MustUUID(t))

	db, err := database.Init(dsn, "")
	if err != nil {
		t.Fatalf("initializing in-memory database: %v", err)
	}

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// MustUUID generates a UUID and fails the test on error
func MustUUID(t *testing.T) string {
	id, err := helpers.GenUUID()
	if err != nil {
		t.Fatal(errors.Wrap(err, "generating uuid"))
	}

	return id
}

// SetupUserData creates and returns a new user with email and password
func SetupUserData(db *gorm.DB, email, password string) database.User {
	id, err := helpers.GenUUID()
	if err != nil {
		panic(errors.Wrap(err, "generating uuid"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(errors.Wrap(err, "hashing password"))
	}

	user := database.User{
		UUID:     id,
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Save(&user).Error; err != nil {
		panic(errors.Wrap(err, "preparing user"))
	}

	return user
}

// SetupSession creates and returns a session of the user valid for a day
func SetupSession(db *gorm.DB, user database.User) database.Session {
	key, err := token.Generate(token.SessionKeyBytes)
	if err != nil {
		panic(errors.Wrap(err, "generating session key"))
	}

	session := database.Session{
		Key:        key,
		UserID:     user.ID,
		LastUsedAt: time.Now(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	if err := db.Save(&session).Error; err != nil {
		panic(errors.Wrap(err, "preparing session"))
	}

	return session
}

// EventParams are the fields of an event row to set up
type EventParams struct {
	Title  string
	Body   string
	Date   string
	Time   string
	Tag    string
	Public bool
	Images []string
}

// SetupEvent inserts a persisted event owned by the user. Its key doubles
// as its event id.
func SetupEvent(db *gorm.DB, user database.User, p EventParams) database.Event {
	key, err := helpers.GenUUID()
	if err != nil {
		panic(errors.Wrap(err, "generating uuid"))
	}

	tag := p.Tag
	if tag == "" {
		tag = "Event"
	}
	body := p.Body
	if body == "" {
		body = "body of " + p.Title
	}

	e := database.Event{
		UUID:     key,
		EventID:  key,
		UserUUID: user.UUID,
		Title:    p.Title,
		Body:     body,
		Date:     p.Date,
		Time:     p.Time,
		Public:   p.Public,
		Tag:      tag,
	}
	if err := e.SetImageURLs(p.Images); err != nil {
		panic(err)
	}
	if err := db.Save(&e).Error; err != nil {
		panic(errors.Wrap(err, "preparing event"))
	}

	return e
}

// HTTPDo makes an HTTP request without following redirects
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqAuthHeader creates a session for the user and sets its key as the
// bearer token of the request
func SetReqAuthHeader(t *testing.T, db *gorm.DB, req *http.Request, user database.User) database.Session {
	session := SetupSession(db, user)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", session.Key))

	return session
}

// HTTPAuthDo makes an HTTP request authorized as the user
func HTTPAuthDo(t *testing.T, db *gorm.DB, req *http.Request, user database.User) *http.Response {
	SetReqAuthHeader(t, db, req, user)

	return HTTPDo(t, req)
}

// MakeReq constructs an HTTP request to the path under the endpoint
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	t.Helper()

	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// MustDecodeJSON decodes the response body into v
func MustDecodeJSON(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()

	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatal(errors.Wrap(err, "decoding response body"))
	}
}

// MockEmail is a mock email data
type MockEmail struct {
	TemplateType string
	From         string
	To           []string
	Data         interface{}
}

// MockEmailbackendImplementation is an email backend that records the
// emails instead of sending them
type MockEmailbackendImplementation struct {
	mu     sync.RWMutex
	Emails []MockEmail
	Err    error
}

var _ mailer.Backend = &MockEmailbackendImplementation{}

// Clear clears the recorded emails
func (b *MockEmailbackendImplementation) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Emails = []MockEmail{}
}

// SendEmail implements mailer.Backend
func (b *MockEmailbackendImplementation) SendEmail(templateType, from string, to []string, data interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Err != nil {
		return b.Err
	}

	b.Emails = append(b.Emails, MockEmail{
		TemplateType: templateType,
		From:         from,
		To:           to,
		Data:         data,
	})

	return nil
}

// Sent returns a copy of the recorded emails
func (b *MockEmailbackendImplementation) Sent() []MockEmail {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([]MockEmail(nil), b.Emails...)
}
