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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

func newTestClient(ts *httptest.Server, sessionKey string) *Client {
	return New(Options{
		Endpoint:   ts.URL + "/api",
		Version:    "test",
		SessionKey: sessionKey,
		HTTPClient: NewRateLimitedHTTPClient(),
	})
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestGetMyEvents(t *testing.T) {
	gym := event.Event{EventID: "e1", UserID: "u1", Title: "Gym", Body: "Leg day", Date: "2024-06-01", Images: []string{}, Tag: event.TagEvent}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, "GET", "method mismatch")
		assert.Equal(t, r.URL.Path, "/api/v1/events", "path mismatch")
		assert.Equal(t, r.URL.Query().Get("user_id"), "u1", "user mismatch")
		assert.Equal(t, r.URL.Query().Get("date"), "", "date should be absent")
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer someSessionKey", "auth header mismatch")
		assert.Equal(t, r.Header.Get("CLI-Version"), "test", "version header mismatch")

		respondJSON(w, EventsResponse{Events: []event.Event{gym}})
	}))
	defer ts.Close()

	got, err := newTestClient(ts, "someSessionKey").GetMyEvents(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, got, []event.Event{gym}, "events mismatch")
}

func TestGetMyEventsOnDate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Query().Get("date"), "2024-06-01", "date mismatch")

		respondJSON(w, map[string]interface{}{"events": nil})
	}))
	defer ts.Close()

	got, err := newTestClient(ts, "k").GetMyEventsOnDate(context.Background(), "u1", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, got, []event.Event{}, "null events should decode as empty")
}

func TestAuthorizedRequest_NoSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	}))
	defer ts.Close()

	_, err := newTestClient(ts, "").GetPublicEvents(context.Background())

	assert.Equal(t, errors.Cause(err), ErrNoSession, "error mismatch")
}

func TestHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := newTestClient(ts, "k").GetPublicEvents(context.Background())

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected an HTTPError, got %v", err)
	}
	assert.Equal(t, httpErr.StatusCode, http.StatusForbidden, "status mismatch")
	assert.Equal(t, httpErr.Message, "forbidden", "message mismatch")
}

func TestContentTypeMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html></html>")
	}))
	defer ts.Close()

	_, err := newTestClient(ts, "k").GetPublicEvents(context.Background())

	assert.Equal(t, errors.Cause(err), ErrContentTypeMismatch, "error mismatch")
}

func TestAddAndSetEventID(t *testing.T) {
	var created event.Event
	var patched PatchEventPayload

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/v1/events":
			json.NewDecoder(r.Body).Decode(&created)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(CreateEventResponse{Key: "k1"})
		case r.Method == "PATCH" && r.URL.Path == "/api/v1/events/k1":
			json.NewDecoder(r.Body).Decode(&patched)
			respondJSON(w, map[string]string{})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts, "k")
	e := event.Event{Title: "Gym", Body: "Leg day", Date: "2024-06-01", Tag: event.TagEvent}

	key, err := c.Add(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetEventID(context.Background(), key); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, key, "k1", "key mismatch")
	assert.Equal(t, created.Title, "Gym", "created title mismatch")
	assert.Equal(t, *patched.EventID, "k1", "patched id mismatch")
}

func TestEditDelete(t *testing.T) {
	calls := []string{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)

		if r.Method == "DELETE" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		respondJSON(w, map[string]string{})
	}))
	defer ts.Close()

	c := newTestClient(ts, "k")
	e := event.Event{EventID: "e1", Title: "t", Body: "b", Date: "2024-06-01"}

	if err := c.Edit(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, calls, []string{"PUT /api/v1/events/e1", "DELETE /api/v1/events/e1"}, "calls mismatch")
}

func TestUploadImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Error(err)
			return
		}
		defer f.Close()

		b, _ := io.ReadAll(f)
		assert.Equal(t, header.Filename, "photo.png", "filename mismatch")
		assert.Equal(t, string(b), "pngbytes", "content mismatch")

		respondJSON(w, UploadImageResponse{URL: "http://localhost/images/image_1.png"})
	}))
	defer ts.Close()

	url, err := newTestClient(ts, "k").UploadImage(context.Background(), "/home/alice/photo.png", []byte("pngbytes"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, url, "http://localhost/images/image_1.png", "url mismatch")
}

func TestSignin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p SigninPayload
		json.NewDecoder(r.Body).Decode(&p)

		if p.Password != "pass1234" {
			http.Error(w, "wrong credentials", http.StatusUnauthorized)
			return
		}

		respondJSON(w, SigninResponse{Key: "newKey", ExpiresAt: 100, UserUUID: "u1"})
	}))
	defer ts.Close()

	c := newTestClient(ts, "")

	resp, err := c.Signin(context.Background(), "alice@example.com", "pass1234")
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, resp, SigninResponse{Key: "newKey", ExpiresAt: 100, UserUUID: "u1"}, "response mismatch")

	_, err = c.Signin(context.Background(), "alice@example.com", "nope")
	assert.Equal(t, err, ErrInvalidLogin, "error mismatch")
}

func TestSignout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/api/v1/signout", "path mismatch")
		http.Redirect(w, r, "/", http.StatusFound)
	}))
	defer ts.Close()

	if err := newTestClient(ts, "k").Signout(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestCheckHealth(t *testing.T) {
	healthy := true
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/api/health", "path mismatch")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := newTestClient(ts, "")
	if err := c.CheckHealth(context.Background()); err != nil {
		t.Fatal(err)
	}

	healthy = false
	assert.NotEqual(t, c.CheckHealth(context.Background()), nil, "expected an error when unhealthy")
}
