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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/app"
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/chronicle/chronicle/pkg/server/testutils"
)

func TestNotFound(t *testing.T) {
	testCases := []struct {
		method string
		path   string
	}{
		{method: "GET", path: "/"},
		{method: "GET", path: "/api/v1"},
		{method: "GET", path: "/api/v1/foo"},
		{method: "GET", path: "/api/v3/notes"},
		{method: "GET", path: "/static/main.css"},
	}

	// setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			// execute
			req := testutils.MakeReq(server.URL, tc.method, tc.path, "")
			res := testutils.HTTPDo(t, req)

			// test
			assert.StatusCodeEquals(t, res, http.StatusNotFound, "status code mismatch")
		})
	}
}

func TestHealth(t *testing.T) {
	for _, path := range []string{"/health", "/api/health"} {
		t.Run(path, func(t *testing.T) {
			// setup
			a := app.NewTest(t)
			server := MustNewServer(t, &a)

			// execute
			res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", path, ""))

			// test
			assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

			b, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatal(err)
			}
			res.Body.Close()
			assert.Equal(t, string(b), "ok", "body mismatch")
		})
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	// setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)

	sqlDB, err := a.DB.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()

	// execute
	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/health", ""))

	// test
	assert.StatusCodeEquals(t, res, http.StatusServiceUnavailable, "status code mismatch")
}

func TestRobots(t *testing.T) {
	// setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)

	// execute
	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/robots.txt", ""))

	// test
	assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")
}

func TestCORSPreflight(t *testing.T) {
	// setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)

	req := testutils.MakeReq(server.URL, "OPTIONS", "/api/v1/events", "")
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	// execute
	res := testutils.HTTPDo(t, req)

	// test
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	assert.Equal(t, res.Header.Get("Access-Control-Allow-Origin"), "*", "allowed origin mismatch")
	assert.Equal(t, res.Header.Get("Access-Control-Allow-Methods"), "PATCH", "allowed methods mismatch")
}

func TestNewRouter_InvalidApp(t *testing.T) {
	a := app.NewTest(t)
	a.DB = nil

	_, err := NewRouter(&a, RouteConfig{Controllers: New(&a)})
	assert.NotEqual(t, err, nil, "error mismatch")
}

func TestRateLimit(t *testing.T) {
	// setup
	a := app.NewTest(t)
	ctl := New(&a)

	r, err := NewRouter(&a, RouteConfig{
		Controllers: ctl,
		APIRoutes:   NewAPIRoutes(&a, ctl),
		Limiter:     mw.NewRateLimiter(1, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(r)
	defer server.Close()

	// execute
	first := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/events/public", ""))
	second := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/events/public", ""))

	// test
	assert.StatusCodeEquals(t, first, http.StatusOK, "first request")
	assert.StatusCodeEquals(t, second, http.StatusTooManyRequests, "second request")
}
