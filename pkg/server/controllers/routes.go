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
	"net/http"

	"github.com/chronicle/chronicle/pkg/server/app"
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	WebRoutes   []Route
	APIRoutes   []Route
	// Limiter rate limits the routes that ask for it. Nil disables limiting.
	Limiter *mw.RateLimiter
	// AllowedOrigins are the CORS origins. Empty allows any origin.
	AllowedOrigins []string
}

// NewWebRoutes returns the routes served outside of the API prefix
func NewWebRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"GET", "/health", c.Health.Index, false},
		{"GET", "/robots.txt", c.Static.Robots, false},
		{"GET", "/images/{name}", c.Images.Show, true},
	}
}

// NewAPIRoutes returns the routes served under /api
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	optional := &mw.AuthParams{Optional: true}

	ret := []Route{
		{"GET", "/health", c.Health.Index, false},
		{"POST", "/v1/signin", c.Users.Signin, true},
		{"POST", "/v1/signout", c.Users.Signout, true},
		{"GET", "/v1/me", mw.Auth(a, c.Users.Me, nil), true},

		// public must come before the key pattern
		{"GET", "/v1/events/public", c.Events.Public, true},
		{"GET", "/v1/events", mw.Auth(a, c.Events.Index, nil), true},
		{"POST", "/v1/events", mw.Auth(a, c.Events.Create, nil), true},
		{"GET", "/v1/events/{key}", mw.Auth(a, c.Events.Show, optional), true},
		{"PATCH", "/v1/events/{key}", mw.Auth(a, c.Events.Patch, nil), true},
		{"PUT", "/v1/events/{key}", mw.Auth(a, c.Events.Replace, nil), true},
		{"DELETE", "/v1/events/{key}", mw.Auth(a, c.Events.Delete, nil), true},

		{"POST", "/v1/images", mw.Auth(a, c.Images.Create, nil), true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/v1/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, limiter *mw.RateLimiter, routes []Route) {
	for _, route := range routes {
		router.
			Handle(route.Pattern, limiter.Apply(route.Handler, route.RateLimit)).
			Methods(route.Method)
	}
}

func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, rc.Limiter, rc.APIRoutes)
	registerRoutes(router, rc.Limiter, rc.WebRoutes)

	// catch-all
	router.PathPrefix("/").HandlerFunc(rc.Controllers.Static.NotFound)

	return mw.Logging(newCORS(rc.AllowedOrigins).Handler(router)), nil
}
