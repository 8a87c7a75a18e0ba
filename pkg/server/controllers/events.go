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

	"github.com/chronicle/chronicle/pkg/event"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/context"
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/chronicle/chronicle/pkg/server/presenters"
	"github.com/gorilla/mux"
)

// NewEvents creates a new Events controller
func NewEvents(app *app.App) *Events {
	return &Events{app: app}
}

// Events is an event controller
type Events struct {
	app *app.App
}

// eventsResponse is the response of the event list endpoints
type eventsResponse struct {
	Events []event.Event `json:"events"`
}

// createEventResponse is the response of the create endpoint
type createEventResponse struct {
	Key string `json:"key"`
}

// patchEventPayload is the payload of the partial update endpoint
type patchEventPayload struct {
	EventID *string `json:"eventId"`
}

type eventsQuery struct {
	UserID string `schema:"user_id"`
	Date   string `schema:"date"`
}

// Index handles GET /api/v1/events. The user_id parameter, when present,
// must name the signed in user.
func (e *Events) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var q eventsQuery
	if err := parseQuery(r, &q); err != nil {
		handleJSONError(w, err, "parsing query")
		return
	}
	if q.UserID != "" && q.UserID != user.UUID {
		handleJSONError(w, app.ErrForbidden, "listing events of another user")
		return
	}

	var err error
	var resp eventsResponse
	if q.Date != "" {
		rows, qErr := e.app.GetUserEventsOnDate(r.Context(), *user, q.Date)
		resp.Events, err = presenters.PresentEvents(rows), qErr
	} else {
		rows, qErr := e.app.GetUserEvents(r.Context(), *user)
		resp.Events, err = presenters.PresentEvents(rows), qErr
	}
	if err != nil {
		handleJSONError(w, err, "getting events")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Public handles GET /api/v1/events/public
func (e *Events) Public(w http.ResponseWriter, r *http.Request) {
	rows, err := e.app.GetPublicEvents(r.Context())
	if err != nil {
		handleJSONError(w, err, "getting public events")
		return
	}

	respondJSON(w, http.StatusOK, eventsResponse{Events: presenters.PresentEvents(rows)})
}

// Show handles GET /api/v1/events/{key}. Guests can only see public events.
func (e *Events) Show(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	row, err := e.app.GetEvent(r.Context(), context.User(r.Context()), key)
	if err != nil {
		handleJSONError(w, err, "getting event")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentEvent(row))
}

// Create handles POST /api/v1/events
func (e *Events) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var p event.Event
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	row, err := e.app.CreateEvent(r.Context(), *user, p)
	if err != nil {
		handleJSONError(w, err, "creating event")
		return
	}

	respondJSON(w, http.StatusCreated, createEventResponse{Key: row.UUID})
}

// Patch handles PATCH /api/v1/events/{key}
func (e *Events) Patch(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}
	key := mux.Vars(r)["key"]

	var p patchEventPayload
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	row, err := e.app.GetEvent(r.Context(), user, key)
	if err != nil {
		handleJSONError(w, err, "getting event")
		return
	}

	if p.EventID != nil {
		row, err = e.app.SetEventID(r.Context(), *user, key, *p.EventID)
		if err != nil {
			handleJSONError(w, err, "setting event id")
			return
		}
	}

	respondJSON(w, http.StatusOK, presenters.PresentEvent(row))
}

// Replace handles PUT /api/v1/events/{key}
func (e *Events) Replace(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}
	key := mux.Vars(r)["key"]

	var p event.Event
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	row, err := e.app.ReplaceEvent(r.Context(), *user, key, p)
	if err != nil {
		handleJSONError(w, err, "replacing event")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentEvent(row))
}

// Delete handles DELETE /api/v1/events/{key}
func (e *Events) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}
	key := mux.Vars(r)["key"]

	if err := e.app.DeleteEvent(r.Context(), *user, key); err != nil {
		handleJSONError(w, err, "deleting event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
