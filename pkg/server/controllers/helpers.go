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
	"encoding/json"
	"net/http"

	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

var (
	// errBadRequest is an error for a payload or query that cannot be parsed
	errBadRequest = errors.New("bad request")
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// parseQuery decodes the query string of the request into dst
func parseQuery(r *http.Request, dst interface{}) error {
	if err := queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}

	return nil
}

// parseRequestData decodes the JSON body of the request into dst
func parseRequestData(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.Wrap(errBadRequest, "empty body")
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}

	return nil
}

// respondJSON writes the JSON encoding of v with the status code
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// getStatusCode maps an app error to the status code of its response
func getStatusCode(err error) int {
	switch errors.Cause(err) {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrForbidden, app.ErrRegistrationDisabled:
		return http.StatusForbidden
	case app.ErrDuplicateEmail:
		return http.StatusConflict
	case app.ErrImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case errBadRequest,
		app.ErrEmailRequired,
		app.ErrEmailInvalid,
		app.ErrPasswordTooShort,
		app.ErrPasswordConfirmationMismatch,
		app.ErrInvalidEvent,
		app.ErrInvalidImage:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError responds with the status code of the error. Internal
// errors are logged and their details withheld from the client.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := getStatusCode(err)

	if statusCode == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"statusCode": statusCode,
		}).ErrorWrap(err, msg)

		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	http.Error(w, err.Error(), statusCode)
}
