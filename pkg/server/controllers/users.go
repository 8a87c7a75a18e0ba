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
	"github.com/chronicle/chronicle/pkg/server/context"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/log"
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/chronicle/chronicle/pkg/server/presenters"
	"github.com/pkg/errors"
)

// NewUsers creates a new Users controller
func NewUsers(app *app.App) *Users {
	return &Users{app: app}
}

// Users is a user controller
type Users struct {
	app *app.App
}

// credentialsPayload is the payload of the register and signin endpoints
type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/register
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	if u.app.DisableRegistration {
		handleJSONError(w, app.ErrRegistrationDisabled, "registering")
		return
	}

	var p credentialsPayload
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	user, err := u.app.CreateUser(p.Email, p.Password, p.Password)
	if err != nil {
		handleJSONError(w, err, "creating user")
		return
	}

	session, err := u.app.SignIn(&user)
	if err != nil {
		handleJSONError(w, err, "signing in")
		return
	}

	if err := u.app.SendWelcomeEmail(user.Email); err != nil {
		log.ErrorWrap(err, "sending welcome email")
	}

	respondJSON(w, http.StatusCreated, presenters.PresentSession(*session, user))
}

func (u *Users) signin(p credentialsPayload) (*database.Session, *database.User, error) {
	if p.Email == "" {
		return nil, nil, app.ErrEmailRequired
	}

	user, err := u.app.Authenticate(p.Email, p.Password)
	if errors.Cause(err) == app.ErrNotFound {
		return nil, nil, app.ErrLoginInvalid
	} else if err != nil {
		return nil, nil, err
	}

	session, err := u.app.SignIn(user)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// Signin handles POST /api/v1/signin
func (u *Users) Signin(w http.ResponseWriter, r *http.Request) {
	var p credentialsPayload
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	session, user, err := u.signin(p)
	if err != nil {
		handleJSONError(w, err, "signing in")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSession(*session, *user))
}

// Signout handles POST /api/v1/signout. Signing out without a session is
// not an error.
func (u *Users) Signout(w http.ResponseWriter, r *http.Request) {
	key, err := mw.GetCredential(r)
	if err != nil {
		handleJSONError(w, errors.Wrap(errBadRequest, err.Error()), "getting credential")
		return
	}

	if key != "" {
		if err := u.app.DeleteSession(key); err != nil {
			handleJSONError(w, err, "deleting session")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/me
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}
