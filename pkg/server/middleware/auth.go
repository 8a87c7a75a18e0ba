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

package middleware

import (
	"net/http"

	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/context"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
)

// AuthParams is the params for the authentication middleware
type AuthParams struct {
	// Optional lets guests through without a user in the context
	Optional bool
}

// AuthWithSession authenticates the request with its bearer session key. It
// reports false without an error when the request carries no valid session.
func AuthWithSession(a *app.App, r *http.Request) (*database.Session, *database.User, bool, error) {
	key, err := GetCredential(r)
	if err != nil {
		return nil, nil, false, err
	}
	if key == "" {
		return nil, nil, false, nil
	}

	session, user, err := a.GetSession(key)
	if errors.Cause(err) == app.ErrNotFound {
		return nil, nil, false, nil
	} else if err != nil {
		return nil, nil, false, errors.Wrap(err, "finding session")
	}

	return session, user, true, nil
}

// Auth is an authentication middleware. It responds with unauthorized
// unless the request carries a valid session, or the params make it
// optional.
func Auth(a *app.App, next http.HandlerFunc, p *AuthParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, user, ok, err := AuthWithSession(a, r)
		if errors.Cause(err) == ErrMalformedAuthorization {
			RespondUnauthorized(w)
			return
		}
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}

		if !ok {
			if p != nil && p.Optional {
				next.ServeHTTP(w, r)
				return
			}

			RespondUnauthorized(w)
			return
		}

		if err := a.TouchSession(session); err != nil {
			log.ErrorWrap(err, "touching session")
		}

		ctx := context.WithSession(context.WithUser(r.Context(), user), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
