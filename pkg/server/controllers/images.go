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
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// multipartOverhead is the room left for the multipart framing around the
// file
const multipartOverhead = 1 << 20

// NewImages creates a new Images controller
func NewImages(app *app.App) *Images {
	return &Images{app: app}
}

// Images is an image controller
type Images struct {
	app *app.App
}

type uploadImageResponse struct {
	URL string `json:"url"`
}

// Create handles POST /api/v1/images with the image in the "file" field of
// a multipart form
func (i *Images) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxImageSize+multipartOverhead)

	f, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleJSONError(w, app.ErrImageTooLarge, "reading upload")
			return
		}

		handleJSONError(w, errors.Wrap(errBadRequest, err.Error()), "reading upload")
		return
	}
	defer f.Close()

	url, err := i.app.SaveImage(r.Context(), *user, header.Filename, f)
	if err != nil {
		handleJSONError(w, err, "saving image")
		return
	}

	respondJSON(w, http.StatusCreated, uploadImageResponse{URL: url})
}

// Show handles GET /images/{name}
func (i *Images) Show(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	o, err := i.app.OpenImage(r.Context(), name)
	if err != nil {
		if errors.Cause(err) == app.ErrNotFound {
			mw.RespondNotFound(w)
			return
		}

		handleJSONError(w, err, "opening image")
		return
	}
	defer o.Close()

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, name, o.ModTime(), o)
}
