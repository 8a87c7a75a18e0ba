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
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/testutils"
)

var pngContent = []byte("\x89PNG\r\n\x1a\nrest of the image")

func makeUploadReq(t *testing.T, endpoint, field, filename string, content []byte) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest("POST", endpoint+"/api/v1/images", &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func TestImagesCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Setup
		a := app.NewTest(t)
		server := MustNewServer(t, &a)
		user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

		req := makeUploadReq(t, server.URL, "file", "photo.png", pngContent)

		// Execute
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusCreated, "")

		var got uploadImageResponse
		testutils.MustDecodeJSON(t, res, &got)
		if !strings.HasPrefix(got.URL, a.BaseURL+"/images/image_") {
			t.Fatalf("unexpected url %s", got.URL)
		}

		var imageCount int64
		testutils.MustExec(t, a.DB.Model(&database.Image{}).Count(&imageCount), "counting images")
		assert.Equal(t, imageCount, int64(1), "imageCount mismatch")

		// the image is downloadable from the server
		path := strings.TrimPrefix(got.URL, a.BaseURL)
		dl := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", path, ""))
		assert.StatusCodeEquals(t, dl, http.StatusOK, "downloading")
		assert.Equal(t, dl.Header.Get("Content-Type"), "image/png", "content type mismatch")

		b, err := io.ReadAll(dl.Body)
		if err != nil {
			t.Fatal(err)
		}
		dl.Body.Close()
		assert.DeepEqual(t, b, pngContent, "content mismatch")
	})

	testCases := []struct {
		name         string
		field        string
		filename     string
		content      []byte
		authed       bool
		expectedCode int
	}{
		{
			name:         "unauthenticated",
			field:        "file",
			filename:     "photo.png",
			content:      pngContent,
			authed:       false,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing file field",
			field:        "image",
			filename:     "photo.png",
			content:      pngContent,
			authed:       true,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unsupported extension",
			field:        "file",
			filename:     "notes.txt",
			content:      []byte("plain text"),
			authed:       true,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "content is not an image",
			field:        "file",
			filename:     "photo.png",
			content:      []byte("plain text"),
			authed:       true,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			a := app.NewTest(t)
			server := MustNewServer(t, &a)
			user := testutils.SetupUserData(a.DB, "alice@example.com", "pass1234")

			req := makeUploadReq(t, server.URL, tc.field, tc.filename, tc.content)

			// Execute
			var res *http.Response
			if tc.authed {
				res = testutils.HTTPAuthDo(t, a.DB, req, user)
			} else {
				res = testutils.HTTPDo(t, req)
			}

			// Test
			assert.StatusCodeEquals(t, res, tc.expectedCode, "")

			var imageCount int64
			testutils.MustExec(t, a.DB.Model(&database.Image{}).Count(&imageCount), "counting images")
			assert.Equal(t, imageCount, int64(0), "imageCount mismatch")
		})
	}
}

func TestImagesShow_NotFound(t *testing.T) {
	// Setup
	a := app.NewTest(t)
	server := MustNewServer(t, &a)

	req := testutils.MakeReq(server.URL, "GET", "/images/image_missing.png", "")

	// Execute
	res := testutils.HTTPDo(t, req)

	// Test
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
}
