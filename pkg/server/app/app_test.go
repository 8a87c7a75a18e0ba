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

package app

import (
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
)

func TestValidate(t *testing.T) {
	full := NewTest(t)

	testCases := []struct {
		name     string
		mutate   func(a *App)
		expected error
	}{
		{name: "valid", mutate: func(a *App) {}, expected: nil},
		{name: "missing base url", mutate: func(a *App) { a.BaseURL = "" }, expected: ErrEmptyBaseURL},
		{name: "missing clock", mutate: func(a *App) { a.Clock = nil }, expected: ErrEmptyClock},
		{name: "missing email backend", mutate: func(a *App) { a.EmailBackend = nil }, expected: ErrEmptyEmailBackend},
		{name: "missing db", mutate: func(a *App) { a.DB = nil }, expected: ErrEmptyDB},
		{name: "missing cache", mutate: func(a *App) { a.Cache = nil }, expected: ErrEmptyCache},
		{name: "missing blob", mutate: func(a *App) { a.Blob = nil }, expected: ErrEmptyBlob},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := full
			tc.mutate(&a)

			assert.Equal(t, a.Validate(), tc.expected, "error mismatch")
		})
	}
}
