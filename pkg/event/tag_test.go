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

package event

import (
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/pkg/errors"
)

func TestAllTags(t *testing.T) {
	sel := AllTags()

	for _, tag := range Tags() {
		assert.Equal(t, sel.Has(tag), true, tag+" should be enabled")
	}
	assert.DeepEqual(t, sel.Enabled(), []string{TagEvent, TagReminder, TagThought, TagOther}, "enabled mismatch")
}

func TestToggle(t *testing.T) {
	sel := AllTags()
	toggled := sel.Toggle(TagReminder)

	assert.Equal(t, toggled.Has(TagReminder), false, "reminder should be off")
	assert.Equal(t, sel.Has(TagReminder), true, "original selection should not change")
	assert.Equal(t, toggled.Toggle(TagReminder).Has(TagReminder), true, "reminder should be back on")
}

func TestParseTagSelection(t *testing.T) {
	testCases := []struct {
		names    []string
		expected []string
		err      error
	}{
		{
			names:    nil,
			expected: []string{TagEvent, TagReminder, TagThought, TagOther},
		},
		{
			names:    []string{"reminder", "THOUGHT"},
			expected: []string{TagReminder, TagThought},
		},
		{
			names: []string{"event", "meeting"},
			err:   ErrInvalidTag,
		},
	}

	for _, tc := range testCases {
		t.Run("", func(t *testing.T) {
			sel, err := ParseTagSelection(tc.names)

			assert.Equal(t, errors.Cause(err), tc.err, "error mismatch")
			if tc.err == nil {
				assert.DeepEqual(t, sel.Enabled(), tc.expected, "selection mismatch")
			}
		})
	}
}

func TestCanonicalTag(t *testing.T) {
	got, err := CanonicalTag(" other ")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, got, TagOther, "tag mismatch")

	_, err = CanonicalTag("party")
	assert.Equal(t, errors.Cause(err), ErrInvalidTag, "error mismatch")
}
