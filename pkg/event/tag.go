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
	"strings"

	"github.com/pkg/errors"
)

// Tags classify an event
const (
	TagEvent    = "Event"
	TagReminder = "Reminder"
	TagThought  = "Thought"
	TagOther    = "Other"
)

var tags = []string{TagEvent, TagReminder, TagThought, TagOther}

// Tags returns the known tags in display order
func Tags() []string {
	ret := make([]string, len(tags))
	copy(ret, tags)

	return ret
}

// IsTag reports whether s is one of the known tags
func IsTag(s string) bool {
	for _, t := range tags {
		if t == s {
			return true
		}
	}

	return false
}

// TagSelection holds an independent toggle per tag
type TagSelection map[string]bool

// AllTags returns a selection with every tag enabled
func AllTags() TagSelection {
	sel := TagSelection{}
	for _, t := range tags {
		sel[t] = true
	}

	return sel
}

// Has reports whether the tag is enabled
func (s TagSelection) Has(tag string) bool {
	return s[tag]
}

// Toggle flips the tag and returns the new selection. The receiver is not modified.
func (s TagSelection) Toggle(tag string) TagSelection {
	ret := TagSelection{}
	for k, v := range s {
		ret[k] = v
	}
	ret[tag] = !ret[tag]

	return ret
}

// Enabled returns the enabled tags in display order
func (s TagSelection) Enabled() []string {
	ret := []string{}
	for _, t := range tags {
		if s[t] {
			ret = append(ret, t)
		}
	}

	return ret
}

// ParseTagSelection builds a selection enabling only the given tag names.
// Matching is case-insensitive. An empty list selects all tags.
func ParseTagSelection(names []string) (TagSelection, error) {
	if len(names) == 0 {
		return AllTags(), nil
	}

	sel := TagSelection{}
	for _, n := range names {
		tag, ok := canonicalTag(n)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidTag, "'%s'", n)
		}

		sel[tag] = true
	}

	return sel, nil
}

// CanonicalTag returns the known tag matching s case-insensitively
func CanonicalTag(s string) (string, error) {
	tag, ok := canonicalTag(s)
	if !ok {
		return "", errors.Wrapf(ErrInvalidTag, "'%s'", s)
	}

	return tag, nil
}

func canonicalTag(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, t := range tags {
		if strings.EqualFold(t, s) {
			return t, true
		}
	}

	return "", false
}
