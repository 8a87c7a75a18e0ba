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
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// EmptySnapshot is the stored value of a history that has never been saved
const EmptySnapshot = "empty"

// IsEmptySnapshot reports whether a stored snapshot holds no history
func IsEmptySnapshot(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == EmptySnapshot
}

// EncodeSnapshot serializes events into the stored history form
func EncodeSnapshot(events []Event) (string, error) {
	out := make([]Event, len(events))
	for i, e := range events {
		if e.Images == nil {
			e.Images = []string{}
		}
		out[i] = e
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "marshalling events")
	}

	return string(b), nil
}

// DecodeSnapshot deserializes a stored history. Fields absent from the stored
// form take the defaults of New.
func DecodeSnapshot(s string) ([]Event, error) {
	if IsEmptySnapshot(s) {
		return []Event{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raws); err != nil {
		return nil, errors.Wrap(err, "unmarshalling snapshot")
	}

	ret := make([]Event, 0, len(raws))
	for i, raw := range raws {
		e := New()
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, errors.Wrapf(err, "unmarshalling event at %d", i)
		}
		if e.Images == nil {
			e.Images = []string{}
		}

		ret = append(ret, e)
	}

	return ret, nil
}
