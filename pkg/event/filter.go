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
	"time"
)

// Filter returns the events whose tag is enabled in sel and whose date falls
// in the given month and year. The input is not modified.
func Filter(events []Event, sel TagSelection, month time.Month, year int) []Event {
	ret := []Event{}

	for _, e := range events {
		if !sel.Has(e.Tag) {
			continue
		}
		if !InMonth(e, month, year) {
			continue
		}

		ret = append(ret, e)
	}

	return ret
}

// InMonth reports whether the event date falls in the given month and year
func InMonth(e Event, month time.Month, year int) bool {
	d, err := e.ParsedDate()
	if err != nil {
		return false
	}

	return d.Month() == month && d.Year() == year
}

// OnDate returns the events recorded on the given date
func OnDate(events []Event, date string) []Event {
	ret := []Event{}

	want, err := ParseDate(date)
	if err != nil {
		return ret
	}

	for _, e := range events {
		d, err := e.ParsedDate()
		if err != nil {
			continue
		}
		if d.Equal(want) {
			ret = append(ret, e)
		}
	}

	return ret
}

// EmptyKind tells apart the reasons a filtered history can be empty
type EmptyKind int

const (
	// HasEvents means there is something to show
	HasEvents EmptyKind = iota
	// NoEvents means the user has not recorded anything
	NoEvents
	// NoEventsThisMonth means events exist but none match the selection
	NoEventsThisMonth
)

// Messages shown for empty results
const (
	MsgNoEvents          = "Looks like you have no events yet"
	MsgNoEventsThisMonth = "No events for this month"
	MsgNothingForDay     = "Seems Nothing Recorded For This Day"
)

// EmptyState classifies a filtered result against the set it was filtered from
func EmptyState(all, filtered []Event) EmptyKind {
	if len(all) == 0 {
		return NoEvents
	}
	if len(filtered) == 0 {
		return NoEventsThisMonth
	}

	return HasEvents
}

// Message returns the text rendered for the empty state
func (k EmptyKind) Message() string {
	switch k {
	case NoEvents:
		return MsgNoEvents
	case NoEventsThisMonth:
		return MsgNoEventsThisMonth
	default:
		return ""
	}
}
