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
	"sort"
	"time"

	"github.com/chronicle/chronicle/pkg/clock"
)

// Group is the set of events recorded on one calendar date
type Group struct {
	Date   time.Time
	Key    string
	Events []Event
}

// GroupByDate groups events by calendar date. Groups are ordered from the most
// recent date and events within a group keep the order in which they arrived.
// Events whose date cannot be parsed are left out.
func GroupByDate(events []Event) []Group {
	idx := map[string]int{}
	groups := []Group{}

	for _, e := range events {
		d, err := e.ParsedDate()
		if err != nil {
			continue
		}

		key := d.Format(clock.DateLayout)
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, Group{Date: d, Key: key})
		}

		groups[i].Events = append(groups[i].Events, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}

// SortByDateDesc returns a copy of events ordered from the most recent date.
// Events on the same date keep their relative order.
func SortByDateDesc(events []Event) []Event {
	ret := make([]Event, len(events))
	copy(ret, events)

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Date > ret[j].Date
	})

	return ret
}
