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

// Package export renders events as an iCalendar feed
package export

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

// ProductID identifies the generator in the PRODID property
const ProductID = "-//Chronicle//Chronicle Diary//EN"

// ReminderDuration is the length of a timed reminder entry
const ReminderDuration = 30 * time.Minute

const timeLayout = clock.DateLayout + " 15:04"

// Calendar builds a calendar with one VEVENT per event. Events whose date
// does not parse are skipped. Reminders with a time of day become timed
// entries in loc, everything else is all-day.
func Calendar(events []event.Event, now time.Time, loc *time.Location) *ics.Calendar {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		date, err := time.ParseInLocation(clock.DateLayout, e.Date, loc)
		if err != nil {
			continue
		}

		uid := e.EventID
		if uid == "" {
			uid = e.Date + "-" + e.Title
		}

		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now)
		ve.SetSummary(e.Title)
		if e.Body != "" {
			ve.SetDescription(e.Body)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Tag != "" {
			ve.AddProperty(ics.ComponentPropertyCategories, e.Tag)
		}

		if start, ok := reminderStart(e, loc); ok {
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(ReminderDuration))
			continue
		}

		ve.SetAllDayStartAt(date)
		ve.SetAllDayEndAt(date.AddDate(0, 0, 1))
	}

	return cal
}

func reminderStart(e event.Event, loc *time.Location) (time.Time, bool) {
	if e.Tag != event.TagReminder || e.Time == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(timeLayout, e.Date+" "+e.Time, loc)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Write serializes the calendar for the events to w
func Write(w io.Writer, events []event.Event, now time.Time, loc *time.Location) error {
	if _, err := io.WriteString(w, Calendar(events, now, loc).Serialize()); err != nil {
		return errors.Wrap(err, "writing calendar")
	}

	return nil
}
