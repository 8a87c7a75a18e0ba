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

// Package event defines the diary entry record and the pure functions that
// group, filter and format collections of entries.
package event

import (
	"strings"
	"time"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/pkg/errors"
)

// Event is a single diary entry. The field order is the canonical order of
// the serialized form.
type Event struct {
	EventID  string   `json:"eventId" firestore:"eventId"`
	UserID   string   `json:"userId" firestore:"userId"`
	Title    string   `json:"title" firestore:"title"`
	Body     string   `json:"body" firestore:"body"`
	Date     string   `json:"date" firestore:"date"`
	Time     string   `json:"time" firestore:"time"`
	Images   []string `json:"images" firestore:"images"`
	Location string   `json:"location" firestore:"location"`
	Weather  string   `json:"weather" firestore:"weather"`
	IsPublic bool     `json:"isPublic" firestore:"isPublic"`
	Tag      string   `json:"tag" firestore:"tag"`
}

var (
	// ErrEmptyTitle is returned when an event has no title
	ErrEmptyTitle = errors.New("title is empty")
	// ErrEmptyBody is returned when an event has no body
	ErrEmptyBody = errors.New("body is empty")
	// ErrInvalidDate is returned when an event date is not a calendar date
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTag is returned when an event tag is not one of the known tags
	ErrInvalidTag = errors.New("invalid tag")
)

// New returns an event populated with the default values
func New() Event {
	return Event{
		Images: []string{},
		Tag:    TagEvent,
	}
}

// ParseDate parses a date in the YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(clock.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "'%s'", s)
	}

	return t, nil
}

// ParsedDate returns the calendar date of the event
func (e Event) ParsedDate() (time.Time, error) {
	return ParseDate(e.Date)
}

// Persisted reports whether the event has been assigned an id by the remote store
func (e Event) Persisted() bool {
	return e.EventID != ""
}

// Validate checks the fields required for creating an event. A reminder
// without a time is accepted.
func Validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(e.Body) == "" {
		return ErrEmptyBody
	}
	if _, err := e.ParsedDate(); err != nil {
		return err
	}
	if !IsTag(e.Tag) {
		return errors.Wrapf(ErrInvalidTag, "'%s'", e.Tag)
	}

	return nil
}
