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

// Package events creates, changes and queries events on the remote source
package events

import (
	"context"

	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

// ErrMissingEventID is returned when changing an event that was never persisted
var ErrMissingEventID = errors.New("event has no id")

// Service forwards event operations to a remote source
type Service struct {
	remote remote.Source
}

// New returns a service over the remote source
func New(src remote.Source) *Service {
	return &Service{remote: src}
}

// Create stores a new event and returns its id. The document is created
// first and then patched with its own key as the event id. The operation
// succeeds only when both steps do.
func (s *Service) Create(ctx context.Context, e event.Event) (string, error) {
	if err := event.Validate(e); err != nil {
		return "", errors.Wrap(err, "validating event")
	}

	e.EventID = ""
	if e.Images == nil {
		e.Images = []string{}
	}

	key, err := s.remote.Add(ctx, e)
	if err != nil {
		return "", errors.Wrap(err, "adding event")
	}

	if err := s.remote.SetEventID(ctx, key); err != nil {
		return "", errors.Wrapf(err, "setting event id of %s", key)
	}

	return key, nil
}

// Update replaces the stored event
func (s *Service) Update(ctx context.Context, e event.Event) error {
	if !e.Persisted() {
		return ErrMissingEventID
	}

	if err := s.remote.Edit(ctx, e); err != nil {
		return errors.Wrapf(err, "editing event %s", e.EventID)
	}

	return nil
}

// Delete removes the stored event
func (s *Service) Delete(ctx context.Context, e event.Event) error {
	if !e.Persisted() {
		return ErrMissingEventID
	}

	if err := s.remote.Delete(ctx, e); err != nil {
		return errors.Wrapf(err, "deleting event %s", e.EventID)
	}

	return nil
}

func orEmpty(events []event.Event, err error, what string) []event.Event {
	if err != nil {
		log.Debug("querying %s: %s\n", what, err)
		return []event.Event{}
	}
	if events == nil {
		return []event.Event{}
	}

	return events
}

// QueryMine returns the events of the user, or an empty list on failure
func (s *Service) QueryMine(ctx context.Context, userID string) []event.Event {
	events, err := s.remote.GetMyEvents(ctx, userID)
	return orEmpty(events, err, "own events")
}

// QueryPublic returns the public events from the most recent date, or an
// empty list on failure
func (s *Service) QueryPublic(ctx context.Context) []event.Event {
	events, err := s.remote.GetPublicEvents(ctx)
	return event.SortByDateDesc(orEmpty(events, err, "public events"))
}

// QueryMineOnDate returns the events of the user on the date, or an empty
// list on failure
func (s *Service) QueryMineOnDate(ctx context.Context, userID, date string) []event.Event {
	events, err := s.remote.GetMyEventsOnDate(ctx, userID, date)
	return orEmpty(events, err, "events on "+date)
}

// Find returns the event of the user with the given id
func (s *Service) Find(ctx context.Context, userID, eventID string) (event.Event, bool) {
	for _, e := range s.QueryMine(ctx, userID) {
		if e.EventID == eventID {
			return e, true
		}
	}

	return event.Event{}, false
}
