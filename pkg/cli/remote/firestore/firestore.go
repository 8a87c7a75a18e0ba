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

// Package firestore implements the remote event source on a Cloud Firestore
// collection
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

// Collection is the name of the collection holding event documents
const Collection = "events"

// Source reads and writes events in Firestore
type Source struct {
	client *firestore.Client
	col    string
}

// Open connects to the Firestore project. The FIRESTORE_EMULATOR_HOST
// environment variable points the client at a local emulator.
func Open(ctx context.Context, projectID string) (*Source, error) {
	c, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to firestore project %s", projectID)
	}

	return New(c, Collection), nil
}

// New returns a source over the collection of an existing client
func New(c *firestore.Client, collection string) *Source {
	return &Source{client: c, col: collection}
}

// Close closes the underlying client
func (s *Source) Close() error {
	return s.client.Close()
}

func (s *Source) docs(ctx context.Context, q firestore.Query) ([]event.Event, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}

	ret := make([]event.Event, 0, len(snaps))
	for _, snap := range snaps {
		e := event.New()
		if err := snap.DataTo(&e); err != nil {
			return nil, errors.Wrapf(err, "decoding document %s", snap.Ref.ID)
		}
		if e.Images == nil {
			e.Images = []string{}
		}

		ret = append(ret, e)
	}

	return ret, nil
}

// GetMyEvents returns the events owned by the user
func (s *Source) GetMyEvents(ctx context.Context, userID string) ([]event.Event, error) {
	return s.docs(ctx, s.client.Collection(s.col).Where("userId", "==", userID))
}

// GetPublicEvents returns the public events from the most recent date
func (s *Source) GetPublicEvents(ctx context.Context) ([]event.Event, error) {
	events, err := s.docs(ctx, s.client.Collection(s.col).Where("isPublic", "==", true))
	if err != nil {
		return nil, err
	}

	return event.SortByDateDesc(events), nil
}

// GetMyEventsOnDate returns the events owned by the user on the date
func (s *Source) GetMyEventsOnDate(ctx context.Context, userID, date string) ([]event.Event, error) {
	q := s.client.Collection(s.col).Where("userId", "==", userID).Where("date", "==", date)

	return s.docs(ctx, q)
}

// Add creates a document with a generated key
func (s *Source) Add(ctx context.Context, e event.Event) (string, error) {
	ref, _, err := s.client.Collection(s.col).Add(ctx, e)
	if err != nil {
		return "", errors.Wrap(err, "adding document")
	}

	return ref.ID, nil
}

// SetEventID stores the document key in its eventId field
func (s *Source) SetEventID(ctx context.Context, key string) error {
	_, err := s.client.Collection(s.col).Doc(key).Update(ctx, []firestore.Update{
		{Path: "eventId", Value: key},
	})
	if err != nil {
		return errors.Wrapf(err, "updating document %s", key)
	}

	return nil
}

// Edit replaces the document
func (s *Source) Edit(ctx context.Context, e event.Event) error {
	if _, err := s.client.Collection(s.col).Doc(e.EventID).Set(ctx, e); err != nil {
		return errors.Wrapf(err, "setting document %s", e.EventID)
	}

	return nil
}

// Delete removes the document
func (s *Source) Delete(ctx context.Context, e event.Event) error {
	if _, err := s.client.Collection(s.col).Doc(e.EventID).Delete(ctx); err != nil {
		return errors.Wrapf(err, "deleting document %s", e.EventID)
	}

	return nil
}
