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

// Package remote defines the remote event store consumed by the cli
package remote

import (
	"context"

	"github.com/chronicle/chronicle/pkg/event"
)

// Source is a remote store of events. Every operation makes a single
// attempt and reports its failure to the caller.
type Source interface {
	// GetMyEvents returns all events owned by the user
	GetMyEvents(ctx context.Context, userID string) ([]event.Event, error)
	// GetPublicEvents returns all events shared publicly
	GetPublicEvents(ctx context.Context) ([]event.Event, error)
	// GetMyEventsOnDate returns the events owned by the user on the date
	GetMyEventsOnDate(ctx context.Context, userID, date string) ([]event.Event, error)
	// Add creates a document for the event and returns its key
	Add(ctx context.Context, e event.Event) (string, error)
	// SetEventID stores the document key in the eventId field of the document
	SetEventID(ctx context.Context, key string) error
	// Edit replaces the document identified by e.EventID
	Edit(ctx context.Context, e event.Event) error
	// Delete removes the document identified by e.EventID
	Delete(ctx context.Context, e event.Event) error
}
