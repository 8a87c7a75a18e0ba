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

package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Memory when no document has the given key
var ErrNotFound = errors.New("document not found")

// Memory is an in-process Source keeping documents in insertion order.
// Setting Err makes every call fail with it.
type Memory struct {
	mu    sync.Mutex
	keys  []string
	docs  map[string]event.Event
	next  int
	Err   error
	Calls []string
}

// NewMemory returns an empty Memory populated with the given events. Events
// without an EventID are assigned one.
func NewMemory(events ...event.Event) *Memory {
	m := &Memory{docs: map[string]event.Event{}}
	for _, e := range events {
		if e.EventID == "" {
			e.EventID = m.newKey()
		}

		m.keys = append(m.keys, e.EventID)
		m.docs[e.EventID] = e
	}

	return m
}

func (m *Memory) newKey() string {
	m.next++
	return fmt.Sprintf("doc-%d", m.next)
}

func (m *Memory) record(call string) error {
	m.Calls = append(m.Calls, call)
	return m.Err
}

func (m *Memory) query(pred func(event.Event) bool) []event.Event {
	ret := []event.Event{}
	for _, k := range m.keys {
		if e := m.docs[k]; pred(e) {
			ret = append(ret, e)
		}
	}

	return ret
}

// GetMyEvents returns the events owned by the user
func (m *Memory) GetMyEvents(ctx context.Context, userID string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("GetMyEvents"); err != nil {
		return nil, err
	}

	return m.query(func(e event.Event) bool { return e.UserID == userID }), nil
}

// GetPublicEvents returns the public events
func (m *Memory) GetPublicEvents(ctx context.Context) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("GetPublicEvents"); err != nil {
		return nil, err
	}

	return m.query(func(e event.Event) bool { return e.IsPublic }), nil
}

// GetMyEventsOnDate returns the events owned by the user on the date
func (m *Memory) GetMyEventsOnDate(ctx context.Context, userID, date string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("GetMyEventsOnDate"); err != nil {
		return nil, err
	}

	return m.query(func(e event.Event) bool { return e.UserID == userID && e.Date == date }), nil
}

// Add stores the event under a new key. The stored eventId is left as given.
func (m *Memory) Add(ctx context.Context, e event.Event) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Add"); err != nil {
		return "", err
	}

	key := m.newKey()
	m.keys = append(m.keys, key)
	m.docs[key] = e

	return key, nil
}

// SetEventID patches the eventId of the document
func (m *Memory) SetEventID(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("SetEventID"); err != nil {
		return err
	}

	e, ok := m.docs[key]
	if !ok {
		return errors.Wrap(ErrNotFound, key)
	}
	e.EventID = key
	m.docs[key] = e

	return nil
}

// Edit replaces the document
func (m *Memory) Edit(ctx context.Context, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Edit"); err != nil {
		return err
	}
	if _, ok := m.docs[e.EventID]; !ok {
		return errors.Wrap(ErrNotFound, e.EventID)
	}
	m.docs[e.EventID] = e

	return nil
}

// Delete removes the document
func (m *Memory) Delete(ctx context.Context, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Delete"); err != nil {
		return err
	}
	if _, ok := m.docs[e.EventID]; !ok {
		return errors.Wrap(ErrNotFound, e.EventID)
	}
	delete(m.docs, e.EventID)

	keys := m.keys[:0]
	for _, k := range m.keys {
		if k != e.EventID {
			keys = append(keys, k)
		}
	}
	m.keys = keys

	return nil
}

// Doc returns the stored document with the given key
func (m *Memory) Doc(key string) (event.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.docs[key]
	return e, ok
}
