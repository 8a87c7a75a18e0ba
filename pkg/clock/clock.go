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

// Package clock provides a swappable source of the current time
package clock

import (
	"sync"
	"time"
)

// DateLayout is the layout of a calendar date without time of day
const DateLayout = "2006-01-02"

// Clock abstracts the current time so that tests can pin it.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// New returns a clock backed by the system time
func New() Clock {
	return realClock{}
}

// Today returns the calendar date of the clock in its own location
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// Mock is a clock whose time only moves when told to
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMock returns a mock clock pinned at 2024-03-12 09:00 UTC
func NewMock() *Mock {
	return &Mock{
		now: time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC),
	}
}

// SetNow pins the mock to the given time
func (m *Mock) SetNow(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
}

// Advance moves the mock forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}

// Now returns the pinned time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.now
}
