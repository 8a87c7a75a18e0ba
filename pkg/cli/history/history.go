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

// Package history loads the diary history of the signed in user, serving
// the last cached snapshot when the network is unavailable.
package history

import (
	"context"
	"sync"

	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

type kind int

const (
	success kind = iota
	empty
	failure
)

// outcome is the result of one load before it is reduced to a list
type outcome struct {
	kind   kind
	events []event.Event
	err    error
}

func (o outcome) list() []event.Event {
	if o.kind != success {
		return []event.Event{}
	}

	return o.events
}

// Loader loads history from the remote source or the local cache
type Loader struct {
	remote remote.Source
	db     *database.DB
	conn   connectivity.Checker

	wg sync.WaitGroup
}

// New returns a loader over the given collaborators
func New(src remote.Source, db *database.DB, conn connectivity.Checker) *Loader {
	return &Loader{
		remote: src,
		db:     db,
		conn:   conn,
	}
}

// Load returns the events of the user. When online it returns the live
// events and refreshes the cache in the background. When offline it returns
// the cached snapshot. Failures of either path yield an empty list.
func (l *Loader) Load(ctx context.Context, userID string) []event.Event {
	var o outcome
	if l.conn.IsAvailable() {
		o = l.fetch(ctx, userID)
	} else {
		o = l.readCache()
	}

	if o.kind == failure {
		log.Debug("loading history: %s\n", o.err)
	}

	return o.list()
}

func (l *Loader) fetch(ctx context.Context, userID string) outcome {
	events, err := l.remote.GetMyEvents(ctx, userID)
	if err != nil {
		return outcome{kind: failure, err: errors.Wrap(err, "getting events from remote")}
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		if err := l.writeCache(events); err != nil {
			log.Debug("caching history: %s\n", err)
		}
	}()

	if len(events) == 0 {
		return outcome{kind: empty}
	}

	return outcome{kind: success, events: events}
}

func (l *Loader) writeCache(events []event.Event) error {
	snapshot, err := event.EncodeSnapshot(events)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	return database.SaveHistory(l.db, snapshot)
}

func (l *Loader) readCache() outcome {
	s, err := database.GetSetting(l.db, database.SettingID)
	if err != nil {
		return outcome{kind: failure, err: errors.Wrap(err, "reading cached history")}
	}
	if s == nil || event.IsEmptySnapshot(s.DiaryHistory) {
		return outcome{kind: empty}
	}

	events, err := event.DecodeSnapshot(s.DiaryHistory)
	if err != nil {
		return outcome{kind: failure, err: errors.Wrap(err, "decoding cached history")}
	}
	if len(events) == 0 {
		return outcome{kind: empty}
	}

	return outcome{kind: success, events: events}
}

// Flush blocks until all background cache writes have finished
func (l *Loader) Flush() {
	l.wg.Wait()
}
