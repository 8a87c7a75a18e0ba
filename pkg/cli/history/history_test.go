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

package history

import (
	"context"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
)

var (
	gym     = event.Event{EventID: "e1", UserID: "alice", Title: "Gym", Body: "Leg day", Date: "2024-06-01", Images: []string{}, Tag: event.TagEvent}
	dentist = event.Event{EventID: "e2", UserID: "alice", Title: "Dentist", Body: "Checkup", Date: "2024-06-03", Time: "10:30", Images: []string{}, Tag: event.TagReminder}
	other   = event.Event{EventID: "e3", UserID: "bob", Title: "Run", Body: "5k", Date: "2024-06-02", Images: []string{}, Tag: event.TagEvent}
)

func cachedHistory(t *testing.T, db *database.DB) string {
	s, err := database.GetSetting(db, database.SettingID)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		return ""
	}

	return s.DiaryHistory
}

func mustEncode(t *testing.T, events []event.Event) string {
	s, err := event.EncodeSnapshot(events)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestLoad_Online(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	src := remote.NewMemory(gym, dentist, other)
	l := New(src, db, connectivity.Static(true))

	got := l.Load(context.Background(), "alice")
	l.Flush()

	assert.DeepEqual(t, got, []event.Event{gym, dentist}, "live events mismatch")
	assert.Equal(t, cachedHistory(t, db), mustEncode(t, []event.Event{gym, dentist}), "cache mismatch")
}

func TestLoad_OnlinePreservesOtherSettings(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	if err := database.SetDarkTheme(db, true); err != nil {
		t.Fatal(err)
	}

	l := New(remote.NewMemory(gym), db, connectivity.Static(true))
	l.Load(context.Background(), "alice")
	l.Flush()

	s, err := database.GetSetting(db, database.SettingID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, s.IsDarkTheme, true, "dark theme should survive a history save")
	assert.Equal(t, s.DiaryHistory, mustEncode(t, []event.Event{gym}), "history mismatch")
}

func TestLoad_OnlineDoesNotReadCache(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	if err := database.SaveHistory(db, mustEncode(t, []event.Event{other})); err != nil {
		t.Fatal(err)
	}

	l := New(remote.NewMemory(), db, connectivity.Static(true))
	got := l.Load(context.Background(), "alice")
	l.Flush()

	assert.DeepEqual(t, got, []event.Event{}, "online result should ignore the cache")
	assert.Equal(t, cachedHistory(t, db), "[]", "empty live result should be cached")
}

func TestLoad_OnlineFailure(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	prior := mustEncode(t, []event.Event{gym})
	if err := database.SaveHistory(db, prior); err != nil {
		t.Fatal(err)
	}

	src := remote.NewMemory(gym)
	src.Err = errors.New("permission denied")
	l := New(src, db, connectivity.Static(true))

	got := l.Load(context.Background(), "alice")
	l.Flush()

	assert.DeepEqual(t, got, []event.Event{}, "failure should yield an empty list")
	assert.Equal(t, cachedHistory(t, db), prior, "failure should not touch the cache")
	assert.DeepEqual(t, src.Calls, []string{"GetMyEvents"}, "remote should be called exactly once")
}

func TestLoad_Offline(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	if err := database.SaveHistory(db, mustEncode(t, []event.Event{gym, dentist})); err != nil {
		t.Fatal(err)
	}

	src := remote.NewMemory(other)
	l := New(src, db, connectivity.Static(false))

	got := l.Load(context.Background(), "alice")

	assert.DeepEqual(t, got, []event.Event{gym, dentist}, "cached events mismatch")
	assert.Equal(t, len(src.Calls), 0, "remote should not be called offline")
}

func TestLoad_OfflineEmpty(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, db *database.DB)
	}{
		{
			name:  "no record",
			setup: func(t *testing.T, db *database.DB) {},
		},
		{
			name: "sentinel",
			setup: func(t *testing.T, db *database.DB) {
				if err := database.SetDarkTheme(db, true); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "blank",
			setup: func(t *testing.T, db *database.DB) {
				if err := database.SaveHistory(db, ""); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "malformed",
			setup: func(t *testing.T, db *database.DB) {
				if err := database.SaveHistory(db, `[{"eventId":`); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := database.InitTestMemoryDB(t)
			tc.setup(t, db)

			l := New(remote.NewMemory(gym), db, connectivity.Static(false))

			assert.DeepEqual(t, l.Load(context.Background(), "alice"), []event.Event{}, "expected an empty list")
		})
	}
}

func TestLoad_OnlineThenOffline(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	src := remote.NewMemory(gym, dentist)

	online := New(src, db, connectivity.Static(true))
	live := online.Load(context.Background(), "alice")
	online.Flush()

	offline := New(src, db, connectivity.Static(false))
	cached := offline.Load(context.Background(), "alice")

	assert.DeepEqual(t, cached, live, "offline result should equal the last live result")
}
