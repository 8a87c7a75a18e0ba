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
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

func init() {
	color.NoColor = true
}

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Month
		err      bool
	}{
		{input: "3", expected: time.March},
		{input: "12", expected: time.December},
		{input: "january", expected: time.January},
		{input: "Sep", expected: time.September},
		{input: "0", err: true},
		{input: "13", err: true},
		{input: "ju", err: true},
		{input: "smarch", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMonth(tc.input)
			if tc.err {
				assert.Equal(t, errors.Cause(err), ErrInvalidMonth, "error mismatch")
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got, tc.expected, "month mismatch")
		})
	}
}

func runHistory(t *testing.T, ctx context.Ctx, args ...string) string {
	cmd := NewCmd(ctx)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func seed() *remote.Memory {
	return remote.NewMemory(
		event.Event{EventID: "e1", UserID: "user-1", Title: "Hike", Body: "b", Date: "2024-03-10", Tag: event.TagEvent},
		event.Event{EventID: "e2", UserID: "user-1", Title: "Call", Body: "b", Date: "2024-03-12", Tag: event.TagReminder},
		event.Event{EventID: "e3", UserID: "user-1", Title: "Idea", Body: "b", Date: "2024-02-02", Tag: event.TagThought},
		event.Event{EventID: "e4", UserID: "user-2", Title: "Theirs", Body: "b", Date: "2024-03-10", Tag: event.TagEvent},
	)
}

func TestHistory(t *testing.T) {
	testCases := []struct {
		args     []string
		contains []string
		excludes []string
	}{
		{
			args:     []string{},
			contains: []string{"Tue 12th March, 2024", "Call", "Sun 10th March, 2024", "Hike"},
			excludes: []string{"Idea", "Theirs"},
		},
		{
			args:     []string{"--tag", "reminder"},
			contains: []string{"Call"},
			excludes: []string{"Hike", "Idea"},
		},
		{
			args:     []string{"--month", "feb"},
			contains: []string{"Idea"},
			excludes: []string{"Hike", "Call"},
		},
		{
			args:     []string{"--month", "4"},
			contains: []string{event.MsgNoEventsThisMonth},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			ctx := context.InitTestCtx(t)
			ctx.Remote = seed()

			out := runHistory(t, ctx, tc.args...)

			for _, s := range tc.contains {
				assert.Equal(t, strings.Contains(out, s), true, fmt.Sprintf("output should contain %q:\n%s", s, out))
			}
			for _, s := range tc.excludes {
				assert.Equal(t, strings.Contains(out, s), false, fmt.Sprintf("output should not contain %q:\n%s", s, out))
			}
		})
	}
}

func TestHistory_Order(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Remote = seed()

	out := runHistory(t, ctx)

	assert.Equal(t, strings.Index(out, "Call") < strings.Index(out, "Hike"), true, "most recent day should come first")
}

func TestHistory_Empty(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Remote = remote.NewMemory()

	out := runHistory(t, ctx)

	assert.Equal(t, out, event.MsgNoEvents+"\n", "output mismatch")
}

func TestHistory_Offline(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Remote = seed()

	// an online load writes the snapshot
	runHistory(t, ctx)

	var snapshot string
	database.MustScan(t, "reading snapshot", ctx.DB.QueryRow("SELECT diary_history FROM settings WHERE id = ?", database.SettingID), &snapshot)
	assert.NotEqual(t, snapshot, event.EmptySnapshot, "snapshot should be written")

	mem := remote.NewMemory()
	ctx.Remote = mem
	ctx.Connectivity = connectivity.Static(false)

	out := runHistory(t, ctx)

	assert.Equal(t, strings.Contains(out, "Hike"), true, "cached events should be shown offline")
	assert.Equal(t, len(mem.Calls), 0, "remote should not be called offline")
}
