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

package explore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func runExplore(t *testing.T, ctx context.Ctx, args ...string) string {
	cmd := NewCmd(ctx)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func TestExplore(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Remote = remote.NewMemory(
		event.Event{EventID: "e1", UserID: "user-2", Title: "Old", Body: "b", Date: "2024-01-01", IsPublic: true, Tag: event.TagEvent},
		event.Event{EventID: "e2", UserID: "user-3", Title: "Private", Body: "b", Date: "2024-03-01", Tag: event.TagEvent},
		event.Event{EventID: "e3", UserID: "user-1", Title: "New", Body: "b", Date: "2024-03-05", IsPublic: true, Tag: event.TagEvent},
	)

	out := runExplore(t, ctx)
	assert.Equal(t, strings.Contains(out, "Private"), false, "private events should not be shown")
	assert.Equal(t, strings.Index(out, "New") < strings.Index(out, "Old"), true, "newest should come first")

	out = runExplore(t, ctx, "--limit", "1")
	assert.Equal(t, strings.Contains(out, "New"), true, "newest should be kept")
	assert.Equal(t, strings.Contains(out, "Old"), false, "limit should apply")
}

func TestExplore_Empty(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Remote = remote.NewMemory()

	assert.Equal(t, runExplore(t, ctx), MsgNoPublicEvents+"\n", "output mismatch")
}
