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

package ui

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/pkg/errors"
)

func TestGetTmpContentPath(t *testing.T) {
	testCases := []struct {
		existing int
		expected string
	}{
		{existing: 0, expected: "CHRONICLE_TMPCONTENT_0.md"},
		{existing: 1, expected: "CHRONICLE_TMPCONTENT_1.md"},
		{existing: 2, expected: "CHRONICLE_TMPCONTENT_2.md"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			ctx := context.InitTestCtx(t)
			dir := filepath.Join(ctx.Paths.Cache, consts.AppDirName)

			for i := 0; i < tc.existing; i++ {
				p, err := GetTmpContentPath(ctx)
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(p, nil, 0644); err != nil {
					t.Fatal(errors.Wrap(err, "preparing the conflicting file"))
				}
			}

			res, err := GetTmpContentPath(ctx)
			if err != nil {
				t.Fatal(errors.Wrap(err, "executing"))
			}

			assert.Equal(t, res, filepath.Join(dir, tc.expected), "filename did not match")
		})
	}
}

func TestNewEditorCmd(t *testing.T) {
	cmd, err := newEditorCmd("code -n -w", "/tmp/x.md")
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, cmd.Args, []string{"code", "-n", "-w", "/tmp/x.md"}, "args mismatch")

	_, err = newEditorCmd("  ", "/tmp/x.md")
	assert.Equal(t, err, ErrEmptyEditor, "error mismatch")
}

func TestGetEditorInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a posix shell")
	}

	ctx := context.InitTestCtx(t)

	script := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho ' and more' >> \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	ctx.Config.Editor = script

	got, err := GetEditorInput(ctx, "draft")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got, "draft and more", "content mismatch")

	p, err := GetTmpContentPath(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, filepath.Base(p), "CHRONICLE_TMPCONTENT_0.md", "temporary file should be removed")
}
