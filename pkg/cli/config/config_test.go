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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/chronicle/chronicle/pkg/cli/consts"
)

func setupConfigDir(t *testing.T) string {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, consts.AppDirName), 0755); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestReadWrite(t *testing.T) {
	dir := setupConfigDir(t)

	cf := Default()
	cf.Offline = true
	cf.Remote = consts.RemoteFirestore
	cf.FirestoreProject = "chronicle-test"

	if err := Write(dir, cf); err != nil {
		t.Fatal(err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, got, cf, "config mismatch")
}

func TestRead_PartialFile(t *testing.T) {
	dir := setupConfigDir(t)

	if err := os.WriteFile(GetPath(dir), []byte("offline: true\napiEndpoint: http://example.com/api\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got.Offline, true, "offline mismatch")
	assert.Equal(t, got.APIEndpoint, "http://example.com/api", "endpoint mismatch")
	assert.Equal(t, got.Remote, consts.RemoteServer, "remote should default")
	assert.Equal(t, got.ChatModel, DefaultChatModel, "chat model should default")
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(t.TempDir()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEditorCommand(t *testing.T) {
	testCases := []struct {
		env      string
		expected string
	}{
		{env: "", expected: "vi"},
		{env: "subl", expected: "subl -n -w"},
		{env: "code", expected: "code -n -w"},
		{env: "nvim", expected: "nvim"},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("EDITOR", tc.env)

			assert.Equal(t, EditorCommand(), tc.expected, "editor command mismatch")
		})
	}
}
