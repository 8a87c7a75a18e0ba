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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/pkg/errors"
)

func TestEnsureDir(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "test", "nested", "dir")

	err := EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed")

	info, err := os.Stat(testPath)
	assert.Equal(t, err, nil, "directory should exist")
	assert.Equal(t, info.IsDir(), true, "should be a directory")

	err = EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed on existing directory")
}

func TestFileExists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f")

	ok, err := FileExists(p)
	assert.Equal(t, err, nil, "unexpected error")
	assert.Equal(t, ok, false, "file should not exist")

	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ok, err = FileExists(p)
	assert.Equal(t, err, nil, "unexpected error")
	assert.Equal(t, ok, true, "file should exist")
}

// a minimal png header is enough for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()

	img := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(img, pngHeader, 0644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}

	b, contentType, err := ReadImage(img)
	assert.Equal(t, err, nil, "unexpected error")
	assert.Equal(t, contentType, "image/png", "content type mismatch")
	assert.Equal(t, len(b), len(pngHeader), "content length mismatch")

	_, _, err = ReadImage(txt)
	assert.Equal(t, errors.Cause(err), ErrNotImage, "error mismatch")
}
