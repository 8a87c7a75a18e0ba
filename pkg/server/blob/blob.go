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

// Package blob stores uploaded files under keys like "images/image_<uuid>.png"
package blob

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no blob exists at the key
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidKey is returned for keys that escape the store
	ErrInvalidKey = errors.New("invalid blob key")
)

// Object is an opened blob
type Object interface {
	io.ReadSeekCloser
	ModTime() time.Time
}

// Store persists blobs
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// Dir is a store rooted at a local directory
type Dir struct {
	root string
}

// NewDir returns a store writing under root, creating it if necessary
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating blob directory %s", root)
	}

	return &Dir{root: root}, nil
}

// ValidateKey checks that key is a clean relative slash separated path
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return errors.Wrapf(ErrInvalidKey, "'%s'", key)
	}
	if path.Clean(key) != key {
		return errors.Wrapf(ErrInvalidKey, "'%s'", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return errors.Wrapf(ErrInvalidKey, "'%s'", key)
		}
	}

	return nil
}

func (d *Dir) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	return filepath.Join(d.root, filepath.FromSlash(key)), nil
}

// Put writes r to key through a temporary file so that readers never see
// a partial blob
func (d *Dir) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := d.path(key)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, errors.Wrap(err, "creating temporary file")
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, errors.Wrap(err, "writing blob")
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrap(err, "closing blob")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		return 0, errors.Wrap(err, "moving blob into place")
	}

	return n, nil
}

type file struct {
	*os.File
	modTime time.Time
}

func (f file) ModTime() time.Time {
	return f.modTime
}

// Open opens the blob at key
func (d *Dir) Open(ctx context.Context, key string) (Object, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "'%s'", key)
	} else if err != nil {
		return nil, errors.Wrapf(err, "opening %s", key)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "reading info of %s", key)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.Wrapf(ErrNotFound, "'%s'", key)
	}

	return file{File: f, modTime: info.ModTime()}, nil
}

// Delete removes the blob at key. Deleting a missing blob is not an error.
func (d *Dir) Delete(ctx context.Context, key string) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", key)
	}

	return nil
}
