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

package app

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chronicle/chronicle/pkg/server/blob"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/helpers"
	"github.com/pkg/errors"
)

// MaxImageSize is the largest accepted upload in bytes
const MaxImageSize = 10 << 20

// imageDir is the blob prefix of uploaded images
const imageDir = "images"

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// ImageKey returns the blob key of the image with the file name
func ImageKey(name string) string {
	return imageDir + "/" + name
}

// imageName returns "image_<uuid><ext>" for the uploaded file name
func imageName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return "", errors.Wrapf(ErrInvalidImage, "unsupported extension '%s'", ext)
	}

	id, err := helpers.GenUUID()
	if err != nil {
		return "", err
	}

	return "image_" + id + ext, nil
}

// sniff peeks at the head of r and reports its content type
func sniff(r *bufio.Reader) (string, error) {
	head, err := r.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", errors.Wrap(err, "reading image header")
	}
	if len(head) == 0 {
		return "", errors.Wrap(ErrInvalidImage, "empty upload")
	}

	return http.DetectContentType(head), nil
}

type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, ErrImageTooLarge
	}

	return n, err
}

// SaveImage stores the uploaded image and returns its download URL
func (a *App) SaveImage(ctx context.Context, user database.User, filename string, r io.Reader) (string, error) {
	name, err := imageName(filename)
	if err != nil {
		return "", err
	}

	br := bufio.NewReaderSize(r, 512)
	contentType, err := sniff(br)
	if err != nil {
		return "", err
	}
	// HEIC is not detected by the sniffer
	if !strings.HasPrefix(contentType, "image/") && filepath.Ext(name) != ".heic" {
		return "", errors.Wrapf(ErrInvalidImage, "content type '%s'", contentType)
	}

	key := ImageKey(name)
	size, err := a.Blob.Put(ctx, key, &limitedReader{r: br, n: MaxImageSize})
	if err != nil {
		if errors.Cause(err) == ErrImageTooLarge {
			return "", ErrImageTooLarge
		}
		return "", errors.Wrap(err, "storing image")
	}

	id, err := helpers.GenUUID()
	if err != nil {
		return "", err
	}
	img := database.Image{
		UUID:        id,
		UserID:      user.ID,
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}
	if err := a.DB.WithContext(ctx).Create(&img).Error; err != nil {
		a.Blob.Delete(ctx, key)
		return "", errors.Wrap(err, "saving image record")
	}

	return helpers.JoinURL(a.BaseURL, key), nil
}

// OpenImage opens the stored image with the file name
func (a *App) OpenImage(ctx context.Context, name string) (blob.Object, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, ErrNotFound
	}

	o, err := a.Blob.Open(ctx, ImageKey(name))
	if err != nil {
		c := errors.Cause(err)
		if c == blob.ErrNotFound || c == blob.ErrInvalidKey {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return o, nil
}
