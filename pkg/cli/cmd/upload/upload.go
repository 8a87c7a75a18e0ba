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

// Package upload implements the upload command and the image uploads of
// other commands
package upload

import (
	stdctx "context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  chronicle upload ~/Pictures/beach.jpg`

// Uploader stores image content and returns its download URL
type Uploader interface {
	UploadImage(ctx stdctx.Context, filename string, content []byte) (string, error)
}

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new upload command
func NewCmd(ctx context.Ctx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "upload <path>",
		Short:   "Upload an image and print its URL",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.Ctx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		urls, err := Images(cmd.Context(), ctx.DB, ctx.Client(), ctx.Clock.Now, args)
		if err != nil {
			return err
		}

		log.Success("uploaded\n")
		fmt.Fprintln(cmd.OutOrStdout(), urls[0])

		return nil
	}
}

func uploadOne(c stdctx.Context, db *database.DB, up Uploader, now func() time.Time, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}

	cached, err := database.GetImageUpload(db, abs)
	if err != nil {
		return "", err
	}
	if cached != nil {
		log.Debug("reusing upload of %s\n", abs)
		return cached.URL, nil
	}

	content, _, err := utils.ReadImage(abs)
	if err != nil {
		return "", err
	}

	url, err := up.UploadImage(c, filepath.Base(abs), content)
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s", path)
	}

	u := database.ImageUpload{Path: abs, URL: url, UploadedAt: now().Unix()}
	if err := u.Save(db); err != nil {
		log.Debug("caching upload of %s: %s\n", abs, err)
	}

	return url, nil
}

// Images uploads the files concurrently and returns their URLs in the
// order the uploads completed. Files uploaded before are not sent again.
func Images(c stdctx.Context, db *database.DB, up Uploader, now func() time.Time, paths []string) ([]string, error) {
	if c == nil {
		c = stdctx.Background()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		urls     = []string{}
		firstErr error
	)

	for _, p := range paths {
		wg.Add(1)

		go func(p string) {
			defer wg.Done()

			url, err := uploadOne(c, db, up, now, p)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			urls = append(urls, url)
		}(p)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return urls, nil
}
