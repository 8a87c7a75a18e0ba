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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/pkg/errors"
)

// Temporary files holding the body being written
const (
	tmpContentFileBase = "CHRONICLE_TMPCONTENT"
	tmpContentFileExt  = "md"
)

// ErrEmptyEditor is returned when no editor command is configured
var ErrEmptyEditor = errors.New("no editor configured")

// GetTmpContentPath returns a free path for a temporary file containing
// the body being added or edited
func GetTmpContentPath(ctx context.Ctx) (string, error) {
	dir := filepath.Join(ctx.Paths.Cache, consts.AppDirName)

	for i := 0; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d.%s", tmpContentFileBase, i, tmpContentFileExt))

		ok, err := utils.FileExists(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "checking if file exists at %s", candidate)
		}
		if !ok {
			return candidate, nil
		}
	}
}

func newEditorCmd(editor, fpath string) (*exec.Cmd, error) {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return nil, ErrEmptyEditor
	}

	return exec.Command(args[0], append(args[1:], fpath)...), nil
}

// GetEditorInput writes initial into a temporary file, opens it in the
// configured editor and returns the content once the editor exits.
func GetEditorInput(ctx context.Ctx, initial string) (string, error) {
	fpath, err := GetTmpContentPath(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporary content file path")
	}

	if err := os.WriteFile(fpath, []byte(initial), 0644); err != nil {
		return "", errors.Wrap(err, "creating a temporary content file")
	}
	defer os.Remove(fpath)

	cmd, err := newEditorCmd(ctx.Config.Editor, fpath)
	if err != nil {
		return "", errors.Wrap(err, "creating an editor command")
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(err, "running the editor")
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		return "", errors.Wrap(err, "reading the temporary content file")
	}

	return strings.TrimRight(string(b), "\n"), nil
}
