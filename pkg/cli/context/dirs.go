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

package context

import (
	"path/filepath"

	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/pkg/errors"
)

// InitDirs creates the chronicle directories if they don't already exist.
func InitDirs(paths Paths) error {
	for name, base := range map[string]string{
		"config": paths.Config,
		"data":   paths.Data,
		"cache":  paths.Cache,
	} {
		if base == "" {
			continue
		}

		if err := utils.EnsureDir(filepath.Join(base, consts.AppDirName)); err != nil {
			return errors.Wrapf(err, "initializing %s dir", name)
		}
	}

	return nil
}

// DBPath returns the default location of the local database
func (p Paths) DBPath() string {
	return filepath.Join(p.Data, consts.AppDirName, consts.DBFileName)
}

// ImageCacheDir returns the directory holding downloaded images
func (p Paths) ImageCacheDir() string {
	return filepath.Join(p.Cache, consts.AppDirName, consts.ImageCacheDirName)
}
