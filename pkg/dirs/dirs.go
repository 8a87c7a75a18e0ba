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

// Package dirs resolves the XDG base directories used for config, data and cache.
package dirs

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
)

// Environment variables of the XDG base directory specification
const (
	EnvConfigHome = "XDG_CONFIG_HOME"
	EnvDataHome   = "XDG_DATA_HOME"
	EnvCacheHome  = "XDG_CACHE_HOME"
)

// Dirs is a resolved set of base directories
type Dirs struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// Load resolves the base directories from the environment, falling back to
// the XDG defaults under the home directory of the current user.
func Load() (Dirs, error) {
	home, err := homeDir()
	if err != nil {
		return Dirs{}, err
	}

	return Dirs{
		Home:   home,
		Config: fromEnv(EnvConfigHome, filepath.Join(home, ".config")),
		Data:   fromEnv(EnvDataHome, filepath.Join(home, ".local", "share")),
		Cache:  fromEnv(EnvCacheHome, filepath.Join(home, ".cache")),
	}, nil
}

// App returns the directories namespaced for the given application name
func (d Dirs) App(name string) Dirs {
	return Dirs{
		Home:   d.Home,
		Config: filepath.Join(d.Config, name),
		Data:   filepath.Join(d.Data, name),
		Cache:  filepath.Join(d.Cache, name),
	}
}

func homeDir() (string, error) {
	if h := os.Getenv("HOME"); h != "" {
		return h, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "getting home dir")
	}

	return usr.HomeDir, nil
}

func fromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
