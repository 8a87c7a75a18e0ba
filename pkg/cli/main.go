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

package main

import (
	"os"
	"strings"

	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	// commands
	"github.com/chronicle/chronicle/pkg/cli/cmd/add"
	"github.com/chronicle/chronicle/pkg/cli/cmd/chat"
	"github.com/chronicle/chronicle/pkg/cli/cmd/day"
	"github.com/chronicle/chronicle/pkg/cli/cmd/edit"
	"github.com/chronicle/chronicle/pkg/cli/cmd/explore"
	"github.com/chronicle/chronicle/pkg/cli/cmd/export"
	"github.com/chronicle/chronicle/pkg/cli/cmd/history"
	"github.com/chronicle/chronicle/pkg/cli/cmd/login"
	"github.com/chronicle/chronicle/pkg/cli/cmd/logout"
	"github.com/chronicle/chronicle/pkg/cli/cmd/register"
	"github.com/chronicle/chronicle/pkg/cli/cmd/remove"
	"github.com/chronicle/chronicle/pkg/cli/cmd/root"
	"github.com/chronicle/chronicle/pkg/cli/cmd/settings"
	"github.com/chronicle/chronicle/pkg/cli/cmd/upload"
	"github.com/chronicle/chronicle/pkg/cli/cmd/version"
	"github.com/chronicle/chronicle/pkg/cli/cmd/weather"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts the value of --dbPath wherever it appears in args.
// It returns an empty string if the flag is absent.
func parseDBPath(args []string) string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}

func run() int {
	// The database is opened before cobra parses flags, and --dbPath may
	// follow the subcommand.
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		log.Errorf("%s\n", errors.Wrap(err, "initializing context"))
		return 1
	}
	defer func() {
		if err := ctx.Close(); err != nil {
			log.Debug("closing context: %s\n", err)
		}
	}()

	root.Register(
		add.NewCmd(*ctx),
		edit.NewCmd(*ctx),
		remove.NewCmd(*ctx),
		history.NewCmd(*ctx),
		day.NewCmd(*ctx),
		explore.NewCmd(*ctx),
		upload.NewCmd(*ctx),
		export.NewCmd(*ctx),
		weather.NewCmd(*ctx),
		chat.NewCmd(*ctx),
		settings.NewCmd(*ctx),
		login.NewCmd(*ctx),
		logout.NewCmd(*ctx),
		register.NewCmd(*ctx),
		version.NewCmd(*ctx),
	)

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
