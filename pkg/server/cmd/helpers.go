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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/blob"
	"github.com/chronicle/chronicle/pkg/server/cache"
	"github.com/chronicle/chronicle/pkg/server/config"
	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/chronicle/chronicle/pkg/server/mailer"
	"github.com/pkg/errors"
)

var (
	// errMissingFlag is an error for a required flag left empty
	errMissingFlag = errors.New("missing required flag")
	// errUsage is an error for a command invoked with wrong arguments. Its
	// usage has already been printed.
	errUsage = errors.New("invalid usage")
)

func getCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Debug("Redis not configured, the public feed is not cached")
		return cache.Nop{}, func() {}, nil
	}

	r, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "chronicle:",
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to redis")
	}

	log.WithFields(log.Fields{
		"addr": cfg.RedisAddr,
	}).Info("Redis cache configured")

	return r, func() { r.Close() }, nil
}

// initApp wires the app of the configuration. The returned function releases
// the connections of the app.
func initApp(ctx context.Context, cfg config.Config) (*app.App, func(), error) {
	db, err := database.Init(cfg.DBURL, cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializing database")
	}

	c, closeCache, err := getCache(ctx, cfg)
	if err != nil {
		database.Close(db)
		return nil, nil, err
	}

	store, err := blob.NewDir(cfg.ImageDir)
	if err != nil {
		closeCache()
		database.Close(db)
		return nil, nil, err
	}

	emailBackend, err := mailer.NewBackend()
	if err != nil {
		closeCache()
		database.Close(db)
		return nil, nil, errors.Wrap(err, "initializing email backend")
	}

	a := &app.App{
		DB:                  db,
		Clock:               clock.New(),
		EmailBackend:        emailBackend,
		Cache:               c,
		Blob:                store,
		BaseURL:             cfg.BaseURL,
		DisableRegistration: cfg.DisableRegistration,
		Port:                cfg.Port,
		PublicFeedTTL:       app.DefaultPublicFeedTTL,
	}

	cleanup := func() {
		closeCache()
		if err := database.Close(db); err != nil {
			log.ErrorWrap(err, "closing database")
		}
	}

	return a, cleanup, nil
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(w io.Writer, fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(w, "  --%s", f.Name)

		// Print type hint for non-boolean flags
		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Fprintf(w, " %s", name)
		}
		fmt.Fprintln(w)

		// Print usage description with indentation
		if usage != "" {
			fmt.Fprintf(w, "    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Fprintf(w, " (default: %s)", f.DefValue)
			}
			fmt.Fprintln(w)
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format. Parse errors
// are returned rather than exiting.
func setupFlagSet(w io.Writer, name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprintf(w, `Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(w, fs)
	}
	return fs
}

// parseFlags parses args, mapping a help request to a usage error
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}

		return errors.Wrap(errUsage, err.Error())
	}

	return nil
}

// requireString validates that a required string flag is not empty
func requireString(w io.Writer, fs *flag.FlagSet, value, fieldName string) error {
	if value == "" {
		fmt.Fprintf(w, "Error: %s is required\n", fieldName)
		fs.Usage()
		return errors.Wrap(errMissingFlag, fieldName)
	}

	return nil
}

// setupAppWithDB creates config, initializes app, and returns cleanup function
func setupAppWithDB(ctx context.Context, dbURL string) (*app.App, func(), error) {
	cfg, err := config.New(config.Params{
		DBURL:    dbURL,
		LogLevel: "error",
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading config")
	}

	return initApp(ctx, cfg)
}
