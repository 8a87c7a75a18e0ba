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

// Package infra provides operations and definitions for the
// local infrastructure for chronicle
package infra

import (
	stdctx "context"
	"strconv"

	"github.com/chronicle/chronicle/pkg/cli/client"
	"github.com/chronicle/chronicle/pkg/cli/config"
	"github.com/chronicle/chronicle/pkg/cli/connectivity"
	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/migrate"
	"github.com/chronicle/chronicle/pkg/cli/remote"
	"github.com/chronicle/chronicle/pkg/cli/remote/firestore"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/dirs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrUnknownRemote is returned when the config names an unsupported remote
var ErrUnknownRemote = errors.New("unknown remote")

// RunEFunc is a function type of chronicle commands
type RunEFunc func(*cobra.Command, []string) error

func getPaths() (context.Paths, error) {
	d, err := dirs.Load()
	if err != nil {
		return context.Paths{}, errors.Wrap(err, "resolving base directories")
	}

	return context.Paths{
		Home:   d.Home,
		Config: d.Config,
		Data:   d.Data,
		Cache:  d.Cache,
	}, nil
}

// Init initializes the chronicle environment and returns a new context.
// apiEndpoint is used when creating a new config file.
func Init(versionTag, apiEndpoint, dbPath string) (*context.Ctx, error) {
	paths, err := getPaths()
	if err != nil {
		return nil, err
	}

	return InitWithPaths(paths, versionTag, apiEndpoint, dbPath)
}

// InitWithPaths initializes the environment rooted at the given paths
func InitWithPaths(paths context.Paths, versionTag, apiEndpoint, dbPath string) (*context.Ctx, error) {
	if err := initFiles(paths, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	if dbPath == "" {
		dbPath = paths.DBPath()
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to db")
	}

	n, err := migrate.Run(db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "running migration")
	}
	log.Debug("applied %d migrations\n", n)

	c := clock.New()
	if err := InitSystem(db, c); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing system data")
	}

	ctx, err := setupCtx(context.Ctx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
		Clock:   c,
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from the config file and database.
func setupCtx(ctx context.Ctx) (context.Ctx, error) {
	db := ctx.DB

	if err := database.GetSystem(db, consts.SystemSessionKey, &ctx.SessionKey); err != nil {
		return ctx, errors.Wrap(err, "finding session key")
	}
	if err := database.GetSystem(db, consts.SystemSessionKeyExpiry, &ctx.SessionKeyExpiry); err != nil {
		return ctx, errors.Wrap(err, "finding session key expiry")
	}
	if err := database.GetSystem(db, consts.SystemUserUUID, &ctx.UserUUID); err != nil {
		return ctx, errors.Wrap(err, "finding user uuid")
	}

	cf, err := config.Read(ctx.Paths.Config)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	ctx.Config = cf
	ctx.HTTPClient = client.NewRateLimitedHTTPClient()
	ctx.Connectivity = connectivity.Resolve(cf.Offline)

	src, err := NewRemote(stdctx.Background(), ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "initializing remote")
	}
	ctx.Remote = src

	return ctx, nil
}

// NewRemote builds the event source selected by the config
func NewRemote(c stdctx.Context, ctx context.Ctx) (remote.Source, error) {
	switch ctx.Config.Remote {
	case "", consts.RemoteServer:
		return ctx.Client(), nil
	case consts.RemoteFirestore:
		if ctx.Config.FirestoreProject == "" {
			return nil, errors.New("firestoreProject is not configured")
		}

		return firestore.Open(c, ctx.Config.FirestoreProject)
	default:
		return nil, errors.Wrap(ErrUnknownRemote, ctx.Config.Remote)
	}
}

// InitSystem inserts system data if missing
func InitSystem(db *database.DB, c clock.Clock) error {
	log.Debug("initializing the system\n")

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	nowStr := strconv.FormatInt(c.Now().Unix(), 10)
	if err := database.InsertSystem(tx, consts.SystemLastUpgrade, nowStr); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "initializing system config for %s", consts.SystemLastUpgrade)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(paths context.Paths, apiEndpoint string) error {
	path := config.GetPath(paths.Config)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	cf := config.Default()
	if apiEndpoint != "" {
		cf.APIEndpoint = apiEndpoint
	}

	if err := config.Write(paths.Config, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// initFiles creates, if necessary, the chronicle directories and files inside
func initFiles(paths context.Paths, apiEndpoint string) error {
	if err := context.InitDirs(paths); err != nil {
		return errors.Wrap(err, "creating the chronicle dirs")
	}
	if err := initConfigFile(paths, apiEndpoint); err != nil {
		return errors.Wrap(err, "generating the config file")
	}

	return nil
}
