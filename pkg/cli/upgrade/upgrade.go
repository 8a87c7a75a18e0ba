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

// Package upgrade checks for newer releases of the chronicle cli
package upgrade

import (
	stdctx "context"
	"strconv"
	"strings"
	"time"

	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/google/go-github/github"
	"github.com/pkg/errors"
)

// Interval is the minimum time between two checks
const Interval = 7 * 24 * time.Hour

// Repository that publishes the releases
const (
	RepoOwner = "chronicle"
	RepoName  = "chronicle"
)

// tagPrefix is the prefix of cli release tags, e.g. cli-v0.3.1
const tagPrefix = "cli-v"

func shouldCheck(ctx context.Ctx) (bool, error) {
	if !ctx.Config.EnableUpgradeCheck || ctx.Version == "" || ctx.Version == "master" {
		return false, nil
	}

	var lastUpgrade int64
	if err := database.GetSystem(ctx.DB, consts.SystemLastUpgrade, &lastUpgrade); err != nil {
		return false, errors.Wrap(err, "getting last upgrade")
	}

	return ctx.Clock.Now().Sub(time.Unix(lastUpgrade, 0)) >= Interval, nil
}

func latestVersion(c stdctx.Context, gh *github.Client) (string, error) {
	releases, _, err := gh.Repositories.ListReleases(c, RepoOwner, RepoName, &github.ListOptions{PerPage: 30})
	if err != nil {
		return "", errors.Wrap(err, "fetching releases")
	}

	for _, r := range releases {
		if r.GetDraft() || r.GetPrerelease() {
			continue
		}

		tag := r.GetTagName()
		if strings.HasPrefix(tag, tagPrefix) {
			return strings.TrimPrefix(tag, tagPrefix), nil
		}
	}

	return "", nil
}

// Check prints a notice if a newer release is published. It runs at most
// once per Interval.
func Check(ctx context.Ctx) error {
	return check(ctx, github.NewClient(ctx.HTTPClient))
}

func check(ctx context.Ctx, gh *github.Client) error {
	ok, err := shouldCheck(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	c, cancel := stdctx.WithTimeout(stdctx.Background(), 5*time.Second)
	defer cancel()

	latest, err := latestVersion(c, gh)
	if err != nil {
		return err
	}

	if latest != "" && latest != ctx.Version {
		log.Infof("chronicle %s is available. You are running %s.\n", latest, ctx.Version)
	}

	now := ctx.Clock.Now().Unix()
	if err := database.UpsertSystem(ctx.DB, consts.SystemLastUpgrade, strconv.FormatInt(now, 10)); err != nil {
		return errors.Wrap(err, "updating last upgrade")
	}

	return nil
}
