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

// Package job runs the periodic background work of the server
package job

import (
	"context"

	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

const (
	// SessionCleanupSchedule is the schedule of the expired session cleanup
	SessionCleanupSchedule = "@hourly"
	// DigestSchedule is the schedule of the reminder digest, every day at 07:00
	DigestSchedule = "0 0 7 * * *"
)

var (
	// ErrEmptyApp is an error for a runner without an app
	ErrEmptyApp = errors.New("No App was provided")
)

// Params are the parameters of a Runner
type Params struct {
	// DigestEnabled schedules the daily reminder digest email
	DigestEnabled bool
}

// Runner schedules the jobs of the app
type Runner struct {
	cron   *cron.Cron
	app    *app.App
	params Params
}

// NewRunner returns a runner for the app with its jobs scheduled
func NewRunner(a *app.App, p Params) (*Runner, error) {
	if a == nil {
		return nil, ErrEmptyApp
	}

	r := &Runner{
		cron:   cron.New(),
		app:    a,
		params: p,
	}

	if err := r.schedule(); err != nil {
		return nil, errors.Wrap(err, "scheduling jobs")
	}

	return r, nil
}

func (r *Runner) schedule() error {
	if err := r.cron.AddFunc(SessionCleanupSchedule, r.cleanupSessions); err != nil {
		return errors.Wrap(err, "scheduling session cleanup")
	}

	if r.params.DigestEnabled {
		if err := r.cron.AddFunc(DigestSchedule, r.sendDigests); err != nil {
			return errors.Wrap(err, "scheduling reminder digest")
		}
	}

	return nil
}

// Entries returns the number of scheduled jobs
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

// Start runs the scheduler in its own goroutine
func (r *Runner) Start() {
	r.cron.Start()

	log.WithFields(log.Fields{
		"jobs": r.Entries(),
	}).Info("Started background jobs")
}

// Stop halts the scheduler. Jobs already running are not interrupted.
func (r *Runner) Stop() {
	r.cron.Stop()
}

func (r *Runner) cleanupSessions() {
	n, err := r.app.DeleteExpiredSessions()
	if err != nil {
		log.ErrorWrap(err, "deleting expired sessions")
		return
	}

	log.WithFields(log.Fields{
		"deleted": n,
	}).Debug("Deleted expired sessions")
}

func (r *Runner) sendDigests() {
	date := clock.Today(r.app.Clock)

	n, err := r.app.SendReminderDigests(context.Background(), date)
	if err != nil {
		log.WithFields(log.Fields{
			"date": date,
		}).ErrorWrap(err, "sending reminder digests")
		return
	}

	log.WithFields(log.Fields{
		"date": date,
		"sent": n,
	}).Info("Sent reminder digests")
}
