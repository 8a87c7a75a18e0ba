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

// Package day implements the day command
package day

import (
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/output"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Show today
  chronicle day

  * Show a date
  chronicle day 2024-03-10`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new day command
func NewCmd(ctx context.Ctx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "day [date]",
		Short:   "Show what you recorded on a day",
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

		date := clock.Today(ctx.Clock)
		if len(args) == 1 {
			date = args[0]
		}

		d, err := event.ParseDate(date)
		if err != nil {
			return err
		}

		events := ctx.Events().QueryMineOnDate(cmd.Context(), ctx.UserUUID, date)

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			output.Empty(w, event.MsgNothingForDay)
			return nil
		}

		log.Infof("%s\n", event.FormatDate(d))
		for _, e := range events {
			output.EventLine(w, e)
		}

		return nil
	}
}
