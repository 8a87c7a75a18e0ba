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

// Package export implements the export command
package export

import (
	"io"
	"os"
	"time"

	historycmd "github.com/chronicle/chronicle/pkg/cli/cmd/history"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/export"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Export everything to a calendar file
  chronicle export -o diary.ics

  * Export March of this year to stdout
  chronicle export --month march`

type flags struct {
	out   string
	month string
	year  int
}

// NewCmd returns a new export command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export your events as an iCalendar file",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.out, "out", "o", "", "file to write to (defaults to stdout)")
	fs.StringVarP(&f.month, "month", "m", "", "export only this month")
	fs.IntVarP(&f.year, "year", "y", 0, "year of --month (defaults to the current year)")

	return cmd
}

func selectEvents(all []event.Event, f *flags, now time.Time) ([]event.Event, error) {
	if f.month == "" {
		return all, nil
	}

	month, err := historycmd.ParseMonth(f.month)
	if err != nil {
		return nil, err
	}
	year := now.Year()
	if f.year != 0 {
		year = f.year
	}

	return event.Filter(all, event.AllTags(), month, year), nil
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		now := ctx.Clock.Now()

		loader := ctx.History()
		defer loader.Flush()

		events, err := selectEvents(loader.Load(cmd.Context(), ctx.UserUUID), f, now)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if f.out != "" {
			file, err := os.Create(f.out)
			if err != nil {
				return errors.Wrap(err, "creating output file")
			}
			defer file.Close()

			w = file
		}

		if err := export.Write(w, events, now, now.Location()); err != nil {
			return err
		}

		if f.out != "" {
			log.Successf("exported %d events to %s\n", len(events), f.out)
		}

		return nil
	}
}
