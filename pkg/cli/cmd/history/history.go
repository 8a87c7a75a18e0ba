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

// Package history implements the history command
package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/output"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrInvalidMonth is returned for a month that is neither a number nor a name
var ErrInvalidMonth = errors.New("invalid month")

var example = `
  * Show this month
  chronicle history

  * Show reminders and thoughts of January 2024
  chronicle history --month january --year 2024 --tag Reminder --tag Thought`

type flags struct {
	month string
	year  int
	tags  []string
}

// NewCmd returns a new history command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show your timeline grouped by day",
		Aliases: []string{"ls", "h"},
		Example: example,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.month, "month", "m", "", "month as a number or a name (defaults to the current month)")
	fs.IntVarP(&f.year, "year", "y", 0, "year (defaults to the current year)")
	fs.StringArrayVar(&f.tags, "tag", nil, "show only this tag. Can be repeated (defaults to every tag)")

	return cmd
}

// ParseMonth parses a month number or an English month name or prefix
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, errors.Wrapf(ErrInvalidMonth, "%d", n)
		}
		return time.Month(n), nil
	}

	if len(s) >= 3 {
		for i, name := range event.MonthNames() {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(s)) {
				return time.Month(i + 1), nil
			}
		}
	}

	return 0, errors.Wrapf(ErrInvalidMonth, "'%s'", s)
}

func (f *flags) period(now time.Time) (time.Month, int, error) {
	month, year := now.Month(), now.Year()

	if f.month != "" {
		m, err := ParseMonth(f.month)
		if err != nil {
			return 0, 0, err
		}
		month = m
	}
	if f.year != 0 {
		year = f.year
	}

	return month, year, nil
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		month, year, err := f.period(ctx.Clock.Now())
		if err != nil {
			return err
		}

		sel, err := event.ParseTagSelection(f.tags)
		if err != nil {
			return err
		}

		loader := ctx.History()
		defer loader.Flush()

		all := loader.Load(cmd.Context(), ctx.UserUUID)
		filtered := event.Filter(all, sel, month, year)

		w := cmd.OutOrStdout()
		if kind := event.EmptyState(all, filtered); kind != event.HasEvents {
			output.Empty(w, kind.Message())
			return nil
		}

		output.Timeline(w, event.GroupByDate(filtered))

		return nil
	}
}
