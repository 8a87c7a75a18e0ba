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

// Package explore implements the explore command
package explore

import (
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/output"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/spf13/cobra"
)

// MsgNoPublicEvents is shown when nobody shared anything
const MsgNoPublicEvents = "Nothing has been shared yet"

var example = `
  chronicle explore --limit 20`

// NewCmd returns a new explore command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "explore",
		Short:   "Browse events shared publicly",
		Example: example,
		RunE:    newRun(ctx, &limit),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many events")

	return cmd
}

func newRun(ctx context.Ctx, limit *int) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		events := ctx.Events().QueryPublic(cmd.Context())
		if *limit > 0 && len(events) > *limit {
			events = events[:*limit]
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			output.Empty(w, MsgNoPublicEvents)
			return nil
		}

		output.Timeline(w, event.GroupByDate(events))

		return nil
	}
}
