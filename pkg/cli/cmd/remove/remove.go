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

// Package remove implements the remove command
package remove

import (
	"fmt"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/output"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// PromptRemoveEvent is the confirmation question before removing
const PromptRemoveEvent = "remove this event?"

// ErrNotFound is returned when the user has no event with the given id
var ErrNotFound = errors.New("event not found")

var example = `
  * Remove an event
  chronicle remove 9vjFq2sd

  * Skip the confirmation
  chronicle remove 9vjFq2sd -y`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <event id>",
		Short:   "Remove an event",
		Aliases: []string{"rm", "d"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx, &yes),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without confirmation")

	return cmd
}

func newRun(ctx context.Ctx, yes *bool) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		svc := ctx.Events()

		e, ok := svc.Find(cmd.Context(), ctx.UserUUID, args[0])
		if !ok {
			return errors.Wrap(ErrNotFound, args[0])
		}

		if !*yes {
			output.EventInfo(cmd.OutOrStdout(), e)
			fmt.Fprintln(cmd.OutOrStdout())

			ok, err := ui.Confirm(PromptRemoveEvent, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if err := svc.Delete(cmd.Context(), e); err != nil {
			return errors.Wrap(err, "removing the event")
		}

		log.Successf("removed %s\n", e.Title)

		return nil
	}
}
