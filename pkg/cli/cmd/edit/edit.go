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

// Package edit implements the edit command
package edit

import (
	"fmt"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/chronicle/chronicle/pkg/cli/utils/diff"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNotFound is returned when the user has no event with the given id
var ErrNotFound = errors.New("event not found")

var example = `
  * Edit the body of an event in the editor
  chronicle edit 9vjFq2sd

  * Change fields without launching an editor
  chronicle edit 9vjFq2sd -t "Beach day" --public=true

  * Skip the confirmation
  chronicle edit 9vjFq2sd -b "new body" -y`

type flags struct {
	title    string
	body     string
	date     string
	time     string
	tag      string
	location string
	public   bool
	yes      bool
}

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new edit command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "edit <event id>",
		Short:   "Edit an event",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.title, "title", "t", "", "a new title")
	fs.StringVarP(&f.body, "body", "b", "", "a new body")
	fs.StringVar(&f.date, "date", "", "a new date as YYYY-MM-DD")
	fs.StringVar(&f.time, "time", "", "a new time of day as HH:MM")
	fs.StringVar(&f.tag, "tag", "", "a new tag")
	fs.StringVar(&f.location, "location", "", "a new location")
	fs.BoolVar(&f.public, "public", false, "whether the event is shared publicly")
	fs.BoolVarP(&f.yes, "yes", "y", false, "save without confirmation")

	return cmd
}

// apply returns a copy of e with the changed flags applied
func apply(cmd *cobra.Command, e event.Event, f *flags) (event.Event, error) {
	changed := cmd.Flags().Changed

	if changed("title") {
		e.Title = f.title
	}
	if changed("body") {
		e.Body = f.body
	}
	if changed("date") {
		e.Date = f.date
	}
	if changed("time") {
		e.Time = f.time
	}
	if changed("location") {
		e.Location = f.location
	}
	if changed("public") {
		e.IsPublic = f.public
	}
	if changed("tag") {
		tag, err := event.CanonicalTag(f.tag)
		if err != nil {
			return e, err
		}
		e.Tag = tag
	}

	return e, nil
}

func hasFieldFlags(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "body", "date", "time", "tag", "location", "public"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}

	return false
}

func fieldChanges(before, after event.Event) []string {
	ret := []string{}

	add := func(name, a, b string) {
		if a != b {
			ret = append(ret, fmt.Sprintf("%s: %q -> %q", name, a, b))
		}
	}

	add("title", before.Title, after.Title)
	add("date", before.Date, after.Date)
	add("time", before.Time, after.Time)
	add("tag", before.Tag, after.Tag)
	add("location", before.Location, after.Location)
	add("public", fmt.Sprint(before.IsPublic), fmt.Sprint(after.IsPublic))

	return ret
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}

		svc := ctx.Events()

		before, ok := svc.Find(cmd.Context(), ctx.UserUUID, args[0])
		if !ok {
			return errors.Wrap(ErrNotFound, args[0])
		}

		after, err := apply(cmd, before, f)
		if err != nil {
			return errors.Wrap(err, "invalid flags")
		}

		if !hasFieldFlags(cmd) {
			body, err := ui.GetEditorInput(ctx, before.Body)
			if err != nil {
				return errors.Wrap(err, "getting editor input")
			}
			after.Body = body
		}

		if err := event.Validate(after); err != nil {
			return errors.Wrap(err, "invalid event")
		}

		changes := fieldChanges(before, after)
		bodyDiff := diff.Lines(before.Body, after.Body)

		if len(changes) == 0 && !diff.Changed(bodyDiff) {
			log.Info("nothing changed\n")
			return nil
		}

		w := cmd.OutOrStdout()
		for _, c := range changes {
			fmt.Fprintf(w, "  %s\n", c)
		}
		if diff.Changed(bodyDiff) {
			diff.Render(w, bodyDiff)
		}

		if !f.yes {
			ok, err := ui.Confirm("save changes?", true)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if err := svc.Update(cmd.Context(), after); err != nil {
			return errors.Wrap(err, "Failed to edit the event")
		}

		log.Success("edited the event\n")

		return nil
	}
}
