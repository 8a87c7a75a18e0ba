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

// Package add implements the add command
package add

import (
	"time"

	"github.com/chronicle/chronicle/pkg/cli/cmd/upload"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/output"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/chronicle/chronicle/pkg/cli/upgrade"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/chronicle/chronicle/pkg/cli/weather"
	"github.com/chronicle/chronicle/pkg/clock"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * Open an editor to write the body
 chronicle add -t "Beach day"

 * Provide everything with flags
 chronicle add -t "Dentist" -b "Bring the forms" --tag Reminder --date 2024-03-14 --time 09:30

 * Attach photos and the current weather
 chronicle add -t "Hike" -b "Summit at noon" --image a.jpg --image b.jpg --weather-at -37.81,144.96

 * Send stdin content as the body
 echo "a quiet evening" | chronicle add -t "Thought" --tag Thought`

type flags struct {
	title     string
	body      string
	date      string
	time      string
	tag       string
	location  string
	public    bool
	images    []string
	weatherAt string
}

// NewCmd returns a new add command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record a new event",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.title, "title", "t", "", "The title of the event")
	fs.StringVarP(&f.body, "body", "b", "", "The body of the event")
	fs.StringVar(&f.date, "date", "", "The date of the event as YYYY-MM-DD (defaults to today)")
	fs.StringVar(&f.time, "time", "", "The time of day as HH:MM")
	fs.StringVar(&f.tag, "tag", event.TagEvent, "One of Event, Reminder, Thought, Other")
	fs.StringVar(&f.location, "location", "", "Where it happened")
	fs.BoolVar(&f.public, "public", false, "Share the event on the public feed")
	fs.StringArrayVar(&f.images, "image", nil, "A path to an image to attach. Can be repeated")
	fs.StringVar(&f.weatherAt, "weather-at", "", "Record the current weather at lat,lon")

	return cmd
}

func getBody(ctx context.Ctx, f *flags) (string, error) {
	if f.body != "" {
		return f.body, nil
	}

	if ui.IsPiped() {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return c, nil
	}

	c, err := ui.GetEditorInput(ctx, "")
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return c, nil
}

// build assembles the event from the flags without any remote call
func build(ctx context.Ctx, f *flags, body string) (event.Event, error) {
	e := event.New()
	e.UserID = ctx.UserUUID
	e.Title = f.title
	e.Body = body
	e.Time = f.time
	e.Location = f.location
	e.IsPublic = f.public

	tag, err := event.CanonicalTag(f.tag)
	if err != nil {
		return e, err
	}
	e.Tag = tag

	if e.Time != "" {
		if _, err := time.Parse("15:04", e.Time); err != nil {
			return e, errors.Errorf("invalid time '%s'. Use HH:MM", e.Time)
		}
	}

	e.Date = f.date
	if e.Date == "" {
		e.Date = clock.Today(ctx.Clock)
	}

	if err := event.Validate(e); err != nil {
		return e, err
	}

	return e, nil
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := ctx.RequireLogin(); err != nil {
			return err
		}
		if f.title == "" {
			return event.ErrEmptyTitle
		}

		body, err := getBody(ctx, f)
		if err != nil {
			return errors.Wrap(err, "getting body")
		}

		e, err := build(ctx, f, body)
		if err != nil {
			return errors.Wrap(err, "invalid event")
		}

		if f.weatherAt != "" {
			lat, lon, err := utils.ParseCoordinates(f.weatherAt)
			if err != nil {
				return err
			}

			wc := weather.New(ctx.Config.WeatherEndpoint, ctx.Config.WeatherAPIKey, ctx.HTTPClient)
			e.Weather = wc.Describe(cmd.Context(), lat, lon)
		}

		if len(f.images) > 0 {
			urls, err := upload.Images(cmd.Context(), ctx.DB, ctx.Client(), ctx.Clock.Now, f.images)
			if err != nil {
				return errors.Wrap(err, "uploading images")
			}
			e.Images = urls
		}

		id, err := ctx.Events().Create(cmd.Context(), e)
		if err != nil {
			return errors.Wrap(err, "Failed to add the event")
		}
		e.EventID = id

		log.Successf("added %s\n", e.Title)
		output.EventInfo(cmd.OutOrStdout(), e)

		if err := upgrade.Check(ctx); err != nil {
			log.Debug("automatically checking updates: %s\n", err)
		}

		return nil
	}
}
