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

// Package settings implements the settings command
package settings

import (
	"fmt"
	"io"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrUnknownLanguage is returned for a language that is not supported
var ErrUnknownLanguage = errors.New("unknown language")

var example = `
  * Show the current settings
  chronicle settings

  * Turn on the dark theme and pick a language interactively
  chronicle settings --dark --choose-language

  * Stop attaching the location to new events
  chronicle settings --location=false`

type flags struct {
	dark           bool
	location       bool
	language       string
	chooseLanguage bool
}

// NewCmd returns a new settings command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "settings",
		Short:   "Show or change your preferences",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.BoolVar(&f.dark, "dark", false, "use the dark theme")
	fs.BoolVar(&f.location, "location", false, "attach the location to new events")
	fs.StringVar(&f.language, "language", "", fmt.Sprintf("display language, one of %q", event.Languages()))
	fs.BoolVar(&f.chooseLanguage, "choose-language", false, "pick the display language from a list")

	return cmd
}

func resolveLanguage(f *flags) (string, error) {
	label := f.language
	if f.chooseLanguage {
		chosen, err := ui.Choose("language", event.Languages())
		if err != nil {
			return "", errors.Wrap(err, "choosing a language")
		}
		label = chosen
	}

	if _, ok := event.LanguageCode(label); !ok {
		return "", errors.Wrapf(ErrUnknownLanguage, "'%s'", label)
	}

	return label, nil
}

func apply(cmd *cobra.Command, db *database.DB, f *flags) error {
	fs := cmd.Flags()

	if fs.Changed("dark") {
		if err := database.SetDarkTheme(db, f.dark); err != nil {
			return errors.Wrap(err, "saving theme")
		}
	}
	if fs.Changed("location") {
		if err := database.SetLocationEnabled(db, f.location); err != nil {
			return errors.Wrap(err, "saving location preference")
		}
	}
	if fs.Changed("language") || f.chooseLanguage {
		label, err := resolveLanguage(f)
		if err != nil {
			return err
		}
		if err := database.SetLanguage(db, label); err != nil {
			return errors.Wrap(err, "saving language")
		}
	}

	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}

func printSettings(w io.Writer, s database.Setting) {
	language := s.Language
	if language == "" {
		language = "(system default)"
	} else if code, ok := event.LanguageCode(language); ok {
		language = fmt.Sprintf("%s (%s)", language, code)
	}

	fmt.Fprintf(w, "dark theme: %s\n", onOff(s.IsDarkTheme))
	fmt.Fprintf(w, "location:   %s\n", onOff(s.IsLocationEnabled))
	fmt.Fprintf(w, "language:   %s\n", language)
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := apply(cmd, ctx.DB, f); err != nil {
			return err
		}

		s, err := database.GetSetting(ctx.DB, database.SettingID)
		if err != nil {
			return errors.Wrap(err, "reading settings")
		}
		if s == nil {
			d := database.NewSetting(database.SettingID)
			s = &d
		}

		printSettings(cmd.OutOrStdout(), *s)

		return nil
	}
}
