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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/chronicle/chronicle/pkg/event"
)

const previewLen = 80

func tagColor(tag string) func(a ...interface{}) string {
	switch tag {
	case event.TagReminder:
		return log.ColorYellow.SprintFunc()
	case event.TagThought:
		return log.ColorBlue.SprintFunc()
	case event.TagOther:
		return log.ColorGray.SprintFunc()
	default:
		return log.ColorGreen.SprintFunc()
	}
}

func visibility(e event.Event) string {
	if e.IsPublic {
		return "public"
	}

	return "private"
}

// EventInfo prints every field of an event
func EventInfo(w io.Writer, e event.Event) {
	fmt.Fprintf(w, "%s %s\n", log.ColorBold.Sprint(e.Title), tagColor(e.Tag)("["+e.Tag+"]"))
	fmt.Fprintf(w, "  id:       %s\n", e.EventID)

	when := e.Date
	if t, err := e.ParsedDate(); err == nil {
		when = event.FormatDate(t)
	}
	if e.Time != "" {
		when = fmt.Sprintf("%s at %s", when, e.Time)
	}
	fmt.Fprintf(w, "  date:     %s\n", when)

	if e.Location != "" {
		fmt.Fprintf(w, "  location: %s\n", e.Location)
	}
	if e.Weather != "" {
		fmt.Fprintf(w, "  weather:  %s\n", e.Weather)
	}
	fmt.Fprintf(w, "  visible:  %s\n", visibility(e))
	for _, img := range e.Images {
		fmt.Fprintf(w, "  image:    %s\n", img)
	}

	fmt.Fprintf(w, "\n------------------------body------------------------\n")
	fmt.Fprintf(w, "%s", e.Body)
	fmt.Fprintf(w, "\n----------------------------------------------------\n")
}

// EventLine prints a one-line summary of an event
func EventLine(w io.Writer, e event.Event) {
	var b strings.Builder

	if e.Time != "" {
		fmt.Fprintf(&b, "%s ", log.ColorGray.Sprint(e.Time))
	}
	fmt.Fprintf(&b, "%s %s", tagColor(e.Tag)("["+e.Tag+"]"), log.ColorBold.Sprint(e.Title))

	if body := strings.Join(strings.Fields(e.Body), " "); body != "" {
		fmt.Fprintf(&b, " %s", utils.Truncate(body, previewLen))
	}
	if len(e.Images) > 0 {
		fmt.Fprintf(&b, " %s", log.ColorGray.Sprintf("(%d images)", len(e.Images)))
	}
	fmt.Fprintf(&b, " %s", log.ColorGray.Sprintf("(%s)", e.EventID))

	fmt.Fprintf(w, "  %s\n", b.String())
}

// Timeline prints groups under a header per day
func Timeline(w io.Writer, groups []event.Group) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s\n", log.ColorBlue.Sprint(event.FormatDate(g.Date)))
		for _, e := range g.Events {
			EventLine(w, e)
		}
	}
}

// Empty prints the message of an empty result
func Empty(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s\n", log.ColorGray.Sprint(msg))
}
