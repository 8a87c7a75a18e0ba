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

// Package weather implements the weather command
package weather

import (
	"fmt"
	"strings"

	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/utils"
	"github.com/chronicle/chronicle/pkg/cli/weather"
	"github.com/spf13/cobra"
)

var example = `
  chronicle weather -37.81,144.96
  chronicle weather -- -37.81 144.96`

// NewCmd returns a new weather command
func NewCmd(ctx context.Ctx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weather <lat,lon>",
		Short:   "Show the current weather at a location",
		Example: example,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.Ctx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		lat, lon, err := utils.ParseCoordinates(strings.Join(args, ","))
		if err != nil {
			return err
		}

		wc := weather.New(ctx.Config.WeatherEndpoint, ctx.Config.WeatherAPIKey, ctx.HTTPClient)
		fmt.Fprintln(cmd.OutOrStdout(), wc.Describe(cmd.Context(), lat, lon))

		return nil
	}
}
