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

// Package weather looks up the current weather description of a location
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// NoData is the description used when the service returns no conditions
const NoData = "No data"

// Response is the part of the OpenWeather one call response that is read
type Response struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Current *struct {
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
}

// Client queries the OpenWeather one call API
type Client struct {
	endpoint string
	apiKey   string
	hc       *http.Client
}

// New returns a client for the API at endpoint, e.g.
// https://api.openweathermap.org/data/3.0
func New(endpoint, apiKey string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		hc:       hc,
	}
}

// Current returns the capitalized description of the current conditions
func (c *Client) Current(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/onecall?%s", c.endpoint, q.Encode()), nil)
	if err != nil {
		return "", errors.Wrap(err, "constructing request")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "requesting weather")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return NoData, nil
	}

	var body Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return NoData, nil
	}
	if body.Current == nil || len(body.Current.Weather) == 0 {
		return NoData, nil
	}

	return capitalize(body.Current.Weather[0].Description), nil
}

// Describe returns the description to store on an event. Failures are
// rendered into the text as "Error: <reason>".
func (c *Client) Describe(ctx context.Context, lat, lon float64) string {
	desc, err := c.Current(ctx, lat, lon)
	if err != nil {
		return fmt.Sprintf("Error: %s", errors.Cause(err))
	}

	return desc
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}

	return string(unicode.ToTitle(r)) + s[size:]
}
