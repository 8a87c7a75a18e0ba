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

package event

import (
	"fmt"
	"regexp"
	"time"
)

// FormatDate renders a date as e.g. "Tue 12th March, 2024"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s %s, %d", t.Weekday().String()[:3], t.Day(), daySuffix(t.Day()), t.Month(), t.Year())
}

// daySuffix keeps the suffixes the diary has always printed, so 2nd and
// 22nd read as "2st" and "22st" and 31 takes "th".
func daySuffix(day int) string {
	switch day {
	case 1, 21, 32:
		return "st"
	case 2, 22:
		return "st"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}

// MonthNames returns the English month names from January
func MonthNames() []string {
	ret := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		ret = append(ret, m.String())
	}

	return ret
}

// Year bounds offered by the overview picker
const (
	FirstYear = 2023
	LastYear  = 2038
)

// YearRange returns the selectable years
func YearRange() []int {
	ret := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		ret = append(ret, y)
	}

	return ret
}

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateEmail reports whether s looks like an email address
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}
