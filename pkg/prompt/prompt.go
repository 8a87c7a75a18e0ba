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

// Package prompt formats terminal questions and parses the answers.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidChoice is returned when the answer to a choice question is not
// one of the offered options
var ErrInvalidChoice = errors.New("invalid choice")

// FormatQuestion appends the yes/no indicator to a question. A defaultYes
// question capitalizes the Y.
func FormatQuestion(question string, defaultYes bool) string {
	if defaultYes {
		return fmt.Sprintf("%s (Y/n)", question)
	}

	return fmt.Sprintf("%s (y/N)", question)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// ReadYesNo reads one line and reports whether it is an affirmative answer.
// An empty answer takes the default.
func ReadYesNo(r io.Reader, defaultYes bool) (bool, error) {
	input, err := readLine(r)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "":
		return defaultYes, nil
	default:
		return false, nil
	}
}

// FormatChoices renders a numbered list of options, one per line
func FormatChoices(question string, options []string) string {
	var b strings.Builder

	b.WriteString(question)
	for i, o := range options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, o)
	}

	return b.String()
}

// ReadChoice reads an answer to a FormatChoices question. The answer may be
// either the 1-based number or the exact label of an option.
func ReadChoice(r io.Reader, options []string) (string, error) {
	input, err := readLine(r)
	if err != nil {
		return "", err
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return "", errors.Wrapf(ErrInvalidChoice, "%d", n)
		}

		return options[n-1], nil
	}

	for _, o := range options {
		if o == input {
			return o, nil
		}
	}

	return "", errors.Wrapf(ErrInvalidChoice, "'%s'", input)
}
