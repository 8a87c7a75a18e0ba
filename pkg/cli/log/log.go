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

// Package log prints colored, indented messages to the terminal
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/fatih/color"
)

var (
	// ColorRed is a red foreground color
	ColorRed = color.New(color.FgRed)
	// ColorGreen is a green foreground color
	ColorGreen = color.New(color.FgGreen)
	// ColorYellow is a yellow foreground color
	ColorYellow = color.New(color.FgYellow)
	// ColorBlue is a blue foreground color
	ColorBlue = color.New(color.FgBlue)
	// ColorGray is a gray foreground color
	ColorGray = color.New(color.FgHiBlack)
	// ColorBold is bold text in the default color
	ColorBold = color.New(color.Bold)
)

const indent = "  "

var out io.Writer = color.Output

// SetOutput redirects all messages to w and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w

	return prev
}

func write(symbol, msg string) {
	fmt.Fprintf(out, "%s%s %s", indent, symbol, msg)
}

// Info prints information
func Info(msg string) {
	write(ColorBlue.Sprint("•"), msg)
}

// Infof prints information with optional format verbs
func Infof(msg string, v ...interface{}) {
	write(ColorBlue.Sprint("•"), fmt.Sprintf(msg, v...))
}

// Success prints a success message
func Success(msg string) {
	write(ColorGreen.Sprint("✔"), msg)
}

// Successf prints a success message with optional format verbs
func Successf(msg string, v ...interface{}) {
	write(ColorGreen.Sprint("✔"), fmt.Sprintf(msg, v...))
}

// Plainf prints a message without a prefix symbol
func Plainf(msg string, v ...interface{}) {
	fmt.Fprintf(out, "%s%s", indent, fmt.Sprintf(msg, v...))
}

// Warnf prints a warning message with optional format verbs
func Warnf(msg string, v ...interface{}) {
	write(ColorYellow.Sprint("•"), fmt.Sprintf(msg, v...))
}

// Error prints an error message
func Error(msg string) {
	write(ColorRed.Sprint("⨯"), msg)
}

// Errorf prints an error message with optional format verbs
func Errorf(msg string, v ...interface{}) {
	write(ColorRed.Sprint("⨯"), fmt.Sprintf(msg, v...))
}

// Askf prints a question. The symbol is gray when the answer will be masked.
func Askf(msg string, masked bool, v ...interface{}) {
	c := ColorGreen
	if masked {
		c = ColorGray
	}

	fmt.Fprintf(out, "%s%s %s: ", indent, c.Sprint("[?]"), fmt.Sprintf(msg, v...))
}

// IsDebug reports whether debug output is enabled
func IsDebug() bool {
	return os.Getenv(consts.EnvDebug) == "1"
}

// Debug prints only when CHRONICLE_DEBUG is set to 1
func Debug(msg string, v ...interface{}) {
	if IsDebug() {
		fmt.Fprintf(out, "%s %s", ColorGray.Sprint("DEBUG:"), fmt.Sprintf(msg, v...))
	}
}
