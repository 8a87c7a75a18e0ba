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

// Package cmd implements the chronicle-server commands
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

func rootCmd(w io.Writer) {
	fmt.Fprintf(w, `Chronicle server - the remote store of the chronicle diary

Usage:
  chronicle-server [command] [flags]

Available commands:
  start: Start the server (use 'chronicle-server start --help' for flags)
  user: Manage users (use 'chronicle-server user' for subcommands)
  version: Print the version
`)
}

// run runs the command named by args and returns the exit code
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		rootCmd(stdout)
		return 0
	}

	var err error
	switch args[0] {
	case "start":
		err = startCmd(args[1:], stdout)
	case "user":
		err = userCmd(args[1:], stdin, stdout)
	case "version":
		versionCmd(stdout)
	default:
		fmt.Fprintf(stdout, "Unknown command %s\n", args[0])
		rootCmd(stdout)
		return 1
	}

	if err != nil {
		if c := errors.Cause(err); c != errUsage && c != errMissingFlag {
			fmt.Fprintf(stdout, "Error: %s\n", err)
		}
		return 1
	}

	return 0
}

// Execute is the main entry point for the CLI
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}
