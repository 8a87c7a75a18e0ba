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

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/chronicle/chronicle/pkg/prompt"
	"github.com/chronicle/chronicle/pkg/server/app"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
)

const dbURLUsage = "Path to SQLite database file or postgres URL (env: DBURL, default: $XDG_DATA_HOME/chronicle-server/server.db)"

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, w io.Writer, question string, optimistic bool) (bool, error) {
	message := prompt.FormatQuestion(question, optimistic)
	fmt.Fprint(w, message+" ")

	confirmed, err := prompt.ReadYesNo(r, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "reading stdin")
	}

	return confirmed, nil
}

func userCreateCmd(args []string, w io.Writer) error {
	fs := setupFlagSet(w, "create", "chronicle-server user create")

	email := fs.String("email", "", "User email address (required)")
	password := fs.String("password", "", "User password (required)")
	dbURL := fs.String("dbUrl", "", dbURLUsage)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireString(w, fs, *email, "email"); err != nil {
		return err
	}
	if err := requireString(w, fs, *password, "password"); err != nil {
		return err
	}

	a, cleanup, err := setupAppWithDB(context.Background(), *dbURL)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := a.CreateUser(*email, *password, *password); err != nil {
		return errors.Wrap(err, "creating user")
	}

	fmt.Fprintf(w, "User created successfully\n")
	fmt.Fprintf(w, "Email: %s\n", *email)

	return nil
}

func userRemoveCmd(args []string, stdin io.Reader, w io.Writer) error {
	fs := setupFlagSet(w, "remove", "chronicle-server user remove")

	email := fs.String("email", "", "User email address (required)")
	dbURL := fs.String("dbUrl", "", dbURLUsage)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireString(w, fs, *email, "email"); err != nil {
		return err
	}

	a, cleanup, err := setupAppWithDB(context.Background(), *dbURL)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := a.GetUserByEmail(*email); err != nil {
		if errors.Cause(err) == app.ErrNotFound {
			return errors.Errorf("user with email %s not found", *email)
		}
		return errors.Wrap(err, "finding user")
	}

	ok, err := confirm(stdin, w, fmt.Sprintf("Remove user %s?", *email), false)
	if err != nil {
		return errors.Wrap(err, "getting confirmation")
	}
	if !ok {
		fmt.Fprintln(w, "Aborted by user")
		return nil
	}

	if err := a.RemoveUser(*email); err != nil {
		return errors.Wrap(err, "removing user")
	}

	fmt.Fprintf(w, "User removed successfully\n")
	fmt.Fprintf(w, "Email: %s\n", *email)

	return nil
}

func userResetPasswordCmd(args []string, w io.Writer) error {
	fs := setupFlagSet(w, "reset-password", "chronicle-server user reset-password")

	email := fs.String("email", "", "User email address (required)")
	password := fs.String("password", "", "New password (required)")
	dbURL := fs.String("dbUrl", "", dbURLUsage)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireString(w, fs, *email, "email"); err != nil {
		return err
	}
	if err := requireString(w, fs, *password, "password"); err != nil {
		return err
	}

	a, cleanup, err := setupAppWithDB(context.Background(), *dbURL)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := a.GetUserByEmail(*email)
	if err != nil {
		if errors.Cause(err) == app.ErrNotFound {
			return errors.Errorf("user with email %s not found", *email)
		}
		return errors.Wrap(err, "finding user")
	}

	if err := a.UpdateUserPassword(user, *password, *password); err != nil {
		return errors.Wrap(err, "updating password")
	}

	if err := a.SendPasswordChangedEmail(user.Email); err != nil {
		log.ErrorWrap(err, "sending password changed email")
	}

	fmt.Fprintf(w, "Password reset successfully\n")
	fmt.Fprintf(w, "Email: %s\n", *email)

	return nil
}

func userDigestCmd(args []string, w io.Writer) error {
	fs := setupFlagSet(w, "digest", "chronicle-server user digest")

	email := fs.String("email", "", "User email address (required)")
	off := fs.Bool("off", false, "Stop the daily reminder digest instead of resuming it")
	dbURL := fs.String("dbUrl", "", dbURLUsage)

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireString(w, fs, *email, "email"); err != nil {
		return err
	}

	a, cleanup, err := setupAppWithDB(context.Background(), *dbURL)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := a.GetUserByEmail(*email)
	if err != nil {
		if errors.Cause(err) == app.ErrNotFound {
			return errors.Errorf("user with email %s not found", *email)
		}
		return errors.Wrap(err, "finding user")
	}

	if err := a.SetDigest(user, !*off); err != nil {
		return err
	}

	state := "on"
	if *off {
		state = "off"
	}
	fmt.Fprintf(w, "Reminder digest turned %s\n", state)
	fmt.Fprintf(w, "Email: %s\n", *email)

	return nil
}

const userCommands = `Available commands:
  create: Create a new user
  remove: Remove a user (only if they have no events or images)
  reset-password: Reset a user's password
  digest: Turn the daily reminder digest of a user on or off`

func userCmd(args []string, stdin io.Reader, w io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintf(w, "Usage:\n  chronicle-server user [command]\n\n%s\n", userCommands)
		return errUsage
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "create":
		return userCreateCmd(subArgs, w)
	case "remove":
		return userRemoveCmd(subArgs, stdin, w)
	case "reset-password":
		return userResetPasswordCmd(subArgs, w)
	case "digest":
		return userDigestCmd(subArgs, w)
	default:
		fmt.Fprintf(w, "Unknown subcommand: %s\n\n%s\n", subcommand, userCommands)
		return errUsage
	}
}
