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

// Package login implements the login command
package login

import (
	stdctx "context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/chronicle/chronicle/pkg/cli/client"
	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/database"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrInvalidEmail is returned for a malformed email address
var ErrInvalidEmail = errors.New("invalid email address")

var example = `
  chronicle login`

type flags struct {
	username    string
	password    string
	apiEndpoint string
}

// NewCmd returns a new login command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.username, "username", "u", "", "email address for authentication")
	fs.StringVarP(&f.password, "password", "p", "", "password for authentication")
	fs.StringVar(&f.apiEndpoint, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// SaveSession stores the session of a successful signin
func SaveSession(db *database.DB, email string, resp client.SigninResponse) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	kv := [][2]string{
		{consts.SystemSessionKey, resp.Key},
		{consts.SystemSessionKeyExpiry, strconv.FormatInt(resp.ExpiresAt, 10)},
		{consts.SystemUserUUID, resp.UserUUID},
		{consts.SystemUserEmail, email},
	}
	for _, p := range kv {
		if err := database.UpsertSystem(tx, p[0], p[1]); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "saving %s", p[0])
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// Credentials prompts for whatever of the email and password is missing
func Credentials(email, password string) (string, string, error) {
	if email == "" {
		if err := ui.PromptInput("email", &email); err != nil {
			return "", "", errors.Wrap(err, "getting email input")
		}
	}
	if !event.ValidateEmail(email) {
		return "", "", errors.Wrapf(ErrInvalidEmail, "'%s'", email)
	}

	if password == "" {
		if err := ui.PromptPassword("password", &password); err != nil {
			return "", "", errors.Wrap(err, "getting password input")
		}
	}
	if password == "" {
		return "", "", errors.New("Password is empty")
	}

	return email, password, nil
}

// Do signs in and saves the session
func Do(c stdctx.Context, ctx context.Ctx, email, password string) error {
	resp, err := ctx.Client().Signin(c, email, password)
	if err != nil {
		return errors.Wrap(err, "requesting session")
	}

	if err := SaveSession(ctx.DB, email, resp); err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

func getServerDisplayURL(ctx context.Ctx) string {
	u, err := url.Parse(ctx.Config.APIEndpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if f.apiEndpoint != "" {
			ctx.Config.APIEndpoint = f.apiEndpoint
		}

		if display := getServerDisplayURL(ctx); display != "" {
			log.Plainf("Logging in to %s\n", display)
		}

		email, password, err := Credentials(f.username, f.password)
		if err != nil {
			return err
		}

		err = Do(cmd.Context(), ctx, email, password)
		if errors.Cause(err) == client.ErrInvalidLogin {
			log.Error("wrong login\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Success("logged in\n")

		return nil
	}
}
