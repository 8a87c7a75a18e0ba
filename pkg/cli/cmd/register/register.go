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

// Package register implements the register command
package register

import (
	stdctx "context"

	"github.com/chronicle/chronicle/pkg/cli/cmd/login"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// MinPasswordLength is the shortest password the server accepts
const MinPasswordLength = 8

var (
	// ErrPasswordMismatch is returned when the confirmation differs
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort is returned for a password under MinPasswordLength
	ErrPasswordTooShort = errors.Errorf("password should be at least %d characters long", MinPasswordLength)
)

var example = `
  chronicle register --email alice@example.com`

type flags struct {
	email    string
	password string
}

// NewCmd returns a new register command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and sign in",
		Example: example,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.email, "email", "e", "", "email address of the new account")
	fs.StringVarP(&f.password, "password", "p", "", "password of the new account")

	return cmd
}

// CheckPassword validates a password and its confirmation
func CheckPassword(password, confirmation string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}

	return nil
}

// Do creates the account and saves its session
func Do(c stdctx.Context, ctx context.Ctx, email, password string) error {
	resp, err := ctx.Client().Register(c, email, password)
	if err != nil {
		return errors.Wrap(err, "registering")
	}

	if err := login.SaveSession(ctx.DB, email, resp); err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		email, password, err := login.Credentials(f.email, f.password)
		if err != nil {
			return err
		}

		confirmation := password
		if f.password == "" {
			if err := ui.PromptPassword("confirm password", &confirmation); err != nil {
				return errors.Wrap(err, "getting password confirmation")
			}
		}
		if err := CheckPassword(password, confirmation); err != nil {
			return err
		}

		if err := Do(cmd.Context(), ctx, email, password); err != nil {
			return err
		}

		log.Successf("registered as %s\n", email)

		return nil
	}
}
