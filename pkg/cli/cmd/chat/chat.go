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

// Package chat implements the chat command
package chat

import (
	"bufio"
	stdctx "context"
	"fmt"
	"io"
	"strings"

	"github.com/chronicle/chronicle/pkg/cli/chat"
	"github.com/chronicle/chronicle/pkg/cli/context"
	"github.com/chronicle/chronicle/pkg/cli/infra"
	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Ask a single question
  chronicle chat -m "What should I write about today?"

  * Start a conversation. Type 'exit' to leave and 'reset' to start over
  chronicle chat`

// newModel is swapped in tests
var newModel = chat.NewModel

type flags struct {
	message string
}

// NewCmd returns a new chat command
func NewCmd(ctx context.Ctx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "chat",
		Short:   "Talk to the diary assistant",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.message, "message", "m", "", "ask a single question and exit")

	return cmd
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit", "bye":
		return true
	}

	return false
}

// repl runs a conversation until the input ends or the user leaves
func repl(c stdctx.Context, a *chat.Assistant, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case isExit(line):
			return nil
		case strings.ToLower(line) == "reset":
			a.Reset()
			fmt.Fprintln(out, "conversation cleared")
			continue
		}

		reply, err := a.Ask(c, line)
		if err != nil {
			log.Errorf("%s\n", errors.Cause(err))
			continue
		}

		fmt.Fprintln(out, reply)
	}

	return errors.Wrap(scanner.Err(), "reading input")
}

func newRun(ctx context.Ctx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		model, err := newModel(chat.Options{
			APIKey:  ctx.Config.ChatAPIKey,
			BaseURL: ctx.Config.ChatBaseURL,
			Model:   ctx.Config.ChatModel,
		})
		if err != nil {
			return errors.Wrap(err, "setting up the assistant")
		}

		a := chat.New(model)
		out := cmd.OutOrStdout()

		if f.message != "" {
			reply, err := a.Ask(cmd.Context(), f.message)
			if err != nil {
				return errors.Wrap(err, "asking the assistant")
			}

			fmt.Fprintln(out, reply)
			return nil
		}

		return repl(cmd.Context(), a, cmd.InOrStdin(), out)
	}
}
