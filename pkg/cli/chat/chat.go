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

// Package chat implements the diary assistant conversation
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// SystemPrompt primes the model for diary conversations
const SystemPrompt = "You are Chronicle, a friendly assistant inside a personal diary. Keep answers short and conversational."

var (
	// ErrEmptyPrompt is returned when the user sends nothing
	ErrEmptyPrompt = errors.New("empty prompt")
	// ErrNoChoices is returned when the model produces no reply
	ErrNoChoices = errors.New("model returned no choices")
	// ErrMissingAPIKey is returned when the assistant is not configured
	ErrMissingAPIKey = errors.New("chat api key is not configured")
)

// Options configures the OpenAI compatible backend
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewModel builds an OpenAI compatible chat model
func NewModel(o Options) (llms.Model, error) {
	if o.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []openai.Option{openai.WithToken(o.APIKey)}
	if o.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(o.BaseURL))
	}
	if o.Model != "" {
		opts = append(opts, openai.WithModel(o.Model))
	}

	m, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating openai client")
	}

	return m, nil
}

// Assistant holds a running conversation with a model
type Assistant struct {
	model llms.Model

	mu      sync.Mutex
	history []llms.MessageContent
}

// New returns an assistant whose conversation starts with the system prompt
func New(model llms.Model) *Assistant {
	return &Assistant{
		model:   model,
		history: []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeSystem, SystemPrompt)},
	}
}

// Ask sends the prompt along with the prior turns and returns the reply.
// A failed turn is not recorded.
func (a *Assistant) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	messages := make([]llms.MessageContent, 0, len(a.history)+1)
	messages = append(messages, a.history...)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, prompt))

	resp, err := a.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", errors.Wrap(err, "generating reply")
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	reply := resp.Choices[0].Content
	a.history = append(messages, llms.TextParts(schema.ChatMessageTypeAI, reply))

	return reply, nil
}

// Turns returns the number of completed exchanges
func (a *Assistant) Turns() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return (len(a.history) - 1) / 2
}

// Reset drops every turn but the system prompt
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = a.history[:1]
}
