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

// Package mailer renders and sends the emails of the server
package mailer

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/chronicle/chronicle/pkg/server/mailer/templates"
	"github.com/pkg/errors"
)

const (
	// EmailTypeWelcome is sent once an account is registered
	EmailTypeWelcome = "welcome"
	// EmailTypeReminderDigest lists the reminders of the day
	EmailTypeReminderDigest = "reminder_digest"
	// EmailTypePasswordChanged notifies a user of a password change
	EmailTypePasswordChanged = "password_changed"
)

// EmailKindText is the content type of plain text emails
const EmailKindText = "text/plain"

var subjects = map[string]string{
	EmailTypeWelcome:         "Welcome to Chronicle",
	EmailTypeReminderDigest:  "Your reminders for today",
	EmailTypePasswordChanged: "Your Chronicle password was changed",
}

type entry struct {
	tmpl    *template.Template
	subject string
}

// Templates holds the parsed email templates keyed by type and kind
type Templates map[string]entry

func templateKey(name, kind string) string {
	return fmt.Sprintf("%s.%s", name, kind)
}

func parseText(name string) (*template.Template, error) {
	content, err := templates.Files.ReadFile(name + ".txt")
	if err != nil {
		return nil, errors.Wrap(err, "reading template")
	}

	t, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing template %s", name)
	}

	return t, nil
}

// NewTemplates parses every email template. It panics if a template is
// missing or malformed since they are embedded in the binary.
func NewTemplates() Templates {
	ret := Templates{}

	for name, subject := range subjects {
		t, err := parseText(name)
		if err != nil {
			panic(errors.Wrapf(err, "initializing %s template", name))
		}

		ret[templateKey(name, EmailKindText)] = entry{tmpl: t, subject: subject}
	}

	return ret
}

// Execute renders the template and returns its subject and body
func (t Templates) Execute(name, kind string, data interface{}) (string, string, error) {
	e, ok := t[templateKey(name, kind)]
	if !ok {
		return "", "", errors.Errorf("unsupported template '%s' with type '%s'", name, kind)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", "", errors.Wrap(err, "executing the template")
	}

	return e.subject, buf.String(), nil
}
