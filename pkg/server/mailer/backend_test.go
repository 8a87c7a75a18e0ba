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

package mailer

import (
	"bytes"
	"testing"

	"github.com/chronicle/chronicle/pkg/assert"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type mockDialer struct {
	sent []*gomail.Message
	err  error
}

func (m *mockDialer) DialAndSend(msgs ...*gomail.Message) error {
	m.sent = append(m.sent, msgs...)
	return m.err
}

func TestSMTPBackend_SendEmail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := &mockDialer{}
		b := &SMTPBackend{Dialer: d, Templates: NewTemplates()}

		data := WelcomeTmplData{AccountEmail: "alice@example.com", BaseURL: "https://chronicle.example.com"}
		if err := b.SendEmail(EmailTypeWelcome, "noreply@example.com", []string{"alice@example.com"}, data); err != nil {
			t.Fatal(err)
		}

		assert.Equalf(t, len(d.sent), 1, "sent count mismatch")
		m := d.sent[0]
		assert.DeepEqual(t, m.GetHeader("To"), []string{"alice@example.com"}, "to mismatch")
		assert.DeepEqual(t, m.GetHeader("Subject"), []string{"Welcome to Chronicle"}, "subject mismatch")

		var buf bytes.Buffer
		if _, err := m.WriteTo(&buf); err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(buf.Bytes(), []byte("alice@example.com")) {
			t.Errorf("body does not contain the account email")
		}
	})

	t.Run("dialer error", func(t *testing.T) {
		d := &mockDialer{err: errors.New("connection refused")}
		b := &SMTPBackend{Dialer: d, Templates: NewTemplates()}

		err := b.SendEmail(EmailTypeWelcome, "noreply@example.com", []string{"alice@example.com"}, WelcomeTmplData{})
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		d := &mockDialer{}
		b := &SMTPBackend{Dialer: d, Templates: NewTemplates()}

		if err := b.SendEmail("unknown", "noreply@example.com", []string{"alice@example.com"}, nil); err == nil {
			t.Fatal("expected an error")
		}
		assert.Equal(t, len(d.sent), 0, "nothing should be sent")
	})
}

func TestSMTPParamsFromEnv(t *testing.T) {
	t.Run("with all env vars set", func(t *testing.T) {
		t.Setenv("SmtpHost", "smtp.example.com")
		t.Setenv("SmtpPort", "587")
		t.Setenv("SmtpUsername", "user@example.com")
		t.Setenv("SmtpPassword", "secret")

		p, err := SMTPParamsFromEnv()
		if err != nil {
			t.Fatal(err)
		}

		assert.DeepEqual(t, p, SMTPParams{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "user@example.com",
			Password: "secret",
		}, "params mismatch")
	})

	t.Run("missing config", func(t *testing.T) {
		t.Setenv("SmtpHost", "")
		t.Setenv("SmtpPort", "")
		t.Setenv("SmtpUsername", "")
		t.Setenv("SmtpPassword", "")

		_, err := SMTPParamsFromEnv()
		assert.Equal(t, err, ErrSMTPNotConfigured, "error mismatch")

		b, err := NewBackend()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := b.(*StdoutBackend); !ok {
			t.Errorf("expected a stdout backend, got %T", b)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("SmtpHost", "smtp.example.com")
		t.Setenv("SmtpPort", "abc")
		t.Setenv("SmtpUsername", "user@example.com")
		t.Setenv("SmtpPassword", "secret")

		if _, err := SMTPParamsFromEnv(); err == nil {
			t.Fatal("expected an error")
		}
	})
}
