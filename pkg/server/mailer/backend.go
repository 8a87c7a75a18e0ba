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
	"os"
	"strconv"

	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// ErrSMTPNotConfigured is an error indicating that SMTP is not configured
var ErrSMTPNotConfigured = errors.New("SMTP is not configured")

// Backend sends rendered emails
type Backend interface {
	SendEmail(templateType, from string, to []string, data interface{}) error
}

// Dialer delivers email messages
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPBackend renders the template and sends it through an SMTP server
// without queueing
type SMTPBackend struct {
	Dialer    Dialer
	Templates Templates
}

// SMTPParams are the connection parameters of the SMTP server
type SMTPParams struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPParamsFromEnv reads the SmtpHost, SmtpPort, SmtpUsername and
// SmtpPassword environment variables
func SMTPParamsFromEnv() (SMTPParams, error) {
	host := os.Getenv("SmtpHost")
	port := os.Getenv("SmtpPort")
	username := os.Getenv("SmtpUsername")
	password := os.Getenv("SmtpPassword")

	if host == "" || port == "" || username == "" || password == "" {
		return SMTPParams{}, ErrSMTPNotConfigured
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return SMTPParams{}, errors.Wrap(err, "parsing SMTP port")
	}

	return SMTPParams{
		Host:     host,
		Port:     p,
		Username: username,
		Password: password,
	}, nil
}

// NewSMTPBackend returns a backend dialing the server of the given params
func NewSMTPBackend(p SMTPParams) *SMTPBackend {
	return &SMTPBackend{
		Dialer:    gomail.NewDialer(p.Host, p.Port, p.Username, p.Password),
		Templates: NewTemplates(),
	}
}

// SendEmail implements Backend
func (b *SMTPBackend) SendEmail(templateType, from string, to []string, data interface{}) error {
	subject, body, err := b.Templates.Execute(templateType, EmailKindText, data)
	if err != nil {
		return errors.Wrap(err, "executing template")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody(EmailKindText, body)

	if err := b.Dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "dialing and sending email")
	}

	return nil
}

// StdoutBackend logs the rendered emails instead of sending them
type StdoutBackend struct {
	Templates Templates
}

// NewStdoutBackend creates a stdout backend
func NewStdoutBackend() *StdoutBackend {
	return &StdoutBackend{
		Templates: NewTemplates(),
	}
}

// SendEmail implements Backend
func (b *StdoutBackend) SendEmail(templateType, from string, to []string, data interface{}) error {
	subject, body, err := b.Templates.Execute(templateType, EmailKindText, data)
	if err != nil {
		return errors.Wrap(err, "executing template")
	}

	log.WithFields(log.Fields{
		"subject": subject,
		"to":      to,
		"from":    from,
		"body":    body,
	}).Info("Email (not sent, using StdoutBackend)")

	return nil
}

// NewBackend returns an SMTP backend when the environment configures one,
// and a stdout backend otherwise
func NewBackend() (Backend, error) {
	p, err := SMTPParamsFromEnv()
	if errors.Cause(err) == ErrSMTPNotConfigured {
		log.Info("SMTP is not configured. Emails will be printed to stdout.")
		return NewStdoutBackend(), nil
	} else if err != nil {
		return nil, err
	}

	return NewSMTPBackend(p), nil
}
