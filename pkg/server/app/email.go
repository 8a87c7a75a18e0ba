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

package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chronicle/chronicle/pkg/server/database"
	"github.com/chronicle/chronicle/pkg/server/log"
	"github.com/chronicle/chronicle/pkg/server/mailer"
	"github.com/pkg/errors"
)

func getDomainFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing url")
	}

	host := u.Hostname()
	if host == "" {
		return "", errors.Errorf("no host in '%s'", rawURL)
	}

	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host, nil
	}

	return parts[len(parts)-2] + "." + parts[len(parts)-1], nil
}

// GetSenderEmail returns the noreply address on the domain of the base URL
func GetSenderEmail(baseURL string) (string, error) {
	domain, err := getDomainFromURL(baseURL)
	if err != nil {
		return "", errors.Wrap(err, "getting sender email address")
	}

	return fmt.Sprintf("noreply@%s", domain), nil
}

func (a *App) send(templateType, to string, data interface{}) error {
	from, err := GetSenderEmail(a.BaseURL)
	if err != nil {
		return err
	}

	if err := a.EmailBackend.SendEmail(templateType, from, []string{to}, data); err != nil {
		return errors.Wrapf(err, "sending %s email to %s", templateType, to)
	}

	return nil
}

// SendWelcomeEmail sends welcome email
func (a *App) SendWelcomeEmail(email string) error {
	return a.send(mailer.EmailTypeWelcome, email, mailer.WelcomeTmplData{
		AccountEmail: email,
		BaseURL:      a.BaseURL,
	})
}

// SendPasswordChangedEmail notifies the user of a password change
func (a *App) SendPasswordChangedEmail(email string) error {
	return a.send(mailer.EmailTypePasswordChanged, email, mailer.PasswordChangedTmplData{
		AccountEmail: email,
		BaseURL:      a.BaseURL,
	})
}

// SendReminderDigests emails every user with reminders dated on date the
// list of those reminders. Users who turned the digest off are skipped. It
// returns the number of emails sent.
func (a *App) SendReminderDigests(ctx context.Context, date string) (int, error) {
	reminders, err := a.GetRemindersOn(ctx, date)
	if err != nil {
		return 0, err
	}
	if len(reminders) == 0 {
		return 0, nil
	}

	uuids := make([]string, 0, len(reminders))
	for id := range reminders {
		uuids = append(uuids, id)
	}

	var users []database.User
	if err := a.DB.WithContext(ctx).Where("uuid IN ? AND no_digest = ?", uuids, false).Order("id ASC").Find(&users).Error; err != nil {
		return 0, errors.Wrap(err, "finding digest recipients")
	}

	sent := 0
	for _, u := range users {
		data := mailer.ReminderDigestTmplData{
			AccountEmail: u.Email,
			Date:         date,
		}
		for _, r := range reminders[u.UUID] {
			data.Reminders = append(data.Reminders, mailer.DigestReminder{
				Title:    r.Title,
				Time:     r.Time,
				Location: r.Location,
			})
		}

		if err := a.send(mailer.EmailTypeReminderDigest, u.Email, data); err != nil {
			log.WithFields(log.Fields{
				"user_id": u.ID,
			}).ErrorWrap(err, "sending reminder digest")
			continue
		}

		sent++
	}

	return sent, nil
}
