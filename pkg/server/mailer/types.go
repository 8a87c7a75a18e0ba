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

// WelcomeTmplData is a template data for welcome emails
type WelcomeTmplData struct {
	AccountEmail string
	BaseURL      string
}

// PasswordChangedTmplData is a template data for password change notices
type PasswordChangedTmplData struct {
	AccountEmail string
	BaseURL      string
}

// DigestReminder is a single reminder listed in a digest
type DigestReminder struct {
	Title    string
	Time     string
	Location string
}

// ReminderDigestTmplData is a template data for the daily reminder digest
type ReminderDigestTmplData struct {
	AccountEmail string
	Date         string
	Reminders    []DigestReminder
}
