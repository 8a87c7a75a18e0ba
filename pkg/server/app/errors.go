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

import "github.com/pkg/errors"

var (
	// ErrNotFound is an error indicating that the resource was not found
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for mismatching login credentials
	ErrLoginInvalid = errors.New("wrong credentials")
	// ErrDuplicateEmail is an error for an email that is already registered
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrEmailRequired is an error for a missing email
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailInvalid is an error for a malformed email
	ErrEmailInvalid = errors.New("email is invalid")
	// ErrPasswordTooShort is an error for a password shorter than the minimum
	ErrPasswordTooShort = errors.New("password should be longer than 8 characters")
	// ErrPasswordConfirmationMismatch is an error for a confirmation that does not match
	ErrPasswordConfirmationMismatch = errors.New("password confirmation does not match")
	// ErrForbidden is an error for an operation on a resource the user does not own
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidEvent is an error for an event payload that does not validate
	ErrInvalidEvent = errors.New("invalid event")
	// ErrRegistrationDisabled is an error for registering while registration is off
	ErrRegistrationDisabled = errors.New("user registration is disabled")
	// ErrInvalidImage is an error for an upload that is not an image
	ErrInvalidImage = errors.New("invalid image")
	// ErrImageTooLarge is an error for an upload over the size limit
	ErrImageTooLarge = errors.New("image is too large")
	// ErrUserHasExistingResources is an error for removing a user who still owns events or images
	ErrUserHasExistingResources = errors.New("user has existing events or images")
)
