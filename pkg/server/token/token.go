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

// Package token generates the random values used as session keys
package token

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

// SessionKeyBytes is the amount of entropy in a session key
const SessionKeyBytes = 32

// Generate returns n random bytes encoded as URL safe base64
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", errors.Errorf("invalid token length %d", n)
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
