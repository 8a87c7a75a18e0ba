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

// Package consts holds names shared across the chronicle cli
package consts

var (
	// AppDirName is the name of the directory under each XDG base directory
	AppDirName = "chronicle"
	// DBFileName is the filename of the local SQLite database
	DBFileName = "chronicle.db"
	// ConfigFilename is the name of the config file
	ConfigFilename = "chronicleconfig.yaml"
	// ImageCacheDirName is the directory under the cache dir for downloaded images
	ImageCacheDirName = "images"

	// SystemSchema is the key for the local schema version in the system table
	SystemSchema = "schema"
	// SystemLastUpgrade is the timestamp at which the cli last checked for an upgrade
	SystemLastUpgrade = "last_upgrade"
	// SystemSessionKey is the session key
	SystemSessionKey = "session_token"
	// SystemSessionKeyExpiry is the timestamp at which the session key will expire
	SystemSessionKeyExpiry = "session_token_expiry"
	// SystemUserUUID is the uuid of the signed in user
	SystemUserUUID = "user_uuid"
	// SystemUserEmail is the email of the signed in user
	SystemUserEmail = "user_email"

	// RemoteServer selects the chronicle server as the remote event source
	RemoteServer = "server"
	// RemoteFirestore selects a Firestore project as the remote event source
	RemoteFirestore = "firestore"

	// EnvDebug enables debug output when set to 1
	EnvDebug = "CHRONICLE_DEBUG"
)
