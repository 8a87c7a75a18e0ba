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

// Package config reads and writes the chronicle cli configuration file
package config

import (
	"os"
	"path/filepath"

	"github.com/chronicle/chronicle/pkg/cli/consts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Defaults for a freshly written config
const (
	DefaultAPIEndpoint     = "http://localhost:3001/api"
	DefaultWeatherEndpoint = "https://api.openweathermap.org/data/3.0"
	DefaultChatBaseURL     = "https://api.openai.com/v1"
	DefaultChatModel       = "gpt-3.5-turbo"
)

// Config holds the cli configuration
type Config struct {
	Editor             string `yaml:"editor"`
	APIEndpoint        string `yaml:"apiEndpoint"`
	Remote             string `yaml:"remote"`
	FirestoreProject   string `yaml:"firestoreProject,omitempty"`
	Offline            bool   `yaml:"offline"`
	WeatherAPIKey      string `yaml:"weatherApiKey,omitempty"`
	WeatherEndpoint    string `yaml:"weatherEndpoint"`
	ChatAPIKey         string `yaml:"chatApiKey,omitempty"`
	ChatBaseURL        string `yaml:"chatBaseUrl"`
	ChatModel          string `yaml:"chatModel"`
	EnableUpgradeCheck bool   `yaml:"enableUpgradeCheck"`
}

// Default returns the config written on first run
func Default() Config {
	return Config{
		Editor:             EditorCommand(),
		APIEndpoint:        DefaultAPIEndpoint,
		Remote:             consts.RemoteServer,
		WeatherEndpoint:    DefaultWeatherEndpoint,
		ChatBaseURL:        DefaultChatBaseURL,
		ChatModel:          DefaultChatModel,
		EnableUpgradeCheck: true,
	}
}

// EditorCommand returns the editor command for $EDITOR with the flags that
// make it wait until the file is closed
func EditorCommand() string {
	switch editor := os.Getenv("EDITOR"); editor {
	case "atom":
		return "atom -w"
	case "subl":
		return "subl -n -w"
	case "code":
		return "code -n -w"
	case "mate":
		return "mate -w"
	case "":
		return "vi"
	default:
		return editor
	}
}

// GetPath returns the path to the config file under the given config home
func GetPath(configHome string) string {
	return filepath.Join(configHome, consts.AppDirName, consts.ConfigFilename)
}

// Read reads the config file. Keys missing from the file take the defaults.
func Read(configHome string) (Config, error) {
	ret := Default()

	b, err := os.ReadFile(GetPath(configHome))
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	return ret, nil
}

// Write writes the config to the config file
func Write(configHome string, cf Config) error {
	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	if err := os.WriteFile(GetPath(configHome), b, 0644); err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}
