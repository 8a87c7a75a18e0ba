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

// Package config builds the server configuration from flags, the
// environment and defaults
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chronicle/chronicle/pkg/dirs"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// DefaultDataDir is the directory name for server data under the XDG data home
	DefaultDataDir = "chronicle-server"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"
	// DefaultImageDirname is the default directory name for uploaded images
	DefaultImageDirname = "blobs"
)

var (
	// ErrDBMissingURL is an error for an incomplete configuration missing the database url
	ErrDBMissingURL = errors.New("DB URL is empty")
	// ErrBaseURLInvalid is an error for an incomplete configuration with invalid base url
	ErrBaseURLInvalid = errors.New("Invalid BaseURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrImageDirMissing is an error for an incomplete configuration missing the image directory
	ErrImageDirMissing = errors.New("Image directory is empty")
	// ErrLogLevelInvalid is an error for an unknown log level
	ErrLogLevelInvalid = errors.New("Invalid log level")
	// ErrRedisDBInvalid is an error for a redis database number that is not an integer
	ErrRedisDBInvalid = errors.New("Invalid redis database")
)

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

func splitList(s string) []string {
	ret := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}

	return ret
}

// LoadEnvFile loads the variables of the env file into the environment
// without overriding the ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file '%s'", path)
	}

	return nil
}

// Config is an application configuration
type Config struct {
	Port                string
	BaseURL             string
	DBURL               string
	ImageDir            string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	LogLevel            string
	DisableRegistration bool
	DigestEnabled       bool
	AllowedOrigins      []string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	Port                string
	BaseURL             string
	DBURL               string
	ImageDir            string
	RedisAddr           string
	LogLevel            string
	AllowedOrigins      string
	DisableRegistration bool
	DigestEnabled       bool
}

func defaultDataDir() string {
	d, err := dirs.Load()
	if err != nil {
		return DefaultDataDir
	}

	return filepath.Join(d.Data, DefaultDataDir)
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	dataDir := defaultDataDir()

	redisDB, err := strconv.Atoi(getOrEnv("", "REDIS_DB", "0"))
	if err != nil {
		return Config{}, errors.Wrapf(ErrRedisDBInvalid, "'%s'", os.Getenv("REDIS_DB"))
	}

	c := Config{
		Port:                getOrEnv(p.Port, "PORT", "3001"),
		BaseURL:             strings.TrimSuffix(getOrEnv(p.BaseURL, "BaseURL", "http://localhost:3001"), "/"),
		DBURL:               getOrEnv(p.DBURL, "DBURL", filepath.Join(dataDir, DefaultDBFilename)),
		ImageDir:            getOrEnv(p.ImageDir, "ImageDir", filepath.Join(dataDir, DefaultImageDirname)),
		RedisAddr:           getOrEnv(p.RedisAddr, "REDIS_ADDR", ""),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		LogLevel:            strings.ToLower(getOrEnv(p.LogLevel, "LOG_LEVEL", "info")),
		DisableRegistration: p.DisableRegistration || readBoolEnv("DisableRegistration"),
		DigestEnabled:       p.DigestEnabled || readBoolEnv("DigestEnabled"),
		AllowedOrigins:      splitList(getOrEnv(p.AllowedOrigins, "ALLOWED_ORIGINS", "")),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

func validate(c Config) error {
	u, err := url.ParseRequestURI(c.BaseURL)
	if err != nil || u.Host == "" {
		return errors.Wrapf(ErrBaseURLInvalid, "'%s'", c.BaseURL)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Wrapf(ErrPortInvalid, "'%s'", c.Port)
	}
	if c.DBURL == "" {
		return ErrDBMissingURL
	}
	if c.ImageDir == "" {
		return ErrImageDirMissing
	}
	if !logLevels[c.LogLevel] {
		return errors.Wrapf(ErrLogLevelInvalid, "'%s'", c.LogLevel)
	}

	return nil
}
