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

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chronicle/chronicle/pkg/server/buildinfo"
	"github.com/chronicle/chronicle/pkg/server/config"
	"github.com/chronicle/chronicle/pkg/server/controllers"
	"github.com/chronicle/chronicle/pkg/server/job"
	"github.com/chronicle/chronicle/pkg/server/log"
	mw "github.com/chronicle/chronicle/pkg/server/middleware"
	"github.com/pkg/errors"
)

// shutdownTimeout bounds the wait for in-flight requests on shutdown
const shutdownTimeout = 10 * time.Second

func startCmd(args []string, w io.Writer) error {
	fs := setupFlagSet(w, "start", "chronicle-server start")

	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	baseURL := fs.String("baseUrl", "", "Full URL to server without trailing slash (env: BaseURL, default: http://localhost:3001)")
	dbURL := fs.String("dbUrl", "", "Path to SQLite database file or postgres URL (env: DBURL, default: $XDG_DATA_HOME/chronicle-server/server.db)")
	imageDir := fs.String("imageDir", "", "Directory of uploaded images (env: ImageDir, default: $XDG_DATA_HOME/chronicle-server/blobs)")
	redisAddr := fs.String("redisAddr", "", "Redis address for the public feed cache (env: REDIS_ADDR)")
	allowedOrigins := fs.String("allowedOrigins", "", "Comma separated CORS origins (env: ALLOWED_ORIGINS, default: any)")
	disableRegistration := fs.Bool("disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")
	digest := fs.Bool("digest", false, "Email the daily reminder digest (env: DigestEnabled, default: false)")
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	envFile := fs.String("envFile", ".env", "File of environment variables to load")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		return err
	}

	cfg, err := config.New(config.Params{
		Port:                *port,
		BaseURL:             *baseURL,
		DBURL:               *dbURL,
		ImageDir:            *imageDir,
		RedisAddr:           *redisAddr,
		AllowedOrigins:      *allowedOrigins,
		DisableRegistration: *disableRegistration,
		DigestEnabled:       *digest,
		LogLevel:            *logLevel,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n\n", err)
		fs.Usage()
		return errUsage
	}

	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := initApp(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "initializing app")
	}
	defer cleanup()

	runner, err := job.NewRunner(a, job.Params{DigestEnabled: cfg.DigestEnabled})
	if err != nil {
		return errors.Wrap(err, "initializing jobs")
	}
	runner.Start()
	defer runner.Stop()

	limiter := mw.NewRateLimiter(0, 0)
	go limiter.Run(ctx)

	ctl := controllers.New(a)
	rc := controllers.RouteConfig{
		WebRoutes:      controllers.NewWebRoutes(a, ctl),
		APIRoutes:      controllers.NewAPIRoutes(a, ctl),
		Controllers:    ctl,
		Limiter:        limiter,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	r, err := controllers.NewRouter(a, rc)
	if err != nil {
		return errors.Wrap(err, "initializing router")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"port":    cfg.Port,
		"baseURL": cfg.BaseURL,
	}).Info("Chronicle server starting")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}

	return nil
}
