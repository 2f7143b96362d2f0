package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
	"github.com/clubdeportivo/clubctl/internal/config"
	"github.com/clubdeportivo/clubctl/internal/logger"
	"github.com/clubdeportivo/clubctl/internal/notify"
	"github.com/clubdeportivo/clubctl/internal/session"
)

var (
	cachedConfig  *config.Config
	cachedSession *session.Session

	notifier notify.Notifier = notify.NewWriter(os.Stdout, os.Stderr)
)

// loadConfig loads and caches the CLI configuration, initializing the
// logger from it on first use.
func loadConfig() (*config.Config, error) {
	if cachedConfig != nil {
		return cachedConfig, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Format, cfg.Log.Level)
	cachedConfig = cfg
	return cfg, nil
}

// getSession returns the session over the configured credential backend.
func getSession() (*session.Session, error) {
	if cachedSession != nil {
		return cachedSession, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var storage session.Storage
	switch cfg.Credentials.Backend {
	case "keyring":
		storage = session.NewKeyringStorage("clubctl")
	case "", "file":
		fs, err := session.DefaultFileStorage()
		if err != nil {
			return nil, fmt.Errorf("resolving credentials path: %w", err)
		}
		storage = fs
	default:
		return nil, fmt.Errorf("unknown credentials backend %q (use \"file\" or \"keyring\")", cfg.Credentials.Backend)
	}

	cachedSession = session.New(storage)
	return cachedSession, nil
}

// newClient builds an API client bound to the session, clearing stored
// credentials whenever the server answers 401.
func newClient(sess *session.Session, cfg *config.Config) *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL,
		apiclient.WithTokenSource(sess),
		apiclient.WithOnUnauthorized(func() { _ = sess.Clear() }),
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
	)
}

// getAuthenticatedClient returns a client for the stored credential. A
// missing or locally-expired token short-circuits before any request.
func getAuthenticatedClient() (*apiclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	sess, err := getSession()
	if err != nil {
		return nil, err
	}

	if _, ok := sess.Token(); !ok {
		return nil, fmt.Errorf("not logged in; run 'clubctl login' first")
	}
	if sess.Expired(time.Now()) {
		_ = sess.Clear()
		return nil, fmt.Errorf("session expired; run 'clubctl login' again")
	}

	return newClient(sess, cfg), nil
}

// getUnauthenticatedClient returns a client without credentials, for login.
func getUnauthenticatedClient() (*apiclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return apiclient.New(cfg.API.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
	), nil
}

// actionError converts API failures into the messages the user acts on.
// Conflict (400) messages pass through verbatim; everything else gets a
// uniform wrapper naming the failed action.
func actionError(err error, action string) error {
	switch {
	case apiclient.IsUnauthorized(err):
		return fmt.Errorf("session rejected by server; run 'clubctl login' again")
	case apiclient.IsForbidden(err):
		return fmt.Errorf("insufficient permissions to %s", action)
	case apiclient.IsNotFound(err):
		return fmt.Errorf("resource not found")
	case apiclient.IsConflict(err):
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// loadError is actionError for list fetches, with the retry affordance.
func loadError(err error, action string) error {
	wrapped := actionError(err, action)
	if apiclient.IsUnauthorized(err) || apiclient.IsForbidden(err) {
		return wrapped
	}
	return fmt.Errorf("%w (re-run the command to retry)", wrapped)
}

// parseID parses a positional record identifier.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// yesNo renders a boolean flag for table output.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens long free text for table cells.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
