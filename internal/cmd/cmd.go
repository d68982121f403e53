// Package cmd provides command-line interface functionality for the
// LumiSkin CLI. It implements the main application commands: interactive
// login, logout, credential status, token resolution, and a watch mode that
// keeps stored client credentials in sync with the configuration file.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumiskin/lumiskin-cli/internal/auth"
	"github.com/lumiskin/lumiskin-cli/internal/callback"
	"github.com/lumiskin/lumiskin-cli/internal/config"
	"github.com/lumiskin/lumiskin-cli/internal/store"
	"github.com/lumiskin/lumiskin-cli/internal/watcher"
	log "github.com/sirupsen/logrus"
)

// openStore opens the configured credential store, terminating on failure
// since nothing works without it.
func openStore(cfg *config.Config) *store.BoltStore {
	credStore, err := store.OpenBolt(cfg.StorePath)
	if err != nil {
		log.Fatalf("failed to open credential store: %v", err)
	}
	return credStore
}

func oauthConfigFrom(cfg *config.Config) auth.OAuthConfig {
	return auth.OAuthConfig{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURI:  cfg.OAuth.RedirectURI,
		Scopes:       cfg.OAuth.Scopes,
	}
}

// DoLogin runs the interactive authorization flow and reports the outcome.
func DoLogin(cfg *config.Config) {
	credStore := openStore(cfg)
	defer func() {
		_ = credStore.Close()
	}()

	manager := auth.NewManager(cfg, credStore, callback.NewUserAgent())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !manager.Initiate(ctx, oauthConfigFrom(cfg)) {
		log.Error("Login failed")
		os.Exit(1)
	}
	log.Info("Login successful")
}

// DoLogout revokes the current session at the provider and clears local
// token state.
func DoLogout(cfg *config.Config) {
	credStore := openStore(cfg)
	defer func() {
		_ = credStore.Close()
	}()

	manager := auth.NewManager(cfg, credStore, nil)
	if !manager.Revoke(context.Background()) {
		log.Error("Logout failed, local session left intact")
		os.Exit(1)
	}
	log.Info("Logged out")
}

// DoStatus prints a redacted snapshot of the credential store together with
// whether an access token currently resolves.
func DoStatus(cfg *config.Config) {
	credStore := openStore(cfg)
	defer func() {
		_ = credStore.Close()
	}()

	ctx := context.Background()
	snapshot, err := store.StatusSnapshot(ctx, credStore)
	if err != nil {
		log.Fatalf("failed to read credential store: %v", err)
	}
	fmt.Println(string(snapshot))

	manager := auth.NewManager(cfg, credStore, nil)
	if manager.GetAccessToken(ctx) != "" {
		fmt.Println("access token: resolvable")
	} else {
		fmt.Println("access token: none")
	}
}

// DoToken resolves and prints an access token, refreshing if needed.
// It prints nothing and exits non-zero when no token is available.
func DoToken(cfg *config.Config) {
	credStore := openStore(cfg)
	defer func() {
		_ = credStore.Close()
	}()

	manager := auth.NewManager(cfg, credStore, nil)
	token := manager.GetAccessToken(context.Background())
	if token == "" {
		log.Warn("No access token available; run with -login first")
		os.Exit(1)
	}
	fmt.Println(token)
}

// DoWatch keeps running until interrupted, re-syncing client credentials
// whenever the configuration file changes.
func DoWatch(cfg *config.Config, configPath string) {
	credStore := openStore(cfg)
	defer func() {
		_ = credStore.Close()
	}()

	manager := auth.NewManager(cfg, credStore, nil)
	w, err := watcher.New(configPath, cfg, manager, nil)
	if err != nil {
		log.Fatalf("failed to create config watcher: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = w.Start(ctx); err != nil {
		log.Fatalf("config watcher stopped: %v", err)
	}
}
