// Package watcher provides file system monitoring for the LumiSkin CLI.
// It watches the configuration file and, when its content changes, reloads
// it and re-persists the OAuth client credentials through the lifecycle
// core so long-running watch sessions pick up registration changes without
// a restart.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/lumiskin/lumiskin-cli/internal/auth"
	"github.com/lumiskin/lumiskin-cli/internal/config"
	log "github.com/sirupsen/logrus"
)

// Watcher monitors the configuration file for content changes.
type Watcher struct {
	configPath string
	cfg        *config.Config
	manager    *auth.Manager
	onReload   func(*config.Config)

	fsWatcher      *fsnotify.Watcher
	lastConfigHash string
}

// New creates a watcher for configPath. onReload, if non-nil, is invoked
// with every successfully reloaded configuration.
func New(configPath string, cfg *config.Config, manager *auth.Manager, onReload func(*config.Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		configPath: filepath.Clean(configPath),
		cfg:        cfg,
		manager:    manager,
		onReload:   onReload,
		fsWatcher:  fsWatcher,
	}
	if data, errRead := os.ReadFile(w.configPath); errRead == nil {
		w.lastConfigHash = contentHash(data)
	}
	return w, nil
}

// Start begins watching and blocks until ctx is cancelled.
// The parent directory is watched rather than the file itself so that
// editors which replace the file via rename are still observed.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(filepath.Dir(w.configPath)); err != nil {
		return err
	}
	log.Infof("Watching configuration file %s", w.configPath)

	for {
		select {
		case <-ctx.Done():
			return w.fsWatcher.Close()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.configPath {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	data, err := os.ReadFile(w.configPath)
	if err != nil {
		log.Warnf("failed to read changed config: %v", err)
		return
	}
	hash := contentHash(data)
	if hash == w.lastConfigHash {
		return
	}
	w.lastConfigHash = hash

	cfg, err := config.LoadConfig(w.configPath)
	if err != nil {
		log.Errorf("failed to reload config: %v", err)
		return
	}

	if cfg.OAuth.ClientID != "" && (cfg.OAuth.ClientID != w.cfg.OAuth.ClientID || cfg.OAuth.ClientSecret != w.cfg.OAuth.ClientSecret) {
		if errStore := w.manager.StoreClientCredentials(ctx, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret); errStore != nil {
			log.Errorf("failed to re-persist client credentials: %v", errStore)
		} else {
			log.Info("Client credentials updated from configuration change")
		}
	}

	w.cfg = cfg
	log.Info("Configuration reloaded")
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func contentHash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
