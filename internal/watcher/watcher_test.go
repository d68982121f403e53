package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumiskin/lumiskin-cli/internal/auth"
	"github.com/lumiskin/lumiskin-cli/internal/config"
	"github.com/lumiskin/lumiskin-cli/internal/store"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReappliesChangedCredentials(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	storePath := filepath.Join(dir, "credentials.db")

	writeCfg := func(clientID string) {
		content := "oauth:\n  client-id: " + clientID + "\nstore-path: " + storePath + "\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	}
	writeCfg("old-client")

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	credStore, err := store.OpenBolt(storePath)
	require.NoError(t, err)
	defer func() {
		_ = credStore.Close()
	}()

	manager := auth.NewManager(cfg, credStore, nil)
	require.NoError(t, manager.StoreClientCredentials(context.Background(), "old-client", ""))

	reloaded := make(chan *config.Config, 1)
	w, err := New(configPath, cfg, manager, func(next *config.Config) {
		select {
		case reloaded <- next:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = w.Start(ctx)
	}()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(200 * time.Millisecond)
	writeCfg("new-client")

	select {
	case next := <-reloaded:
		require.Equal(t, "new-client", next.OAuth.ClientID)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was never observed")
	}

	value, err := credStore.Get(context.Background(), store.KeyClientID)
	require.NoError(t, err)
	require.Equal(t, "new-client", value)
}
