package main

import (
	"os"
	"testing"

	"github.com/admin-panel-kit/attachment-service/internal/configuration"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()
	os.Exit(exitCode)
}

func TestDefaultConfigLoads(t *testing.T) {
	cfg := configuration.Load()
	if cfg.StorageMode != configuration.ModeLocal {
		t.Errorf("expected default storage mode %q, got %q", configuration.ModeLocal, cfg.StorageMode)
	}
	if cfg.Server.Port == "" {
		t.Error("expected a default server port")
	}
}

func TestStorageModeOverride(t *testing.T) {
	t.Setenv("STORAGE_MODE", "remote")
	cfg := configuration.Load()
	if cfg.StorageMode != configuration.ModeRemote {
		t.Errorf("expected storage mode remote, got %q", cfg.StorageMode)
	}
}
