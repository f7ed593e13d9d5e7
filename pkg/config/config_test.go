package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MarshalPoolSize != 4 {
		t.Errorf("MarshalPoolSize = %d, want 4", cfg.MarshalPoolSize)
	}
	if cfg.SymmetryCacheSize != 256 {
		t.Errorf("SymmetryCacheSize = %d, want 256", cfg.SymmetryCacheSize)
	}
	if cfg.ChargeTolerance != 1e-6 {
		t.Errorf("ChargeTolerance = %g, want 1e-6", cfg.ChargeTolerance)
	}
	if cfg.AcquireTimeout != 0 || cfg.BuildLog != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOCASSIN_MARSHAL_POOL_SIZE", "8")
	t.Setenv("MOCASSIN_ACQUIRE_TIMEOUT", "250ms")
	t.Setenv("MOCASSIN_BUILD_LOG", "/tmp/build.mlog")
	t.Setenv("MOCASSIN_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MarshalPoolSize != 8 || cfg.AcquireTimeout != 250*time.Millisecond {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.BuildLog != "/tmp/build.mlog" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("MOCASSIN_MARSHAL_POOL_SIZE", "many")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("MOCASSIN_MARSHAL_POOL_SIZE", "0")

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load = %v, want ErrInvalid", err)
	}
}
