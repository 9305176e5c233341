package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zchrykng/go-ngramspell/verbosity"
)

var envKeys = []string{
	"MODEL_PATH", "CORPUS_PATH", "HTTP_ADDR", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB", "WORKERS", "VERBOSITY", "MAX_EDITS_LENGTH", "REQUEST_TIMEOUT",
	"WATCH_MODEL", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv empties every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelPath != "model.json" || cfg.HTTPAddr != ":8080" || cfg.Workers != 4 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Verbosity != verbosity.Top || cfg.LogLevel != slog.LevelInfo || cfg.WatchModel {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.MaxEditsLength != DefaultMaxEditsLength || cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("MaxEditsLength, RequestTimeout = %d, %s, want %d, %s",
			cfg.MaxEditsLength, cfg.RequestTimeout, DefaultMaxEditsLength, DefaultRequestTimeout)
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_PATH", "lm.arpa")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WORKERS", "not a number")
	t.Setenv("VERBOSITY", "all")
	t.Setenv("WATCH_MODEL", "true")
	t.Setenv("REQUEST_TIMEOUT", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelPath != "lm.arpa" {
		t.Errorf("ModelPath = %q, want lm.arpa", cfg.ModelPath)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want the default 4", cfg.Workers)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Errorf("RequestTimeout = %s, want 250ms", cfg.RequestTimeout)
	}
	if cfg.Verbosity != verbosity.All || !cfg.WatchModel || cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MODEL_PATH=from-file.json\nHTTP_ADDR=:9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelPath != "from-file.json" {
		t.Errorf("ModelPath = %q, want from-file.json", cfg.ModelPath)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("HTTPAddr = %q, want the environment's :7070", cfg.HTTPAddr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file: %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		key, value string
	}{
		{"VERBOSITY", "loud"},
		{"LOG_LEVEL", "chatty"},
		{"LOG_FORMAT", "xml"},
		{"WORKERS", "0"},
		{"MAX_EDITS_LENGTH", "-1"},
		{"REQUEST_TIMEOUT", "-1s"},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(""); err == nil {
				t.Errorf("%s=%s: Load returned no error", tc.key, tc.value)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %q", out)
	}
}
