// Package config reads process settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zchrykng/go-ngramspell/verbosity"
)

const (
	// DefaultMaxEditsLength skips the two-edit search for longer words.
	DefaultMaxEditsLength = 20
	// DefaultRequestTimeout bounds one HTTP check.
	DefaultRequestTimeout = 5 * time.Second
)

type Config struct {
	ModelPath      string
	CorpusPath     string
	HTTPAddr       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	Workers        int
	Verbosity      verbosity.Verbosity
	MaxEditsLength int
	RequestTimeout time.Duration
	WatchModel     bool
	LogLevel       slog.Level
	LogFormat      string
}

// Load fills a Config from envFile, when it exists, and the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		ModelPath:      getenv("MODEL_PATH", "model.json"),
		CorpusPath:     getenv("CORPUS_PATH", "corpus.txt"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		Workers:        getEnvInt("WORKERS", 4),
		MaxEditsLength: getEnvInt("MAX_EDITS_LENGTH", DefaultMaxEditsLength),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		WatchModel:     getEnvBool("WATCH_MODEL", false),
		LogFormat:      strings.ToLower(getenv("LOG_FORMAT", "text")),
	}

	v, ok := verbosity.Parse(os.Getenv("VERBOSITY"))
	if !ok {
		return Config{}, fmt.Errorf("config: unknown VERBOSITY %q", os.Getenv("VERBOSITY"))
	}
	cfg.Verbosity = v

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.ModelPath == "":
		return errors.New("config: MODEL_PATH is empty")
	case c.CorpusPath == "":
		return errors.New("config: CORPUS_PATH is empty")
	case c.Workers < 1:
		return fmt.Errorf("config: WORKERS must be positive, got %d", c.Workers)
	case c.MaxEditsLength < 0:
		return fmt.Errorf("config: MAX_EDITS_LENGTH must not be negative, got %d", c.MaxEditsLength)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	case c.RedisDB < 0:
		return fmt.Errorf("config: REDIS_DB must not be negative, got %d", c.RedisDB)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}
