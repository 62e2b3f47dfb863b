// Package config holds the server's runtime settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/benbeisheim/easychess-backend/internal/model"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr     string         // listen address, e.g. ":3000"
	Origin   string         // allowed CORS and WebSocket origin
	LogLevel string         // zap level name
	Opponent model.Opponent // default opponent for new games
}

func Default() Config {
	return Config{
		Addr:     ":3000",
		Origin:   "http://localhost:5173",
		LogLevel: "info",
		Opponent: model.OpponentAI,
	}
}

// Load builds a Config from defaults, then the environment, then flags in args.
func Load(args []string) (Config, error) {
	cfg := Default()
	cfg.Addr = envOr("CHESS_ADDR", cfg.Addr)
	cfg.Origin = envOr("CHESS_ORIGIN", cfg.Origin)
	cfg.LogLevel = envOr("CHESS_LOG_LEVEL", cfg.LogLevel)
	cfg.Opponent = model.Opponent(envOr("CHESS_OPPONENT", string(cfg.Opponent)))

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Origin, "origin", cfg.Origin, "allowed client origin")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	opponent := fs.String("opponent", string(cfg.Opponent), "default opponent for new games (ai, human)")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Opponent = model.Opponent(*opponent)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if !c.Opponent.Valid() {
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalidConfig, c.Opponent)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return lvl, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
