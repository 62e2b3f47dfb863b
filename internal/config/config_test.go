package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/benbeisheim/easychess-backend/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CHESS_ADDR", "CHESS_ORIGIN", "CHESS_LOG_LEVEL", "CHESS_OPPONENT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(nil) mismatch (-want +got):\n%s", diff)
	}
	lvl, err := cfg.Level()
	if err != nil || lvl != zapcore.InfoLevel {
		t.Errorf("Level() = %v, %v; want info, nil", lvl, err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_LOG_LEVEL", "debug")
	t.Setenv("CHESS_OPPONENT", "human")

	cfg, err := Load([]string{"-addr", ":9090", "-origin", "https://chess.example"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Addr:     ":9090",
		Origin:   "https://chess.example",
		LogLevel: "debug",
		Opponent: model.OpponentHuman,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad level", args: []string{"-log-level", "loud"}},
		{name: "bad opponent flag", args: []string{"-opponent", "robot"}},
		{name: "bad opponent env", env: map[string]string{"CHESS_OPPONENT": "robot"}},
		{name: "empty addr", args: []string{"-addr", ""}},
		{name: "unknown flag", args: []string{"-depth", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load(%v) error = %v, want ErrInvalidConfig", tt.args, err)
			}
		})
	}
}
