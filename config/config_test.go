package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/krishanu7/turnbased-games/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "MATCHES", "WORKERS", "SEED", "MAX_TURNS",
		"PLAYER_1", "PLAYER_2", "HISTORY_FILE", "HANGMAN_WORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := config.LoadConfig()

	want := config.Config{
		LogLevel:    zerolog.InfoLevel,
		Matches:     100,
		Workers:     4,
		Seed:        0,
		MaxTurns:    1000,
		Player1:     "player-1",
		Player2:     "player-2",
		HistoryFile: ".battleship_history",
	}
	if want != cfg {
		t.Errorf("want=%+v, have=%+v", want, cfg)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MATCHES", "12")
	t.Setenv("WORKERS", "2")
	t.Setenv("SEED", "42")
	t.Setenv("PLAYER_1", "alice")
	t.Setenv("HANGMAN_WORD", "gopher")

	cfg := config.LoadConfig()
	if want, have := zerolog.DebugLevel, cfg.LogLevel; want != have {
		t.Errorf("LogLevel: want=%s, have=%s", want, have)
	}
	if want, have := 12, cfg.Matches; want != have {
		t.Errorf("Matches: want=%d, have=%d", want, have)
	}
	if want, have := 2, cfg.Workers; want != have {
		t.Errorf("Workers: want=%d, have=%d", want, have)
	}
	if want, have := int64(42), cfg.Seed; want != have {
		t.Errorf("Seed: want=%d, have=%d", want, have)
	}
	if want, have := "alice", cfg.Player1; want != have {
		t.Errorf("Player1: want=%q, have=%q", want, have)
	}
	if want, have := "player-2", cfg.Player2; want != have {
		t.Errorf("Player2: want=%q, have=%q", want, have)
	}
	if want, have := "gopher", cfg.HangmanWord; want != have {
		t.Errorf("HangmanWord: want=%q, have=%q", want, have)
	}
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("MATCHES", "many")
	t.Setenv("WORKERS", "-3")
	t.Setenv("MAX_TURNS", "1e3")

	cfg := config.LoadConfig()
	if want, have := zerolog.InfoLevel, cfg.LogLevel; want != have {
		t.Errorf("LogLevel: want=%s, have=%s", want, have)
	}
	if want, have := 100, cfg.Matches; want != have {
		t.Errorf("Matches: want=%d, have=%d", want, have)
	}
	if want, have := 4, cfg.Workers; want != have {
		t.Errorf("Workers: want=%d, have=%d", want, have)
	}
	if want, have := 1000, cfg.MaxTurns; want != have {
		t.Errorf("MaxTurns: want=%d, have=%d", want, have)
	}
}

func TestLoadConfig_ReportsMissingDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	defer func() { log.Logger = orig }()

	config.LoadConfig()
	if !strings.Contains(buf.String(), "No .env file found") {
		t.Errorf("expected the missing .env notice at info level, have %q", buf.String())
	}
}
