package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel    zerolog.Level
	Matches     int
	Workers     int
	Seed        int64
	MaxTurns    int
	Player1     string
	Player2     string
	HistoryFile string
	HangmanWord string
}

func LoadConfig() Config {
	err := godotenv.Load()

	if err != nil {
		log.Info().Msg("No .env file found. Using environment variables.")
	}

	return Config{
		LogLevel:    getLevel("LOG_LEVEL", zerolog.InfoLevel),
		Matches:     getInt("MATCHES", 100),
		Workers:     getInt("WORKERS", 4),
		Seed:        int64(getInt("SEED", 0)),
		MaxTurns:    getInt("MAX_TURNS", 1000),
		Player1:     getEnv("PLAYER_1", "player-1"),
		Player2:     getEnv("PLAYER_2", "player-2"),
		HistoryFile: getEnv("HISTORY_FILE", ".battleship_history"),
		HangmanWord: os.Getenv("HANGMAN_WORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid number, using default")
		return fallback
	}
	return n
}

func getLevel(key string, fallback zerolog.Level) zerolog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Str("default", fallback.String()).Msg("invalid log level, using default")
		return fallback
	}
	return lvl
}
