package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/krishanu7/turnbased-games/config"
	"github.com/krishanu7/turnbased-games/internal/game"
	"github.com/krishanu7/turnbased-games/internal/hangman"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.LoadConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	word := cfg.HangmanWord
	if word == "" {
		word = hangman.RandomWord(rng)
	}
	g, err := hangman.New(word, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("bad word")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := game.Runner[hangman.State, hangman.Guess]{
		MaxTurns: cfg.MaxTurns,
		Log:      &log.Logger,
		AfterAction: func(turn, _ int, a hangman.Guess) {
			view, _ := g.PlayerView(0)
			fmt.Printf("%2d  %s  %s  (%d/%d wrong)\n", turn+1, a.Letter, view.Masked, view.WrongGuesses, hangman.MaxWrongGuesses)
		},
	}
	turns, err := runner.Play(ctx, g, game.NewRandomPlayer[hangman.State, hangman.Guess](rng.Int63()))
	if err != nil {
		log.Fatal().Err(err).Int("turns", turns).Msg("game aborted")
	}

	final := g.State()
	if final.Won() {
		fmt.Printf("guessed %s in %d turns\n", final.Word, turns)
	} else {
		fmt.Printf("hanged after %d turns, the word was %s\n", turns, final.Word)
	}
}
