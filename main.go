package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	rl "github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/krishanu7/turnbased-games/config"
	"github.com/krishanu7/turnbased-games/internal/battleship"
	"github.com/krishanu7/turnbased-games/internal/console"
	"github.com/krishanu7/turnbased-games/internal/game"
)

type (
	state  = battleship.GameState
	action = battleship.Action
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.LoadConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	completer := rl.NewPrefixCompleter(
		rl.PcItem("help"),
		rl.PcItem("auto"),
		rl.PcItem("quit"),
	)
	l, err := rl.NewEx(&rl.Config{
		Prompt:            "\033[31m»\033[0m ",
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start terminal")
	}
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	computer := game.NewRandomPlayer[state, action](cfg.Seed)
	human := console.NewPlayer(l, l.Stdout(), log.Logger)
	human.Auto = computer

	g := battleship.New(
		battleship.WithNames(cfg.Player1, cfg.Player2),
		battleship.WithLogger(log.Logger),
	)
	runner := game.Runner[state, action]{
		MaxTurns: cfg.MaxTurns,
		Log:      &log.Logger,
		AfterAction: func(_, player int, a action) {
			if a.Type != battleship.ActionShoot || player != 1 {
				return
			}
			fmt.Fprintf(l.Stdout(), "%s fires at %s\n", cfg.Player2, a.Location[0])
		},
	}

	fmt.Fprintln(l.Stdout(), "battleship: type help for commands")
	turns, err := runner.Play(ctx, g, human, computer)
	if errors.Is(err, game.ErrNoAction) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(l.Stdout(), "bye")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Int("turns", turns).Msg("game aborted")
	}

	final := g.State()
	if err := battleship.Render(l.Stdout(), final, 0); err != nil {
		log.Error().Err(err).Msg("render final board")
	}
	if final.Winner != nil && *final.Winner == 0 {
		fmt.Fprintf(l.Stdout(), "you sank the fleet of %s in %d turns\n", cfg.Player2, turns)
	} else {
		fmt.Fprintf(l.Stdout(), "%s sank your fleet in %d turns\n", cfg.Player2, turns)
	}
}
