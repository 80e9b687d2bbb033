package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/krishanu7/turnbased-games/config"
	"github.com/krishanu7/turnbased-games/internal/battleship"
	"github.com/krishanu7/turnbased-games/internal/game"
	"github.com/krishanu7/turnbased-games/internal/leaderboard"
	"github.com/krishanu7/turnbased-games/internal/match"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.LoadConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	matchService := match.NewService(cfg.MaxTurns, log.Logger)
	board := leaderboard.NewService()

	//Channel to receive match results
	matchChan := make(chan match.MatchResult)

	log.Info().Int("matches", cfg.Matches).Int("workers", cfg.Workers).Msg("Tournament starting...")

	var grp errgroup.Group
	grp.Go(func() error {
		defer close(matchChan)
		return matchService.RunTournament(ctx,
			randomEntrant(cfg.Player1, cfg.Seed),
			randomEntrant(cfg.Player2, cfg.Seed+1),
			cfg.Matches, cfg.Workers, matchChan)
	})

	totalTurns := 0
	for result := range matchChan {
		log.Debug().Str("match_id", result.ID).Str("winner", result.Winner).Int("turns", result.Turns).
			Dur("took", result.Duration).Msg("Result received")
		if err := board.RecordResult(result.Winner, result.Loser); err != nil {
			log.Error().Err(err).Str("match_id", result.ID).Msg("Failed to record result")
			continue
		}
		totalTurns += result.Turns
	}
	if err := grp.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Tournament aborted")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tWINS\tLOSSES\tELO")
	for i, e := range board.GetLeaderboard(0) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i+1, e.PlayerID, e.Wins, e.Losses, e.Elo)
	}
	w.Flush()
	if cfg.Matches > 0 {
		fmt.Printf("average match length: %.1f turns\n", float64(totalTurns)/float64(cfg.Matches))
	}
}

// randomEntrant gives every match its own seed derived from seed, or a clock
// seed when seed is 0.
func randomEntrant(name string, seed int64) match.Entrant {
	var played atomic.Int64
	return match.Entrant{
		Name: name,
		NewPolicy: func() match.Policy {
			n := played.Add(1) - 1
			s := int64(0)
			if seed != 0 {
				s = seed + 2*n
			}
			return game.NewRandomPlayer[battleship.GameState, battleship.Action](s)
		},
	}
}
