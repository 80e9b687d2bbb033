package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrNoPlayers = errors.New("no players")
	ErrNoAction  = errors.New("player selected no action")
	ErrTurnLimit = errors.New("turn limit reached")
)

// Runner drives a game by asking the active player for an action until no
// legal action is left. The game itself is only touched from the calling
// goroutine.
type Runner[S, A any] struct {
	// MaxTurns caps the number of applied actions; 0 means no cap.
	MaxTurns int
	Log      *zerolog.Logger
	// AfterAction, when set, is called after every applied action.
	AfterAction func(turn, player int, action A)
}

// Play runs g to completion with players indexed by the game's active
// player, wrapping around when there are fewer players than seats. It
// returns the number of actions applied.
func (r Runner[S, A]) Play(ctx context.Context, g Game[S, A], players ...Player[S, A]) (int, error) {
	if len(players) == 0 {
		return 0, ErrNoPlayers
	}
	log := r.logger()

	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return turn, err
		}
		actions := g.LegalActions()
		if len(actions) == 0 {
			log.Debug().Int("turns", turn).Msg("no legal actions left")
			return turn, nil
		}
		if r.MaxTurns > 0 && turn >= r.MaxTurns {
			return turn, fmt.Errorf("%w: %d", ErrTurnLimit, r.MaxTurns)
		}

		idx := g.ActivePlayer()
		view, err := g.PlayerView(idx)
		if err != nil {
			return turn, fmt.Errorf("view for player %d: %w", idx, err)
		}
		action, ok := players[idx%len(players)].SelectAction(view, actions)
		if !ok {
			return turn, fmt.Errorf("%w: player %d", ErrNoAction, idx)
		}
		if err := g.ApplyAction(action); err != nil {
			return turn, fmt.Errorf("player %d: %w", idx, err)
		}
		log.Trace().Int("turn", turn).Int("player", idx).Interface("action", action).Msg("applied")

		if r.AfterAction != nil {
			r.AfterAction(turn, idx, action)
		}
	}
}

func (r Runner[S, A]) logger() *zerolog.Logger {
	if r.Log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return r.Log
}
