package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/krishanu7/turnbased-games/internal/battleship"
	"github.com/krishanu7/turnbased-games/internal/game"
)

var (
	ErrAlreadyQueued = errors.New("player already in queue")
	ErrNotQueued     = errors.New("player not in queue")
	ErrNotEnough     = errors.New("not enough players")
)

type Policy = game.Player[battleship.GameState, battleship.Action]

// Entrant is a named policy. NewPolicy is called once per match so that
// concurrent matches never share a policy.
type Entrant struct {
	Name      string
	NewPolicy func() Policy
}

type MatchResult struct {
	ID       string        `json:"id"`
	Player1  string        `json:"player1"`
	Player2  string        `json:"player2"`
	Winner   string        `json:"winner"`
	Loser    string        `json:"loser"`
	Turns    int           `json:"turns"`
	Duration time.Duration `json:"duration"`
}

type Service struct {
	mu     sync.Mutex
	queue  []Entrant       // entrants waiting, oldest first
	queued map[string]bool // names in queue
	runner game.Runner[battleship.GameState, battleship.Action]
	log    zerolog.Logger
}

func NewService(maxTurns int, log zerolog.Logger) *Service {
	return &Service{
		queued: make(map[string]bool),
		runner: game.Runner[battleship.GameState, battleship.Action]{MaxTurns: maxTurns, Log: &log},
		log:    log,
	}
}

func (s *Service) AddToQueue(e Entrant) error {
	if e.Name == "" || e.NewPolicy == nil {
		return fmt.Errorf("entrant needs a name and a policy")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queued[e.Name] {
		return fmt.Errorf("%w: %s", ErrAlreadyQueued, e.Name)
	}
	s.queue = append(s.queue, e)
	s.queued[e.Name] = true
	return nil
}

func (s *Service) RemoveFromQueue(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queued[name] {
		return fmt.Errorf("%w: %s", ErrNotQueued, name)
	}
	for i, e := range s.queue {
		if e.Name == name {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	delete(s.queued, name)
	return nil
}

func (s *Service) QueueLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// MatchPlayers takes the two longest waiting entrants off the queue and plays
// a match between them, the first one moving first.
func (s *Service) MatchPlayers(ctx context.Context) (MatchResult, error) {
	s.mu.Lock()
	if len(s.queue) < 2 {
		s.mu.Unlock()
		return MatchResult{}, ErrNotEnough
	}
	p1, p2 := s.queue[0], s.queue[1]
	s.queue = s.queue[2:]
	delete(s.queued, p1.Name)
	delete(s.queued, p2.Name)
	s.mu.Unlock()

	return s.Play(ctx, p1, p2)
}

// Play runs one battleship match to completion with p1 as player 0.
func (s *Service) Play(ctx context.Context, p1, p2 Entrant) (MatchResult, error) {
	if p1.Name == p2.Name {
		return MatchResult{}, fmt.Errorf("player %s cannot play against itself", p1.Name)
	}
	result := MatchResult{
		ID:      uuid.NewString(),
		Player1: p1.Name,
		Player2: p2.Name,
	}
	log := s.log.With().Str("match_id", result.ID).Logger()

	g := battleship.New(battleship.WithNames(p1.Name, p2.Name), battleship.WithLogger(log))
	runner := s.runner
	runner.Log = &log

	start := time.Now()
	turns, err := runner.Play(ctx, g, p1.NewPolicy(), p2.NewPolicy())
	result.Turns = turns
	result.Duration = time.Since(start)
	if err != nil {
		return result, fmt.Errorf("match %s: %w", result.ID, err)
	}

	state := g.State()
	if state.Winner == nil {
		return result, fmt.Errorf("match %s ended in %s phase without a winner", result.ID, state.Phase)
	}
	result.Winner = state.Players[*state.Winner].Name
	result.Loser = state.Players[1-*state.Winner].Name

	log.Info().Str("winner", result.Winner).Str("loser", result.Loser).Int("turns", turns).Msg("match finished")
	return result, nil
}

// RunTournament plays n matches between a and b on up to workers goroutines,
// swapping who moves first on every other match, and sends each result on
// results. Each match runs on its own engine.
func (s *Service) RunTournament(ctx context.Context, a, b Entrant, n, workers int, results chan<- MatchResult) error {
	if workers < 1 {
		workers = 1
	}
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for i := 0; i < n; i++ {
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}
		grp.Go(func() error {
			result, err := s.Play(gctx, first, second)
			if err != nil {
				return err
			}
			select {
			case results <- result:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return grp.Wait()
}
