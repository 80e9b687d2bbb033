// internal/hangman/engine.go
//
// Hangman engine. Same contract as the battleship engine, with a single
// player guessing letters of a hidden word.
//
// State transitions:
//   - MaxWrongGuesses misses → finished (lost).
//   - Every letter revealed → finished (won).
package hangman

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidPlayer = errors.New("invalid player index")
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Words is the list RandomWord picks from.
var Words = []string{
	"DEVOPS", "GOPHER", "BATTLESHIP", "CHANNEL", "GOROUTINE",
	"INTERFACE", "COMPILER", "PACKAGE", "POINTER", "MODULE",
}

// RandomWord picks one of Words.
func RandomWord(rng *rand.Rand) string {
	return Words[rng.Intn(len(Words))]
}

// Game is a hangman session. Not safe for concurrent use.
type Game struct {
	state State
	log   zerolog.Logger
}

// New starts a running game for word.
func New(word string, log zerolog.Logger) (*Game, error) {
	g := &Game{log: log}
	if err := g.SetState(State{Word: word}); err != nil {
		return nil, err
	}
	return g, nil
}

// State returns a copy of the full state, word included.
func (g *Game) State() State {
	return g.state.clone()
}

// SetState loads s, normalising the word to upper case. The wrong guess
// count and the phase are derived from the guesses, so a restored game is
// always consistent.
func (g *Game) SetState(s State) error {
	word := strings.ToUpper(s.Word)
	if word == "" || !isLetters(word) {
		return fmt.Errorf("%w: word must be letters A-Z, got %q", ErrInvalidState, s.Word)
	}
	next := State{Word: word, Guesses: []string{}, Phase: PhaseRunning}
	for _, guess := range s.Guesses {
		letter := strings.ToUpper(guess)
		if len(letter) != 1 || !isLetters(letter) || contains(next.Guesses, letter) {
			return fmt.Errorf("%w: bad guess %q", ErrInvalidState, guess)
		}
		next.Guesses = append(next.Guesses, letter)
		if !strings.Contains(word, letter) {
			next.WrongGuesses++
		}
	}
	next.Masked = mask(word, next.Guesses)
	if next.WrongGuesses >= MaxWrongGuesses || !strings.Contains(next.Masked, "_") {
		next.Phase = PhaseFinished
	}
	g.state = next
	return nil
}

// LegalActions returns the unguessed letters in alphabetical order while the
// game runs.
func (g *Game) LegalActions() []Guess {
	if g.state.Phase != PhaseRunning {
		return []Guess{}
	}
	actions := make([]Guess, 0, len(alphabet)-len(g.state.Guesses))
	for _, r := range alphabet {
		if !contains(g.state.Guesses, string(r)) {
			actions = append(actions, Guess{Letter: string(r)})
		}
	}
	return actions
}

// ApplyAction validates and applies a guess.
func (g *Game) ApplyAction(a Guess) error {
	if g.state.Phase != PhaseRunning {
		return fmt.Errorf("%w: game is %s", ErrInvalidAction, g.state.Phase)
	}
	letter := strings.ToUpper(a.Letter)
	if len(letter) != 1 || !isLetters(letter) {
		return fmt.Errorf("%w: %q is not a letter", ErrInvalidAction, a.Letter)
	}
	if contains(g.state.Guesses, letter) {
		return fmt.Errorf("%w: %s already guessed", ErrInvalidAction, letter)
	}

	g.state.Guesses = append(g.state.Guesses, letter)
	hit := strings.Contains(g.state.Word, letter)
	if !hit {
		g.state.WrongGuesses++
	}
	g.state.Masked = mask(g.state.Word, g.state.Guesses)

	switch {
	case g.state.WrongGuesses >= MaxWrongGuesses:
		g.state.Phase = PhaseFinished
		g.log.Debug().Str("word", g.state.Word).Msg("hanged")
	case !strings.Contains(g.state.Masked, "_"):
		g.state.Phase = PhaseFinished
		g.log.Debug().Str("word", g.state.Word).Msg("word guessed")
	default:
		g.log.Debug().Str("letter", letter).Bool("hit", hit).Str("masked", g.state.Masked).
			Int("wrong", g.state.WrongGuesses).Msg("guess")
	}
	return nil
}

// PlayerView hides the word; only the masked form is visible.
func (g *Game) PlayerView(idx int) (State, error) {
	if idx != 0 {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidPlayer, idx)
	}
	view := g.state.clone()
	if view.Phase != PhaseFinished {
		view.Word = ""
	}
	return view, nil
}

// ActivePlayer is always 0; hangman has a single guesser.
func (g *Game) ActivePlayer() int { return 0 }

func (s State) clone() State {
	out := s
	if s.Guesses != nil {
		out.Guesses = make([]string, len(s.Guesses))
		copy(out.Guesses, s.Guesses)
	}
	return out
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
