// internal/hangman/types.go
//
// Type definitions for the hangman game.
// Defines:
//   - Phase: lifecycle of a game (setup → running → finished).
//   - State: the word, the guesses so far and the wrong guess count.
//   - Guess: the only action, one letter.

package hangman

import "strings"

// MaxWrongGuesses is the number of misses that loses the game.
const MaxWrongGuesses = 8

// Phase is the lifecycle stage of a hangman game.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseRunning  Phase = "running"
	PhaseFinished Phase = "finished"
)

// State holds a single hangman game.
type State struct {
	Word         string   `json:"word"`          // Upper case word; "" in a player view.
	Masked       string   `json:"masked"`        // Word with unrevealed letters as '_'.
	Guesses      []string `json:"guesses"`       // Letters guessed so far, in order.
	Phase        Phase    `json:"phase"`         // Current lifecycle stage.
	WrongGuesses int      `json:"wrong_guesses"` // Guesses not in the word.
}

// Won reports whether every letter of the word was guessed.
func (s State) Won() bool {
	return s.Phase == PhaseFinished && s.WrongGuesses < MaxWrongGuesses
}

// Guess is a single letter guess.
type Guess struct {
	Letter string `json:"letter"`
}

func (g Guess) String() string { return "guess " + g.Letter }

func mask(word string, guesses []string) string {
	var b strings.Builder
	for _, r := range word {
		if contains(guesses, string(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
