// Package game holds the contract shared by every turn based game in this
// repository and the pieces that only rely on that contract.
package game

// Game is a turn based game. S is the game's state type and A its action
// type; each variant owns both.
type Game[S, A any] interface {
	// State returns the full, unmasked state.
	State() S
	// SetState replaces the game state wholesale.
	SetState(state S) error
	// LegalActions lists the actions open to the active player. An empty
	// list means nobody can act.
	LegalActions() []A
	// ApplyAction applies one action. A rejected action leaves the state
	// unchanged.
	ApplyAction(action A) error
	// PlayerView returns the state as player idx is allowed to see it.
	PlayerView(idx int) (S, error)
	// ActivePlayer is the index of the player to move.
	ActivePlayer() int
}

// Player picks one of the offered actions given its view of the state, or
// reports false to pass.
type Player[S, A any] interface {
	SelectAction(view S, actions []A) (A, bool)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc[S, A any] func(view S, actions []A) (A, bool)

func (f PlayerFunc[S, A]) SelectAction(view S, actions []A) (A, bool) {
	return f(view, actions)
}
