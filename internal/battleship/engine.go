package battleship

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidPlayer = errors.New("invalid player index")
)

// Game is the two player battleship state machine. It owns both fleets; all
// mutation goes through ApplyAction or SetState. A Game is not safe for
// concurrent use.
type Game struct {
	state GameState
	log   zerolog.Logger
}

type Option func(*Game)

func WithNames(first, second string) Option {
	return func(g *Game) {
		g.state.Players[0].Name = first
		g.state.Players[1].Name = second
	}
}

// WithLogger makes the engine report placements and shots at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}

func New(opts ...Option) *Game {
	g := &Game{
		state: GameState{
			Phase: PhaseSetup,
			Players: [2]PlayerState{
				{Name: "player-1", Ships: []Ship{}, Shots: []Coordinate{}, SuccessfulShots: []Coordinate{}},
				{Name: "player-2", Ships: []Ship{}, Shots: []Coordinate{}, SuccessfulShots: []Coordinate{}},
			},
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns a snapshot of the full, unmasked state.
func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) ActivePlayer() int {
	return g.state.ActivePlayer
}

func (g *Game) Phase() Phase {
	return g.state.Phase
}

// SetState replaces the engine state with a copy of s after checking that it
// is internally consistent.
func (g *Game) SetState(s GameState) error {
	if err := validateState(s); err != nil {
		return err
	}
	g.state = s.Clone()
	return nil
}

// PlayerView returns the state as seen by player idx: the opponent's ship
// geometry is withheld, shot history stays public.
func (g *Game) PlayerView(idx int) (GameState, error) {
	if idx != 0 && idx != 1 {
		return GameState{}, fmt.Errorf("%w: %d", ErrInvalidPlayer, idx)
	}
	view := g.state.Clone()
	view.Players[1-idx] = g.state.Players[1-idx].masked()
	return view, nil
}

// LegalActions lists every action the active player may take. Placements are
// enumerated row A to J, column 1 to 10, horizontal before vertical.
func (g *Game) LegalActions() []Action {
	active := g.state.Players[g.state.ActivePlayer]

	switch g.state.Phase {
	case PhaseSetup:
		if len(active.Ships) >= FleetSize {
			return []Action{}
		}
		next := fleet[len(active.Ships)]
		actions := []Action{}
		for _, start := range AllCoordinates() {
			for _, o := range []Orientation{Horizontal, Vertical} {
				line := GenerateLine(start, next.Length, o)
				if line == nil || overlaps(active, line) {
					continue
				}
				actions = append(actions, Action{Type: ActionPlaceShip, ShipName: string(next.Type), Location: line})
			}
		}
		return actions

	case PhaseRunning:
		actions := make([]Action, 0, BoardSize*BoardSize-len(active.Shots))
		for _, c := range AllCoordinates() {
			if !active.HasShot(c) {
				actions = append(actions, Shoot(c))
			}
		}
		return actions

	default:
		return []Action{}
	}
}

// ApplyAction validates and applies one action for the active player, then
// hands the turn to the other player. A rejected action leaves the state
// untouched. The turn flips even when the action finishes the game.
func (g *Game) ApplyAction(a Action) error {
	var err error
	switch a.Type {
	case ActionPlaceShip:
		err = g.placeShip(a)
	case ActionShoot:
		err = g.shoot(a)
	default:
		err = fmt.Errorf("%w: unknown action type %d", ErrInvalidAction, int(a.Type))
	}
	if err != nil {
		return err
	}

	g.state.ActivePlayer = 1 - g.state.ActivePlayer
	return nil
}

func (g *Game) placeShip(a Action) error {
	if g.state.Phase != PhaseSetup {
		return fmt.Errorf("%w: cannot place ships in %s phase", ErrInvalidAction, g.state.Phase)
	}
	idx := g.state.ActivePlayer
	active := &g.state.Players[idx]
	if len(active.Ships) >= FleetSize {
		return fmt.Errorf("%w: %s has already placed all ships", ErrInvalidAction, active.Name)
	}

	next := fleet[len(active.Ships)]
	if len(a.Location) != next.Length {
		return fmt.Errorf("%w: %s needs %d cells, got %d", ErrInvalidAction, next.Type, next.Length, len(a.Location))
	}
	if _, ok := lineOrientation(a.Location); !ok {
		return fmt.Errorf("%w: %v is not a straight line on the board", ErrInvalidAction, a.Location)
	}
	for _, c := range a.Location {
		if active.occupied(c) {
			return fmt.Errorf("%w: overlap at %s", ErrInvalidAction, c)
		}
	}

	name := string(next.Type)
	if a.ShipName != "" && a.ShipName != name {
		return fmt.Errorf("%w: next ship is %s, not %s", ErrInvalidAction, name, a.ShipName)
	}
	active.Ships = append(active.Ships, Ship{
		Name:     name,
		Length:   len(a.Location),
		Location: cloneCoordinates(a.Location),
		Hits:     []Coordinate{},
	})
	g.log.Debug().Int("player", idx).Str("ship", name).Stringer("at", a).Msg("placed ship")

	if g.state.Players[0].AllShipsPlaced() && g.state.Players[1].AllShipsPlaced() {
		g.state.Phase = PhaseRunning
		g.log.Debug().Msg("all ships placed, game running")
	}
	return nil
}

func (g *Game) shoot(a Action) error {
	if g.state.Phase != PhaseRunning {
		return fmt.Errorf("%w: cannot shoot in %s phase", ErrInvalidAction, g.state.Phase)
	}
	if len(a.Location) != 1 || a.ShipName != "" {
		return fmt.Errorf("%w: a shot targets exactly one cell", ErrInvalidAction)
	}
	target := a.Location[0]
	if !target.Valid() {
		return fmt.Errorf("%w: %w: row=%d col=%d", ErrInvalidAction, ErrMalformedCoordinate, target.Row, target.Col)
	}

	idx := g.state.ActivePlayer
	active := &g.state.Players[idx]
	opponent := &g.state.Players[1-idx]
	if active.HasShot(target) {
		return fmt.Errorf("%w: %s already shot at %s", ErrInvalidAction, active.Name, target)
	}

	active.Shots = append(active.Shots, target)

	hit := false
	for i := range opponent.Ships {
		if opponent.Ships[i].RegisterHit(target) {
			active.SuccessfulShots = append(active.SuccessfulShots, target)
			hit = true
			g.log.Debug().Int("player", idx).Stringer("at", target).
				Str("ship", opponent.Ships[i].Name).Bool("sunk", opponent.Ships[i].Sunk()).Msg("hit")
			break
		}
	}
	if !hit {
		g.log.Debug().Int("player", idx).Stringer("at", target).Msg("miss")
	}

	if opponent.AllShipsSunk() {
		winner := idx
		g.state.Phase = PhaseFinished
		g.state.Winner = &winner
		g.log.Debug().Int("winner", winner).Msg("game over")
	}
	return nil
}

func overlaps(p PlayerState, cells []Coordinate) bool {
	for _, c := range cells {
		if p.occupied(c) {
			return true
		}
	}
	return false
}

// validateState checks s against the rules ApplyAction enforces, including
// the turn order from New.
func validateState(s GameState) error {
	if s.ActivePlayer != 0 && s.ActivePlayer != 1 {
		return fmt.Errorf("%w: active player %d", ErrInvalidState, s.ActivePlayer)
	}

	for i, p := range s.Players {
		if err := validatePlayer(p, s.Players[1-i]); err != nil {
			return fmt.Errorf("%w: player %d: %w", ErrInvalidState, i, err)
		}
	}

	// player 0 always moves first, so counts are level when it is to move
	p0, p1 := s.Players[0], s.Players[1]
	lead := 0
	if s.ActivePlayer == 1 {
		lead = 1
	}
	placed := p0.AllShipsPlaced() && p1.AllShipsPlaced()
	switch s.Phase {
	case PhaseSetup:
		if placed {
			return fmt.Errorf("%w: setup phase with both fleets placed", ErrInvalidState)
		}
		if s.Winner != nil {
			return fmt.Errorf("%w: winner set in setup phase", ErrInvalidState)
		}
		if len(p0.Ships) != len(p1.Ships)+lead {
			return fmt.Errorf("%w: %d and %d ships placed with player %d to move",
				ErrInvalidState, len(p0.Ships), len(p1.Ships), s.ActivePlayer)
		}
		if len(p0.Shots)+len(p1.Shots) > 0 {
			return fmt.Errorf("%w: shots fired in setup phase", ErrInvalidState)
		}
	case PhaseRunning:
		if !placed {
			return fmt.Errorf("%w: running phase with fleets still to place", ErrInvalidState)
		}
		if s.Winner != nil {
			return fmt.Errorf("%w: winner set in running phase", ErrInvalidState)
		}
		if p0.AllShipsSunk() || p1.AllShipsSunk() {
			return fmt.Errorf("%w: running phase with a fleet sunk", ErrInvalidState)
		}
	case PhaseFinished:
		if !placed {
			return fmt.Errorf("%w: finished phase with fleets still to place", ErrInvalidState)
		}
		if s.Winner == nil || (*s.Winner != 0 && *s.Winner != 1) {
			return fmt.Errorf("%w: finished phase needs a winner of 0 or 1", ErrInvalidState)
		}
		if !s.Players[1-*s.Winner].AllShipsSunk() {
			return fmt.Errorf("%w: player %d won but the opponent fleet is afloat", ErrInvalidState, *s.Winner)
		}
		if s.Players[*s.Winner].AllShipsSunk() {
			return fmt.Errorf("%w: both fleets sunk", ErrInvalidState)
		}
		// the winning shot hands the turn to the loser
		if s.ActivePlayer != 1-*s.Winner {
			return fmt.Errorf("%w: player %d to move after winning", ErrInvalidState, s.ActivePlayer)
		}
	default:
		return fmt.Errorf("%w: unknown phase %d", ErrInvalidState, int(s.Phase))
	}
	if s.Phase != PhaseSetup && len(p0.Shots) != len(p1.Shots)+lead {
		return fmt.Errorf("%w: %d and %d shots fired with player %d to move",
			ErrInvalidState, len(p0.Shots), len(p1.Shots), s.ActivePlayer)
	}
	return nil
}

// validatePlayer checks p's fleet against the placement rules and its shots
// against the opponent's fleet.
func validatePlayer(p, opponent PlayerState) error {
	if len(p.Ships) > FleetSize {
		return fmt.Errorf("%d ships", len(p.Ships))
	}
	var seen []Coordinate
	for j, ship := range p.Ships {
		want := fleet[j]
		if ship.Name != string(want.Type) || ship.Length != want.Length {
			return fmt.Errorf("ship %d is %s/%d, want %s/%d", j, ship.Name, ship.Length, want.Type, want.Length)
		}
		if len(ship.Location) != ship.Length {
			return fmt.Errorf("ship %s has length %d but %d cells", ship.Name, ship.Length, len(ship.Location))
		}
		if _, ok := lineOrientation(ship.Location); !ok {
			return fmt.Errorf("ship %s is not a straight line on the board", ship.Name)
		}
		for _, c := range ship.Location {
			if containsCoordinate(seen, c) {
				return fmt.Errorf("ship %s overlaps at %s", ship.Name, c)
			}
			seen = append(seen, c)
		}
		for k, c := range ship.Hits {
			if !containsCoordinate(ship.Location, c) {
				return fmt.Errorf("ship %s hit outside its location at %s", ship.Name, c)
			}
			if containsCoordinate(ship.Hits[:k], c) {
				return fmt.Errorf("ship %s hit twice at %s", ship.Name, c)
			}
			if !opponent.HasShot(c) {
				return fmt.Errorf("ship %s hit at %s without a shot", ship.Name, c)
			}
		}
	}

	for k, c := range p.Shots {
		if !c.Valid() {
			return fmt.Errorf("shot off the board at row=%d col=%d", c.Row, c.Col)
		}
		if containsCoordinate(p.Shots[:k], c) {
			return fmt.Errorf("shot twice at %s", c)
		}
		if opponent.occupied(c) != containsCoordinate(p.SuccessfulShots, c) {
			return fmt.Errorf("shot at %s recorded with the wrong outcome", c)
		}
	}
	for k, c := range p.SuccessfulShots {
		if !containsCoordinate(p.Shots, c) {
			return fmt.Errorf("successful shot %s was never fired", c)
		}
		if containsCoordinate(p.SuccessfulShots[:k], c) {
			return fmt.Errorf("successful shot %s recorded twice", c)
		}
	}
	return nil
}
