package battleship

import (
	"fmt"
)

type ShipType string

const (
	Carrier    ShipType = "Carrier"
	Battleship ShipType = "Battleship"
	Cruiser    ShipType = "Cruiser"
	Submarine  ShipType = "Submarine"
	Destroyer  ShipType = "Destroyer"
)

type FleetEntry struct {
	Type   ShipType
	Length int
}

var fleet = []FleetEntry{
	{Destroyer, 2},
	{Submarine, 3},
	{Cruiser, 3},
	{Battleship, 4},
	{Carrier, 5},
}

// FleetSize is the number of ships each player places.
const FleetSize = 5

// Fleet returns the placement order every player follows.
func Fleet() []FleetEntry {
	out := make([]FleetEntry, len(fleet))
	copy(out, fleet)
	return out
}

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	if p < PhaseSetup || p > PhaseFinished {
		return nil, fmt.Errorf("unknown phase: %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseSetup, PhaseRunning, PhaseFinished} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase: %q", text)
}

// Ship is a placed ship. Location and Hits are nil in an opponent's view.
type Ship struct {
	Name     string       `json:"name"`
	Length   int          `json:"length"`
	Location []Coordinate `json:"location,omitempty"`
	Hits     []Coordinate `json:"hits,omitempty"`
}

func (s Ship) Sunk() bool {
	return len(s.Hits) == s.Length
}

// RegisterHit records a hit if the ship occupies c.
func (s *Ship) RegisterHit(c Coordinate) bool {
	if !containsCoordinate(s.Location, c) || containsCoordinate(s.Hits, c) {
		return false
	}
	s.Hits = append(s.Hits, c)
	return true
}

func (s Ship) clone() Ship {
	s.Location = cloneCoordinates(s.Location)
	s.Hits = cloneCoordinates(s.Hits)
	return s
}

type PlayerState struct {
	Name            string       `json:"name"`
	Ships           []Ship       `json:"ships"`
	Shots           []Coordinate `json:"shots"`
	SuccessfulShots []Coordinate `json:"successful_shots"`
}

func (p PlayerState) AllShipsPlaced() bool {
	return len(p.Ships) == FleetSize
}

// AllShipsSunk is true for every placed ship being sunk, including the
// vacuous case of no ships.
func (p PlayerState) AllShipsSunk() bool {
	for _, ship := range p.Ships {
		if !ship.Sunk() {
			return false
		}
	}
	return true
}

func (p PlayerState) HasShot(c Coordinate) bool {
	return containsCoordinate(p.Shots, c)
}

// occupied reports whether any placed ship covers c.
func (p PlayerState) occupied(c Coordinate) bool {
	for _, ship := range p.Ships {
		if containsCoordinate(ship.Location, c) {
			return true
		}
	}
	return false
}

func (p PlayerState) clone() PlayerState {
	out := PlayerState{
		Name:            p.Name,
		Shots:           cloneCoordinates(p.Shots),
		SuccessfulShots: cloneCoordinates(p.SuccessfulShots),
	}
	if p.Ships != nil {
		out.Ships = make([]Ship, len(p.Ships))
		for i, ship := range p.Ships {
			out.Ships[i] = ship.clone()
		}
	}
	return out
}

// masked hides ship geometry but keeps the public shot record.
func (p PlayerState) masked() PlayerState {
	out := PlayerState{
		Name:            p.Name,
		Shots:           cloneCoordinates(p.Shots),
		SuccessfulShots: cloneCoordinates(p.SuccessfulShots),
	}
	if p.Ships != nil {
		out.Ships = make([]Ship, len(p.Ships))
		for i, ship := range p.Ships {
			out.Ships[i] = Ship{Name: ship.Name, Length: ship.Length}
		}
	}
	return out
}

type GameState struct {
	ActivePlayer int            `json:"active_player"`
	Phase        Phase          `json:"phase"`
	Winner       *int           `json:"winner"`
	Players      [2]PlayerState `json:"players"`
}

func (s GameState) Clone() GameState {
	out := GameState{
		ActivePlayer: s.ActivePlayer,
		Phase:        s.Phase,
	}
	if s.Winner != nil {
		w := *s.Winner
		out.Winner = &w
	}
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	return out
}

type ActionType int

const (
	ActionPlaceShip ActionType = iota
	ActionShoot
)

func (t ActionType) String() string {
	switch t {
	case ActionPlaceShip:
		return "place_ship"
	case ActionShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// Action is either a ship placement (ShipName and the full Location) or a
// shot (a single Location cell, no ShipName).
type Action struct {
	Type     ActionType   `json:"type"`
	ShipName string       `json:"ship_name,omitempty"`
	Location []Coordinate `json:"location"`
}

func PlaceShip(name string, cells []Coordinate) Action {
	return Action{Type: ActionPlaceShip, ShipName: name, Location: cloneCoordinates(cells)}
}

func Shoot(c Coordinate) Action {
	return Action{Type: ActionShoot, Location: []Coordinate{c}}
}

func (a Action) String() string {
	switch a.Type {
	case ActionPlaceShip:
		if len(a.Location) == 0 {
			return fmt.Sprintf("place %s", a.ShipName)
		}
		return fmt.Sprintf("place %s %s-%s", a.ShipName, a.Location[0], a.Location[len(a.Location)-1])
	case ActionShoot:
		if len(a.Location) == 0 {
			return "shoot"
		}
		return fmt.Sprintf("shoot %s", a.Location[0])
	default:
		return "unknown action"
	}
}

func cloneCoordinates(cells []Coordinate) []Coordinate {
	if cells == nil {
		return nil
	}
	out := make([]Coordinate, len(cells))
	copy(out, cells)
	return out
}
