package battleship

import (
	"fmt"
	"io"
	"strings"
)

const (
	cellUnknown = '.'
	cellShip    = 'S'
	cellHit     = 'X'
	cellMiss    = 'o'
)

// Render draws the fleet and target boards of player idx from s, which may be
// a full state or that player's view.
func Render(w io.Writer, s GameState, idx int) error {
	if idx != 0 && idx != 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, idx)
	}
	me, them := s.Players[idx], s.Players[1-idx]

	var own, target [BoardSize][BoardSize]rune
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			own[r][c] = cellUnknown
			target[r][c] = cellUnknown
		}
	}
	for _, ship := range me.Ships {
		for _, c := range ship.Location {
			own[c.Row][c.Col] = cellShip
		}
	}
	for _, c := range them.Shots {
		if !c.Valid() {
			continue
		}
		if own[c.Row][c.Col] == cellShip {
			own[c.Row][c.Col] = cellHit
		} else {
			own[c.Row][c.Col] = cellMiss
		}
	}
	for _, c := range me.Shots {
		if !c.Valid() {
			continue
		}
		target[c.Row][c.Col] = cellMiss
	}
	for _, c := range me.SuccessfulShots {
		if !c.Valid() {
			continue
		}
		target[c.Row][c.Col] = cellHit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "phase: %s  turn: %s", s.Phase, s.Players[s.ActivePlayer].Name)
	if s.Winner != nil {
		fmt.Fprintf(&b, "  winner: %s", s.Players[*s.Winner].Name)
	}
	b.WriteString("\n\n")

	header := "   "
	for c := 1; c <= BoardSize; c++ {
		header += fmt.Sprintf("%-3d", c)
	}
	fmt.Fprintf(&b, "%-33s   %s\n", me.Name+" fleet", them.Name+" waters")
	fmt.Fprintf(&b, "%-33s   %s\n", header, header)
	for r := 0; r < BoardSize; r++ {
		fmt.Fprintf(&b, "%-33s   %s\n", boardRow(r, own[r]), boardRow(r, target[r]))
	}

	fmt.Fprintf(&b, "\nships afloat: %d/%d  enemy ships sunk: %d/%d\n",
		countAfloat(me), len(me.Ships), len(them.Ships)-countAfloat(them), len(them.Ships))

	_, err := io.WriteString(w, b.String())
	return err
}

func boardRow(r int, cells [BoardSize]rune) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%c  ", 'A'+r)
	for _, cell := range cells {
		b.WriteRune(cell)
		b.WriteString("  ")
	}
	return strings.TrimRight(b.String(), " ")
}

// countAfloat treats hidden ships (no location in a view) as afloat.
func countAfloat(p PlayerState) int {
	n := 0
	for _, ship := range p.Ships {
		if ship.Location == nil || !ship.Sunk() {
			n++
		}
	}
	return n
}
