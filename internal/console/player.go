// Package console lets a person play battleship from a terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/krishanu7/turnbased-games/internal/battleship"
	"github.com/krishanu7/turnbased-games/internal/game"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrIllegalMove    = errors.New("illegal move")
)

const usage = `commands:
  <cell> <h|v>   place the next ship from cell, horizontally or vertically (setup)
  <cell>         shoot at cell, e.g. C7 (running)
  auto           let the computer pick this move
  help           show this text
  quit           leave the game
`

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

// Player asks a person for every move. The board of the seat being asked is
// drawn before each prompt.
type Player struct {
	in  LineReader
	out io.Writer
	log zerolog.Logger

	// Auto answers the "auto" command; nil disables it.
	Auto game.Player[battleship.GameState, battleship.Action]
}

func NewPlayer(in LineReader, out io.Writer, log zerolog.Logger) *Player {
	return &Player{in: in, out: out, log: log}
}

func (p *Player) SelectAction(view battleship.GameState, actions []battleship.Action) (battleship.Action, bool) {
	if len(actions) == 0 {
		return battleship.Action{}, false
	}
	if err := battleship.Render(p.out, view, view.ActivePlayer); err != nil {
		p.log.Warn().Err(err).Msg("render board")
	}
	p.hint(actions)

	for {
		line, err := p.in.Readline()
		if err != nil {
			p.log.Debug().Err(err).Msg("input closed")
			return battleship.Action{}, false
		}
		cmd := strings.TrimSpace(line)
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "quit", "exit":
			return battleship.Action{}, false
		case "help":
			fmt.Fprint(p.out, usage)
			continue
		case "auto":
			if p.Auto == nil {
				fmt.Fprintln(p.out, "auto is not available")
				continue
			}
			return p.Auto.SelectAction(view, actions)
		}

		action, err := ParseCommand(cmd, actions)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return action, true
	}
}

func (p *Player) hint(actions []battleship.Action) {
	first := actions[0]
	if first.Type == battleship.ActionPlaceShip {
		fmt.Fprintf(p.out, "place your %s (%d cells): <cell> <h|v>\n", first.ShipName, len(first.Location))
		return
	}
	fmt.Fprintln(p.out, "your shot: <cell>")
}

// ParseCommand resolves a typed command to one of the legal actions. All
// legal actions of a turn share a type, and placements share a length.
func ParseCommand(input string, actions []battleship.Action) (battleship.Action, error) {
	if len(actions) == 0 {
		return battleship.Action{}, fmt.Errorf("%w: nothing to do", ErrIllegalMove)
	}
	fields := strings.Fields(strings.ToUpper(input))

	switch actions[0].Type {
	case battleship.ActionPlaceShip:
		if len(fields) != 2 {
			return battleship.Action{}, fmt.Errorf("%w: want <cell> <h|v>, got %q", ErrUnknownCommand, input)
		}
		start, err := battleship.ParseCoordinate(fields[0])
		if err != nil {
			return battleship.Action{}, err
		}
		var o battleship.Orientation
		switch fields[1] {
		case "H", "HORIZONTAL":
			o = battleship.Horizontal
		case "V", "VERTICAL":
			o = battleship.Vertical
		default:
			return battleship.Action{}, fmt.Errorf("%w: orientation must be h or v, got %q", ErrUnknownCommand, fields[1])
		}
		line := battleship.GenerateLine(start, len(actions[0].Location), o)
		if line == nil {
			return battleship.Action{}, fmt.Errorf("%w: %s from %s does not fit on the board", ErrIllegalMove, actions[0].ShipName, start)
		}
		for _, a := range actions {
			if sameLocation(a.Location, line) {
				return a, nil
			}
		}
		return battleship.Action{}, fmt.Errorf("%w: %s from %s overlaps one of your ships", ErrIllegalMove, actions[0].ShipName, start)

	case battleship.ActionShoot:
		if len(fields) != 1 {
			return battleship.Action{}, fmt.Errorf("%w: want <cell>, got %q", ErrUnknownCommand, input)
		}
		target, err := battleship.ParseCoordinate(fields[0])
		if err != nil {
			return battleship.Action{}, err
		}
		for _, a := range actions {
			if a.Location[0] == target {
				return a, nil
			}
		}
		return battleship.Action{}, fmt.Errorf("%w: already shot at %s", ErrIllegalMove, target)

	default:
		return battleship.Action{}, fmt.Errorf("%w: unsupported action %s", ErrIllegalMove, actions[0].Type)
	}
}

func sameLocation(a, b []battleship.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
