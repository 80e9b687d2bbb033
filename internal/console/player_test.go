package console_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/krishanu7/turnbased-games/internal/battleship"
	"github.com/krishanu7/turnbased-games/internal/console"
	"github.com/krishanu7/turnbased-games/internal/game"
)

type scriptReader struct {
	lines []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newPlayer(out io.Writer, lines ...string) *console.Player {
	return console.NewPlayer(&scriptReader{lines: lines}, out, zerolog.Nop())
}

func TestPlayer_PlaceShip(t *testing.T) {
	g := battleship.New()
	view, _ := g.PlayerView(0)

	var out strings.Builder
	p := newPlayer(&out, "", "help", "J10 h", "c7 v")
	a, ok := p.SelectAction(view, g.LegalActions())
	if !ok {
		t.Fatalf("expected an action, output:\n%s", out.String())
	}
	if want, have := "C7 D7", strings.Join(cellTexts(a.Location), " "); want != have {
		t.Errorf("want=%q, have=%q", want, have)
	}
	if want, have := "Destroyer", a.ShipName; want != have {
		t.Errorf("want=%q, have=%q", want, have)
	}
	if err := g.ApplyAction(a); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{"place your Destroyer (2 cells)", "commands:", "does not fit"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestPlayer_Shoot(t *testing.T) {
	g := runningGame(t)
	view, _ := g.PlayerView(0)

	var out strings.Builder
	p := newPlayer(&out, "A1 h", "K1", "b3")
	a, ok := p.SelectAction(view, g.LegalActions())
	if !ok {
		t.Fatalf("expected an action, output:\n%s", out.String())
	}
	if want, have := battleship.Shoot(battleship.Coordinate{Row: 1, Col: 2}).String(), a.String(); want != have {
		t.Errorf("want=%q, have=%q", want, have)
	}
	if !strings.Contains(out.String(), "your shot") {
		t.Errorf("missing shot prompt in:\n%s", out.String())
	}
}

func TestPlayer_Quit(t *testing.T) {
	g := battleship.New()
	view, _ := g.PlayerView(0)

	for _, lines := range [][]string{{"quit"}, {"exit"}, {"bogus"}, nil} {
		p := newPlayer(io.Discard, lines...)
		if _, ok := p.SelectAction(view, g.LegalActions()); ok {
			t.Errorf("input %v: expected no action", lines)
		}
	}
	if _, ok := newPlayer(io.Discard, "A1 h").SelectAction(view, nil); ok {
		t.Error("expected no action without legal actions")
	}
}

func TestPlayer_Auto(t *testing.T) {
	g := battleship.New()
	view, _ := g.PlayerView(0)
	actions := g.LegalActions()

	var out strings.Builder
	p := newPlayer(&out, "auto", "auto")
	if _, ok := p.SelectAction(view, actions); ok {
		t.Fatal("expected no action while auto is unset")
	}
	if !strings.Contains(out.String(), "auto is not available") {
		t.Errorf("missing notice in:\n%s", out.String())
	}

	p = newPlayer(io.Discard, "auto")
	p.Auto = game.PlayerFunc[battleship.GameState, battleship.Action](
		func(_ battleship.GameState, actions []battleship.Action) (battleship.Action, bool) {
			return actions[len(actions)-1], true
		})
	a, ok := p.SelectAction(view, actions)
	if !ok {
		t.Fatal("expected an action")
	}
	if want, have := actions[len(actions)-1].String(), a.String(); want != have {
		t.Errorf("want=%q, have=%q", want, have)
	}
}

func TestParseCommand(t *testing.T) {
	g := battleship.New()
	mustApply(t, g, battleship.PlaceShip("", line(t, "A1", 2, battleship.Horizontal)))
	mustApply(t, g, battleship.PlaceShip("", line(t, "A1", 2, battleship.Horizontal)))
	setup := g.LegalActions()

	a, err := console.ParseCommand("a3 vertical", setup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, have := "A3 B3 C3", strings.Join(cellTexts(a.Location), " "); want != have {
		t.Errorf("want=%q, have=%q", want, have)
	}

	tests := []struct {
		in   string
		want error
	}{
		{"A1 h", console.ErrIllegalMove},
		{"B2 x", console.ErrUnknownCommand},
		{"B2", console.ErrUnknownCommand},
		{"I1 v", console.ErrIllegalMove},
		{"Z1 h", battleship.ErrMalformedCoordinate},
	}
	for _, tt := range tests {
		if _, err := console.ParseCommand(tt.in, setup); !errors.Is(err, tt.want) {
			t.Errorf("ParseCommand(%q): want %v, have %v", tt.in, tt.want, err)
		}
	}

	running := runningGame(t)
	mustApply(t, running, battleship.Shoot(battleship.Coordinate{Row: 9, Col: 9}))
	mustApply(t, running, battleship.Shoot(battleship.Coordinate{Row: 0, Col: 0}))
	shots := running.LegalActions()
	if _, err := console.ParseCommand("J10", shots); !errors.Is(err, console.ErrIllegalMove) {
		t.Errorf("repeated shot: want ErrIllegalMove, have %v", err)
	}
	if _, err := console.ParseCommand("J9 J8", shots); !errors.Is(err, console.ErrUnknownCommand) {
		t.Errorf("two cells: want ErrUnknownCommand, have %v", err)
	}
	if _, err := console.ParseCommand("J9", nil); !errors.Is(err, console.ErrIllegalMove) {
		t.Errorf("no actions: want ErrIllegalMove, have %v", err)
	}
}

// runningGame places both fleets in rows A to E, one ship per row.
func runningGame(t *testing.T) *battleship.Game {
	t.Helper()
	g := battleship.New()
	for i, entry := range battleship.Fleet() {
		start := battleship.FormatCoordinate(i, 0)
		for range 2 {
			mustApply(t, g, battleship.PlaceShip("", line(t, start, entry.Length, battleship.Horizontal)))
		}
	}
	if g.Phase() != battleship.PhaseRunning {
		t.Fatalf("expected running phase, have %s", g.Phase())
	}
	return g
}

func line(t *testing.T, start string, length int, o battleship.Orientation) []battleship.Coordinate {
	t.Helper()
	c, err := battleship.ParseCoordinate(start)
	if err != nil {
		t.Fatalf("ParseCoordinate(%q): %v", start, err)
	}
	return battleship.GenerateLine(c, length, o)
}

func mustApply(t *testing.T, g *battleship.Game, a battleship.Action) {
	t.Helper()
	if err := g.ApplyAction(a); err != nil {
		t.Fatalf("ApplyAction(%s): %v", a, err)
	}
}

func cellTexts(cells []battleship.Coordinate) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}
