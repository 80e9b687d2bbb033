package battleship

import (
	"errors"
	"fmt"
	"strconv"
)

const BoardSize = 10

var ErrMalformedCoordinate = errors.New("malformed coordinate")

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Coordinate is one board cell. Row and Col are zero based; the text form is
// the row letter followed by the one based column, e.g. "C7".
type Coordinate struct {
	Row int
	Col int
}

func (c Coordinate) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

func (c Coordinate) String() string {
	return FormatCoordinate(c.Row, c.Col)
}

func (c Coordinate) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: row=%d col=%d", ErrMalformedCoordinate, c.Row, c.Col)
	}
	return []byte(c.String()), nil
}

func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// converts "A1" to row (0-9) and col (0-9).
func ParseCoordinate(coord string) (Coordinate, error) {
	if len(coord) < 2 || len(coord) > 3 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, coord)
	}
	rowChar := coord[0]
	colStr := coord[1:]

	if rowChar < 'A' || rowChar > 'A'+BoardSize-1 {
		return Coordinate{}, fmt.Errorf("%w: invalid row %q", ErrMalformedCoordinate, rowChar)
	}
	// "07" or "+7" would not print back to the same text
	if colStr[0] < '1' || colStr[0] > '9' {
		return Coordinate{}, fmt.Errorf("%w: invalid column %q", ErrMalformedCoordinate, colStr)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: invalid column %q", ErrMalformedCoordinate, colStr)
	}
	if col < 1 || col > BoardSize {
		return Coordinate{}, fmt.Errorf("%w: column out of bounds: %d", ErrMalformedCoordinate, col)
	}
	return Coordinate{Row: int(rowChar - 'A'), Col: col - 1}, nil
}

// converts row (0-9) and col (0-9) to "A1"
func FormatCoordinate(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}

// GenerateLine returns the length cells starting at start along o, or nil if
// the line would leave the board. Horizontal grows the column, vertical grows
// the row towards J.
func GenerateLine(start Coordinate, length int, o Orientation) []Coordinate {
	if !start.Valid() || length < 1 {
		return nil
	}
	var dr, dc int
	switch o {
	case Horizontal:
		dc = 1
	case Vertical:
		dr = 1
	default:
		return nil
	}
	end := Coordinate{Row: start.Row + dr*(length-1), Col: start.Col + dc*(length-1)}
	if !end.Valid() {
		return nil
	}
	cells := make([]Coordinate, length)
	for i := range cells {
		cells[i] = Coordinate{Row: start.Row + dr*i, Col: start.Col + dc*i}
	}
	return cells
}

// AllCoordinates lists the board row by row, A1..A10, B1..J10.
func AllCoordinates() []Coordinate {
	cells := make([]Coordinate, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cells = append(cells, Coordinate{Row: row, Col: col})
		}
	}
	return cells
}

// lineOrientation reports how cells run if they form a contiguous straight
// line in increasing order. A single cell counts as horizontal.
func lineOrientation(cells []Coordinate) (Orientation, bool) {
	if len(cells) == 0 {
		return 0, false
	}
	if len(cells) == 1 {
		return Horizontal, cells[0].Valid()
	}
	for _, o := range []Orientation{Horizontal, Vertical} {
		line := GenerateLine(cells[0], len(cells), o)
		if line != nil && sameCells(line, cells) {
			return o, true
		}
	}
	return 0, false
}

func sameCells(a, b []Coordinate) bool {
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

func containsCoordinate(cells []Coordinate, c Coordinate) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
