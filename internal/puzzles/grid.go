// Package puzzles reads and writes puzzle grids as plain text: one
// character per cell for grids whose value count fits the alphabet, or
// comma-separated decimal values for the largest orders. It is the only
// place the solver's cell values meet characters.
package puzzles

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"largesudoku/pkg/constants"
)

// Grid is a parsed puzzle: Cells holds one value per cell in row-major
// order, 0 for unknown.
type Grid struct {
	Order int
	N     int
	Cells []int
}

var ErrParse = errors.New("invalid puzzle")

// valueOf maps an input character to a cell value, 0 for the empty
// markers, -1 for characters outside the alphabet.
func valueOf(ch rune) int {
	if ch == constants.EmptyDot || ch == constants.EmptyZero {
		return 0
	}
	if i := strings.IndexRune(constants.Alphabet, ch); i >= 0 {
		return i + 1
	}
	return -1
}

// ParseFile reads and parses a puzzle file.
func ParseFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	g, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return g, nil
}

// Parse parses a textual grid. Rows are lines; blank lines are skipped;
// whitespace within a row is ignored. A row containing a comma is parsed
// as comma-separated decimal values instead of single characters. The grid
// order is inferred from the row count, which must be a perfect square and
// match every row's length.
func Parse(text string) (*Grid, error) {
	var rows [][]int
	for ln, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln+1)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrParse, "empty input")
	}

	n := len(rows)
	order := isqrt(n)
	if order*order != n {
		return nil, errors.Wrapf(ErrParse, "row count %d is not a perfect square", n)
	}
	if order > constants.MaxOrder {
		return nil, errors.Wrapf(ErrParse, "order %d exceeds maximum %d", order, constants.MaxOrder)
	}

	cells := make([]int, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.Wrapf(ErrParse, "row %d has %d cells, want %d", i+1, len(row), n)
		}
		for j, v := range row {
			if v > n {
				return nil, errors.Wrapf(ErrParse, "row %d cell %d: value %d exceeds %d", i+1, j+1, v, n)
			}
			cells = append(cells, v)
		}
	}
	return &Grid{Order: order, N: n, Cells: cells}, nil
}

func parseRow(line string) ([]int, error) {
	if strings.Contains(line, ",") {
		var row []int
		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if field == "" || field == "." {
				row = append(row, 0)
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 {
				return nil, errors.Wrapf(ErrParse, "bad value %q", field)
			}
			row = append(row, v)
		}
		return row, nil
	}
	var row []int
	for _, ch := range line {
		if ch == ' ' || ch == '\t' {
			continue
		}
		v := valueOf(ch)
		if v < 0 {
			return nil, errors.Wrapf(ErrParse, "bad character %q", ch)
		}
		row = append(row, v)
	}
	return row, nil
}

// Format renders a grid using the same conventions Parse accepts: the
// character alphabet when it covers n, comma-separated decimals otherwise.
// Unknown cells render as '.' (or 0 in CSV mode).
func Format(n int, cells []int) string {
	var b strings.Builder
	csv := n > len(constants.Alphabet)
	for r := 0; r < len(cells)/n; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < n; c++ {
			v := cells[r*n+c]
			if csv {
				if c > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.Itoa(v))
			} else {
				if v == 0 {
					b.WriteByte(constants.EmptyDot)
				} else {
					b.WriteByte(constants.Alphabet[v-1])
				}
			}
		}
	}
	return b.String()
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
