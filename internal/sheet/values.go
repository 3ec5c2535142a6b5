// Package sheet treats tabs of a spreadsheet as tables of string rows.
package sheet

import (
	"context"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Values is the subset of the spreadsheet values API the tables need.
// Ranges use A1 notation including the tab name, e.g. "Lists!A2:E".
type Values interface {
	Get(ctx context.Context, rng string) ([][]string, error)
	Update(ctx context.Context, rng string, rows [][]string) error
	Append(ctx context.Context, rng string, rows [][]string) error
}

var ErrInvalidRange = errors.New("invalid range")

// ColumnLetter converts a 1-based column index to its A1 letters (1 -> A, 27 -> AA).
func ColumnLetter(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// ColumnIndex converts A1 column letters to a 1-based index.
func ColumnIndex(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		n = n*26 + int(r-'A'+1)
	}
	return n
}

// cellRange is a parsed A1 range. Zero bounds are open ended.
type cellRange struct {
	tab                string
	colStart, rowStart int
	colEnd, rowEnd     int
}

func parseRange(rng string) (cellRange, error) {
	tab, ref, ok := strings.Cut(rng, "!")
	if !ok || tab == "" || ref == "" {
		return cellRange{}, errors.Wrap(ErrInvalidRange, rng)
	}

	start, end, hasEnd := strings.Cut(ref, ":")
	if !hasEnd {
		end = start
	}

	c1, r1, err := parseCell(start)
	if err != nil {
		return cellRange{}, errors.Wrap(err, rng)
	}
	c2, r2, err := parseCell(end)
	if err != nil {
		return cellRange{}, errors.Wrap(err, rng)
	}

	if c1 == 0 {
		c1 = 1
	}
	if r1 == 0 {
		r1 = 1
	}

	return cellRange{tab: tab, colStart: c1, rowStart: r1, colEnd: c2, rowEnd: r2}, nil
}

func parseCell(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && (ref[i] >= 'A' && ref[i] <= 'Z' || ref[i] >= 'a' && ref[i] <= 'z') {
		i++
	}
	if i > 0 {
		col = ColumnIndex(ref[:i])
	}
	if i < len(ref) {
		row, err = strconv.Atoi(ref[i:])
		if err != nil || row < 1 {
			return 0, 0, ErrInvalidRange
		}
	}
	if col == 0 && row == 0 {
		return 0, 0, ErrInvalidRange
	}
	return col, row, nil
}
