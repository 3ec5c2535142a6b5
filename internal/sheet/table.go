package sheet

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// Row is a data row. Number is the 1-based sheet row (the header is row 1).
type Row struct {
	Number int
	Cells  []string
}

func (r Row) Get(i int) string {
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

// Blank reports whether every cell is empty, which is how removed rows look.
func (r Row) Blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Table is a tab whose first row holds the column headers.
type Table struct {
	Name    string
	Headers []string

	values      Values
	headerReady atomic.Bool
}

func NewTable(values Values, name string, headers ...string) *Table {
	return &Table{
		Name:    name,
		Headers: headers,
		values:  values,
	}
}

func (t *Table) lastColumn() string {
	return ColumnLetter(len(t.Headers))
}

// EnsureHeader writes the headers when row 1 is empty.
func (t *Table) EnsureHeader(ctx context.Context) error {
	if t.headerReady.Load() {
		return nil
	}

	rows, err := t.values.Get(ctx, fmt.Sprintf("%s!1:1", t.Name))
	if err != nil {
		return err
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		rng := fmt.Sprintf("%s!A1:%s1", t.Name, t.lastColumn())
		if err = t.values.Update(ctx, rng, [][]string{t.Headers}); err != nil {
			return err
		}
	}

	t.headerReady.Store(true)
	return nil
}

// Rows returns every data row, including blank ones, padded to the header width.
func (t *Table) Rows(ctx context.Context) ([]Row, error) {
	if err := t.EnsureHeader(ctx); err != nil {
		return nil, err
	}

	values, err := t.values.Get(ctx, fmt.Sprintf("%s!A2:%s", t.Name, t.lastColumn()))
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(values))
	for i, v := range values {
		cells := make([]string, len(t.Headers))
		copy(cells, v)
		rows = append(rows, Row{Number: i + 2, Cells: cells})
	}
	return rows, nil
}

func (t *Table) Append(ctx context.Context, cells ...string) error {
	if err := t.EnsureHeader(ctx); err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!A:%s", t.Name, t.lastColumn())
	return t.values.Append(ctx, rng, [][]string{cells})
}

func (t *Table) UpdateRow(ctx context.Context, number int, cells ...string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", t.Name, number, t.lastColumn(), number)
	return t.values.Update(ctx, rng, [][]string{cells})
}

func (t *Table) BlankRow(ctx context.Context, number int) error {
	return t.UpdateRow(ctx, number, make([]string, len(t.Headers))...)
}
