package sheet

import (
	"context"
	"sync"
)

// MemoryValues keeps tabs in process. It mimics the read shape of the
// spreadsheet API: trailing empty cells and trailing empty rows are dropped.
type MemoryValues struct {
	mu   sync.RWMutex
	tabs map[string][][]string
}

func NewMemoryValues() *MemoryValues {
	return &MemoryValues{tabs: make(map[string][][]string)}
}

// Seed replaces the content of a tab, starting at row 1.
func (m *MemoryValues) Seed(tab string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	m.tabs[tab] = cp
}

func (m *MemoryValues) Get(_ context.Context, rng string) ([][]string, error) {
	r, err := parseRange(rng)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data := m.tabs[r.tab]

	last := len(data)
	if r.rowEnd > 0 && r.rowEnd < last {
		last = r.rowEnd
	}

	out := make([][]string, 0)
	for i := r.rowStart - 1; i < last; i++ {
		out = append(out, trimCells(sliceColumns(data[i], r.colStart, r.colEnd)))
	}

	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}

	return out, nil
}

func (m *MemoryValues) Update(_ context.Context, rng string, rows [][]string) error {
	r, err := parseRange(rng)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.write(r.tab, r.rowStart-1, r.colStart-1, rows)
	return nil
}

func (m *MemoryValues) Append(_ context.Context, rng string, rows [][]string) error {
	r, err := parseRange(rng)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data := m.tabs[r.tab]
	next := 0
	for i := len(data) - 1; i >= 0; i-- {
		if len(trimCells(data[i])) > 0 {
			next = i + 1
			break
		}
	}

	m.write(r.tab, next, r.colStart-1, rows)
	return nil
}

func (m *MemoryValues) write(tab string, row, col int, rows [][]string) {
	data := m.tabs[tab]
	for len(data) < row+len(rows) {
		data = append(data, nil)
	}

	for i, values := range rows {
		target := data[row+i]
		for len(target) < col+len(values) {
			target = append(target, "")
		}
		copy(target[col:], values)
		data[row+i] = target
	}

	m.tabs[tab] = data
}

func sliceColumns(row []string, start, end int) []string {
	if start-1 >= len(row) {
		return nil
	}
	if end == 0 || end > len(row) {
		end = len(row)
	}
	return append([]string(nil), row[start-1:end]...)
}

func trimCells(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}
