package sheet

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{5, "E"},
		{13, "M"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnLetter(tt.n))
			assert.Equal(t, tt.n, ColumnIndex(tt.want))
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		rng     string
		want    cellRange
		wantErr bool
	}{
		{
			name: "row only",
			rng:  "Users!1:1",
			want: cellRange{tab: "Users", colStart: 1, rowStart: 1, colEnd: 0, rowEnd: 1},
		},
		{
			name: "open ended rows",
			rng:  "Lists!A2:E",
			want: cellRange{tab: "Lists", colStart: 1, rowStart: 2, colEnd: 5, rowEnd: 0},
		},
		{
			name: "whole columns",
			rng:  "Database!A:M",
			want: cellRange{tab: "Database", colStart: 1, rowStart: 1, colEnd: 13, rowEnd: 0},
		},
		{
			name: "single row span",
			rng:  "ListItems!A7:D7",
			want: cellRange{tab: "ListItems", colStart: 1, rowStart: 7, colEnd: 4, rowEnd: 7},
		},
		{
			name:    "missing tab",
			rng:     "A1:B2",
			wantErr: true,
		},
		{
			name:    "garbage",
			rng:     "Tab!1A",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRange(tt.rng)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryValues()

	rows, err := m.Get(ctx, "Lists!1:1")
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, m.Update(ctx, "Lists!A1:C1", [][]string{{"id", "name", "isPublic"}}))
	require.NoError(t, m.Append(ctx, "Lists!A:C", [][]string{{"l1", "first", "TRUE"}}))
	require.NoError(t, m.Append(ctx, "Lists!A:C", [][]string{{"l2", "second", ""}}))

	rows, err = m.Get(ctx, "Lists!A2:C")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"l1", "first", "TRUE"}, {"l2", "second"}}, rows)

	require.NoError(t, m.Update(ctx, "Lists!A3:C3", [][]string{{"", "", ""}}))

	rows, err = m.Get(ctx, "Lists!A2:C")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"l1", "first", "TRUE"}}, rows, "trailing blank rows are dropped")

	require.NoError(t, m.Append(ctx, "Lists!A:C", [][]string{{"l3", "third", "FALSE"}}))

	rows, err = m.Get(ctx, "Lists!B2:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"first"}, {"third"}}, rows)
}

func TestTable(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryValues()
	table := NewTable(m, "ListItems", "id", "listId", "companyId", "createdAt")

	rows, err := table.Rows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	header, err := m.Get(ctx, "ListItems!1:1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "listId", "companyId", "createdAt"}}, header)

	require.NoError(t, table.Append(ctx, "i1", "l1", "7", "2025-01-01T00:00:00Z"))
	require.NoError(t, table.Append(ctx, "i2", "l1", "8", "2025-01-02T00:00:00Z"))
	require.NoError(t, table.Append(ctx, "i3", "l2", "7"))

	rows, err = table.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "8", rows[1].Get(2))
	assert.Len(t, rows[2].Cells, 4, "rows are padded to the header width")
	assert.Equal(t, "", rows[2].Get(3))

	require.NoError(t, table.BlankRow(ctx, 3))

	rows, err = table.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[1].Blank())
	assert.False(t, rows[0].Blank())
	assert.Equal(t, 4, rows[2].Number)
}

func TestTable_EnsureHeaderKeepsExisting(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryValues()
	m.Seed("Users", [][]string{{"id", "email", "name", "createdAt", "extra"}})

	table := NewTable(m, "Users", "id", "email", "name", "createdAt")
	require.NoError(t, table.EnsureHeader(ctx))

	header, err := m.Get(ctx, "Users!1:1")
	require.NoError(t, err)
	assert.Equal(t, "extra", header[0][4])
}
