package catalog

import (
	"fmt"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func fixture() []*model.Company {
	return []*model.Company{
		{ID: 1, Name: "Acme", Description: "Anvils and rockets", Country: "US", Industry: "Industrials", SubIndustry: "Tools", History: 10, Moat: 7, Total: 58},
		{ID: 2, Name: "globex", Description: "Everything", Country: "UK", Industry: "Tech", SubIndustry: "Software", History: 4, Moat: 9, Total: 81},
		{ID: 3, Name: "Initech", Description: "TPS reports", Country: "US", Industry: "Tech", SubIndustry: "Software", History: 2, Moat: 1, Total: 40},
		{ID: 4, Name: "Umbrella", Description: "Pharma", Country: "Japan", Industry: "Health", SubIndustry: "", History: 9, Moat: 9, Total: 58},
	}
}

func ptr(f float64) *float64 { return &f }

func ids(companies []*model.Company) []int {
	out := make([]int, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{
			name:  "empty query keeps everything",
			query: Query{},
			want:  []int{1, 2, 3, 4},
		},
		{
			name:  "search matches name case-insensitively",
			query: Query{Search: "GLOBEX"},
			want:  []int{2},
		},
		{
			name:  "search matches description",
			query: Query{Search: "tps"},
			want:  []int{3},
		},
		{
			name:  "search matches country and sub-industry",
			query: Query{Search: "soft"},
			want:  []int{2, 3},
		},
		{
			name:  "country facet",
			query: Query{Countries: []string{"US"}},
			want:  []int{1, 3},
		},
		{
			name:  "facets combine with and",
			query: Query{Countries: []string{"US", "UK"}, Industries: []string{"Tech"}},
			want:  []int{2, 3},
		},
		{
			name:  "sub-industry facet",
			query: Query{SubIndustries: []string{"Tools"}},
			want:  []int{1},
		},
		{
			name:  "total bounds are inclusive",
			query: Query{TotalMin: ptr(58), TotalMax: ptr(81)},
			want:  []int{1, 2, 4},
		},
		{
			name:  "nothing matches",
			query: Query{Search: "zzz"},
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixture(), tt.query)))
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		order Order
		want  []int
	}{
		{"total desc keeps ties stable", SortTotal, OrderDesc, []int{2, 1, 4, 3}},
		{"total asc", SortTotal, OrderAsc, []int{3, 1, 4, 2}},
		{"name asc ignores case", SortName, OrderAsc, []int{1, 2, 3, 4}},
		{"name desc", SortName, OrderDesc, []int{4, 3, 2, 1}},
		{"history asc", SortHistory, OrderAsc, []int{3, 2, 4, 1}},
		{"moat desc", SortMoat, OrderDesc, []int{2, 4, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companies := fixture()
			Sort(companies, tt.field, tt.order)
			assert.Equal(t, tt.want, ids(companies))
		})
	}
}

func TestBrowse(t *testing.T) {
	many := make([]*model.Company, 0, 120)
	for i := 1; i <= 120; i++ {
		many = append(many, &model.Company{ID: i, Name: fmt.Sprintf("Company %03d", i), Total: float64(i)})
	}

	t.Run("defaults to total desc and 50 per page", func(t *testing.T) {
		page, err := Browse(many, Query{})
		require.NoError(t, err)
		assert.Equal(t, 120, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, DefaultPageSize, page.PageSize)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Companies, 50)
		assert.Equal(t, 120, page.Companies[0].ID)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page, err := Browse(many, Query{Page: 3, SortBy: SortName, Order: OrderAsc})
		require.NoError(t, err)
		require.Len(t, page.Companies, 20)
		assert.Equal(t, 101, page.Companies[0].ID)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := Browse(many, Query{Page: 9})
		require.NoError(t, err)
		assert.Empty(t, page.Companies)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("huge page number is empty", func(t *testing.T) {
		var page *model.CompanyPage
		require.NotPanics(t, func() {
			var err error
			page, err = Browse(many, Query{Page: 1 << 62})
			require.NoError(t, err)
		})
		assert.Empty(t, page.Companies)
		assert.Equal(t, 1<<62, page.Page)
	})

	t.Run("empty result still has one page", func(t *testing.T) {
		page, err := Browse(many, Query{Search: "nope"})
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		assert.Empty(t, page.Companies)
	})

	t.Run("page size is capped", func(t *testing.T) {
		page, err := Browse(many, Query{PageSize: 10_000})
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, page.PageSize)
		assert.Len(t, page.Companies, 120)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := Browse(many, Query{SortBy: "revenue"})
		assert.ErrorIs(t, err, ErrInvalidSort)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := Browse(many, Query{Order: "sideways"})
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("input order is untouched", func(t *testing.T) {
		companies := fixture()
		_, err := Browse(companies, Query{SortBy: SortName, Order: OrderDesc})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, ids(companies))
	})
}

func TestFacets(t *testing.T) {
	facets := Facets(fixture(), FacetSearch{})
	assert.Equal(t, []string{"Japan", "UK", "US"}, facets.Countries)
	assert.Equal(t, []string{"Health", "Industrials", "Tech"}, facets.Industries)
	assert.Equal(t, []string{"Software", "Tools"}, facets.SubIndustries, "empty values are skipped")

	facets = Facets(fixture(), FacetSearch{Country: "u", Industry: "TECH"})
	assert.Equal(t, []string{"UK", "US"}, facets.Countries)
	assert.Equal(t, []string{"Tech"}, facets.Industries)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultSearchLimit, ClampLimit(0))
	assert.Equal(t, 1, ClampLimit(-4))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 12, ClampLimit(12))
	assert.Equal(t, MaxSearchLimit, ClampLimit(500))
}

func TestQuickSearch(t *testing.T) {
	got := QuickSearch(fixture(), "", 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	got = QuickSearch(fixture(), "  INI ", 10)
	require.Len(t, got, 1)
	assert.Equal(t, &model.CompanySummary{ID: 3, Name: "Initech", Industry: "Tech"}, got[0])

	got = QuickSearch(fixture(), "", -5)
	assert.Len(t, got, 1, "negative limits clamp to one")

	got = QuickSearch(fixture(), "rockets", 10)
	assert.Empty(t, got, "quick search only looks at names")
}
