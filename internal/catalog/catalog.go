// Package catalog filters, sorts and pages the in-memory company list.
package catalog

import (
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

type SortField string

const (
	SortHistory        SortField = "history"
	SortBrandAwareness SortField = "brandAwareness"
	SortMoat           SortField = "moat"
	SortSize           SortField = "size"
	SortInnovation     SortField = "innovation"
	SortTotal          SortField = "total"
	SortName           SortField = "name"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500

	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

var (
	ErrInvalidSort  = errors.New("invalid sort field")
	ErrInvalidOrder = errors.New("invalid sort order")
)

type Query struct {
	Search        string
	Countries     []string
	Industries    []string
	SubIndustries []string
	TotalMin      *float64
	TotalMax      *float64
	SortBy        SortField
	Order         Order
	Page          int
	PageSize      int
}

func (q *Query) normalize() error {
	if q.SortBy == "" {
		q.SortBy = SortTotal
	}
	if _, ok := scoreOf(q.SortBy); !ok && q.SortBy != SortName {
		return errors.Wrap(ErrInvalidSort, string(q.SortBy))
	}

	if q.Order == "" {
		q.Order = OrderDesc
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		return errors.Wrap(ErrInvalidOrder, string(q.Order))
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return nil
}

// Browse applies the query and returns the requested page.
func Browse(companies []*model.Company, q Query) (*model.CompanyPage, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}

	filtered := Filter(companies, q)
	Sort(filtered, q.SortBy, q.Order)

	total := len(filtered)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start, end := total, total
	if q.Page-1 < totalPages {
		start = (q.Page - 1) * q.PageSize
		end = min(start+q.PageSize, total)
	}

	return &model.CompanyPage{
		Companies:  filtered[start:end],
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Filter keeps the companies matching every criterion of q. The input is not modified.
func Filter(companies []*model.Company, q Query) []*model.Company {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*model.Company, 0, len(companies))
	for _, c := range companies {
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		if !inSet(q.Countries, c.Country) || !inSet(q.Industries, c.Industry) || !inSet(q.SubIndustries, c.SubIndustry) {
			continue
		}
		if q.TotalMin != nil && c.Total < *q.TotalMin {
			continue
		}
		if q.TotalMax != nil && c.Total > *q.TotalMax {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c *model.Company, search string) bool {
	for _, field := range []string{c.Name, c.Description, c.Country, c.Industry, c.SubIndustry} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func inSet(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func scoreOf(field SortField) (func(*model.Company) float64, bool) {
	switch field {
	case SortHistory:
		return func(c *model.Company) float64 { return c.History }, true
	case SortBrandAwareness:
		return func(c *model.Company) float64 { return c.BrandAwareness }, true
	case SortMoat:
		return func(c *model.Company) float64 { return c.Moat }, true
	case SortSize:
		return func(c *model.Company) float64 { return c.Size }, true
	case SortInnovation:
		return func(c *model.Company) float64 { return c.Innovation }, true
	case SortTotal:
		return func(c *model.Company) float64 { return c.Total }, true
	}
	return nil, false
}

// Sort orders companies in place. Equal keys keep their input order.
func Sort(companies []*model.Company, field SortField, order Order) {
	less := func(i, j int) bool {
		return strings.ToLower(companies[i].Name) < strings.ToLower(companies[j].Name)
	}
	if score, ok := scoreOf(field); ok {
		less = func(i, j int) bool { return score(companies[i]) < score(companies[j]) }
	}

	if order == OrderDesc {
		sort.SliceStable(companies, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(companies, less)
}

type FacetSearch struct {
	Country     string
	Industry    string
	SubIndustry string
}

// Facets lists the distinct non-empty filter values, narrowed by a
// case-insensitive substring per facet and sorted alphabetically.
func Facets(companies []*model.Company, s FacetSearch) *model.Facets {
	return &model.Facets{
		Countries:     distinct(companies, func(c *model.Company) string { return c.Country }, s.Country),
		Industries:    distinct(companies, func(c *model.Company) string { return c.Industry }, s.Industry),
		SubIndustries: distinct(companies, func(c *model.Company) string { return c.SubIndustry }, s.SubIndustry),
	}
}

func distinct(companies []*model.Company, field func(*model.Company) string, search string) []string {
	search = strings.ToLower(search)
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, c := range companies {
		v := field(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if strings.Contains(strings.ToLower(v), search) {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a == b {
			return out[i] < out[j]
		}
		return a < b
	})
	return out
}

// ClampLimit bounds a quick-search limit to 1..MaxSearchLimit. Zero means
// the default.
func ClampLimit(limit int) int {
	if limit == 0 {
		return DefaultSearchLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// QuickSearch matches q against company names only. An empty q returns the
// first companies in catalogue order.
func QuickSearch(companies []*model.Company, q string, limit int) []*model.CompanySummary {
	limit = ClampLimit(limit)
	q = strings.ToLower(strings.TrimSpace(q))

	out := make([]*model.CompanySummary, 0, limit)
	for _, c := range companies {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c.Summary())
		}
	}
	return out
}
