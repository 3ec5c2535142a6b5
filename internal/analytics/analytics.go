// Package analytics computes the chart data shown on the analytics page.
package analytics

import (
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"sort"
)

const TopN = 10

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Bucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type Averages struct {
	History        float64 `json:"history"`
	BrandAwareness float64 `json:"brandAwareness"`
	Moat           float64 `json:"moat"`
	Size           float64 `json:"size"`
	Innovation     float64 `json:"innovation"`
	Total          float64 `json:"total"`
}

type Summary struct {
	TotalCompanies     int      `json:"totalCompanies"`
	DistinctCountries  int      `json:"distinctCountries"`
	DistinctIndustries int      `json:"distinctIndustries"`
	TopIndustries      []Count  `json:"topIndustries"`
	TopCountries       []Count  `json:"topCountries"`
	ScoreDistribution  []Bucket `json:"scoreDistribution"`
	Averages           Averages `json:"averages"`
}

type Bubble struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	SubIndustry string  `json:"subIndustry"`
	Total       float64 `json:"total"`
}

var bucketRanges = []struct {
	label string
	upper float64
}{
	{"0-20", 20},
	{"21-40", 40},
	{"41-60", 60},
	{"61-80", 80},
	{"81-100", 0},
}

func Summarize(companies []*model.Company) *Summary {
	industries := make(map[string]int)
	countries := make(map[string]int)
	buckets := make([]Bucket, len(bucketRanges))
	for i, r := range bucketRanges {
		buckets[i] = Bucket{Range: r.label}
	}

	var sum Averages
	for _, c := range companies {
		if c.Industry != "" {
			industries[c.Industry]++
		}
		if c.Country != "" {
			countries[c.Country]++
		}

		buckets[bucketOf(c.Total)].Count++

		sum.History += c.History
		sum.BrandAwareness += c.BrandAwareness
		sum.Moat += c.Moat
		sum.Size += c.Size
		sum.Innovation += c.Innovation
		sum.Total += c.Total
	}

	return &Summary{
		TotalCompanies:     len(companies),
		DistinctCountries:  len(countries),
		DistinctIndustries: len(industries),
		TopIndustries:      top(industries, TopN),
		TopCountries:       top(countries, TopN),
		ScoreDistribution:  buckets,
		Averages:           average(sum, len(companies)),
	}
}

func bucketOf(total float64) int {
	for i, r := range bucketRanges[:len(bucketRanges)-1] {
		if total <= r.upper {
			return i
		}
	}
	return len(bucketRanges) - 1
}

func top(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for name, count := range counts {
		out = append(out, Count{Name: name, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func average(sum Averages, n int) Averages {
	if n == 0 {
		return Averages{}
	}
	d := float64(n)
	return Averages{
		History:        sum.History / d,
		BrandAwareness: sum.BrandAwareness / d,
		Moat:           sum.Moat / d,
		Size:           sum.Size / d,
		Innovation:     sum.Innovation / d,
		Total:          sum.Total / d,
	}
}

// Bubbles returns the companies that can be drawn on the sub-industry bubble chart.
func Bubbles(companies []*model.Company) []Bubble {
	out := make([]Bubble, 0, len(companies))
	for _, c := range companies {
		if c.SubIndustry == "" || c.Total <= 0 {
			continue
		}
		out = append(out, Bubble{
			ID:          c.ID,
			Name:        c.Name,
			SubIndustry: c.SubIndustry,
			Total:       c.Total,
		})
	}
	return out
}
