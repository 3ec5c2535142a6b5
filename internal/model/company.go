package model

// Company is one row of the Database tab. ID is the 1-based data row index.
type Company struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Country        string  `json:"country"`
	Industry       string  `json:"industry"`
	SubIndustry    string  `json:"subIndustry"`
	History        float64 `json:"history"`
	BrandAwareness float64 `json:"brandAwareness"`
	Moat           float64 `json:"moat"`
	Size           float64 `json:"size"`
	Innovation     float64 `json:"innovation"`
	Total          float64 `json:"total"`
	Website        string  `json:"website"`
	Logo           string  `json:"logo"`
}

type CompanySummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Logo     string `json:"logo"`
}

func (c *Company) Summary() *CompanySummary {
	return &CompanySummary{
		ID:       c.ID,
		Name:     c.Name,
		Industry: c.Industry,
		Logo:     c.Logo,
	}
}

type CompanyPage struct {
	Companies  []*Company `json:"companies"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

type Facets struct {
	Countries     []string `json:"countries"`
	Industries    []string `json:"industries"`
	SubIndustries []string `json:"subIndustries"`
}
