package model

type PackResult struct {
	Companies []*Company `json:"companies"`
	New       []string   `json:"new"`
}

type ScrapbookEntry struct {
	Company  *Company `json:"company"`
	Unlocked bool     `json:"unlocked"`
}

type Scrapbook struct {
	Unlocked  int               `json:"unlocked"`
	Total     int               `json:"total"`
	Companies []*ScrapbookEntry `json:"companies"`
}

type Enquiry struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Query string `json:"query" validate:"required"`
}
