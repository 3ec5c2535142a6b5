package model

import "time"

type List struct {
	ID         string    `json:"id"`
	OwnerEmail string    `json:"ownerEmail"`
	Name       string    `json:"name"`
	IsPublic   bool      `json:"isPublic"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListItem struct {
	ID        string          `json:"id"`
	ListID    string          `json:"listId"`
	CompanyID string          `json:"companyId"`
	CreatedAt time.Time       `json:"createdAt"`
	Company   *CompanySummary `json:"company,omitempty"`
}

type ListDetail struct {
	List
	Items []*ListItem `json:"items"`
}
