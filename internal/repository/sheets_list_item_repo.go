package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
)

type sheetsListItemRepository struct {
	table *sheet.Table
}

func NewSheetsListItemRepository(tables *SheetTables) ListItemRepository {
	return &sheetsListItemRepository{table: tables.ListItems}
}

func (s *sheetsListItemRepository) GetByList(ctx context.Context, listID string) ([]*ListItem, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*ListItem, 0)
	for _, r := range rows {
		if r.Blank() || r.Get(1) != listID {
			continue
		}
		items = append(items, &ListItem{
			ID:        r.Get(0),
			ListID:    r.Get(1),
			CompanyID: r.Get(2),
			CreatedAt: parseTime(r.Get(3)),
		})
	}
	return items, nil
}

func (s *sheetsListItemRepository) Add(ctx context.Context, item *ListItem) error {
	existing, err := s.GetByList(ctx, item.ListID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.CompanyID == item.CompanyID {
			return ErrAlreadyExists
		}
	}

	return s.table.Append(ctx, item.ID, item.ListID, item.CompanyID, formatTime(item.CreatedAt))
}

// Remove blanks the first matching row.
func (s *sheetsListItemRepository) Remove(ctx context.Context, listID, companyID string) error {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if !r.Blank() && r.Get(1) == listID && r.Get(2) == companyID {
			return s.table.BlankRow(ctx, r.Number)
		}
	}
	return ErrNotFound
}
