package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"strings"
)

type sheetsUnlockRepository struct {
	table *sheet.Table
}

func NewSheetsUnlockRepository(tables *SheetTables) UnlockRepository {
	return &sheetsUnlockRepository{table: tables.Unlocks}
}

func (s *sheetsUnlockRepository) GetByEmail(ctx context.Context, email string) ([]*Unlock, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, err
	}

	unlocks := make([]*Unlock, 0)
	for _, r := range rows {
		if r.Blank() || !strings.EqualFold(r.Get(1), email) {
			continue
		}
		unlocks = append(unlocks, &Unlock{
			ID:        r.Get(0),
			Email:     r.Get(1),
			CompanyID: r.Get(2),
			CreatedAt: parseTime(r.Get(3)),
		})
	}
	return unlocks, nil
}

func (s *sheetsUnlockRepository) Add(ctx context.Context, unlock *Unlock) error {
	existing, err := s.GetByEmail(ctx, unlock.Email)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.CompanyID == unlock.CompanyID {
			return ErrAlreadyExists
		}
	}

	return s.table.Append(ctx, unlock.ID, unlock.Email, unlock.CompanyID, formatTime(unlock.CreatedAt))
}
