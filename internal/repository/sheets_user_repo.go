package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"github.com/pkg/errors"
	"strings"
)

type sheetsUserRepository struct {
	table *sheet.Table
}

func NewSheetsUserRepository(tables *SheetTables) UserRepository {
	return &sheetsUserRepository{table: tables.Users}
}

func (s *sheetsUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		if r.Blank() || !strings.EqualFold(r.Get(1), email) {
			continue
		}
		return &User{
			ID:        r.Get(0),
			Email:     r.Get(1),
			Name:      r.Get(2),
			CreatedAt: parseTime(r.Get(3)),
		}, nil
	}

	return nil, ErrNotFound
}

func (s *sheetsUserRepository) Upsert(ctx context.Context, user *User) (bool, error) {
	_, err := s.GetByEmail(ctx, user.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	if err = s.table.Append(ctx, user.ID, user.Email, user.Name, formatTime(user.CreatedAt)); err != nil {
		return false, err
	}
	return true, nil
}
