package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"strings"
)

type sheetsListRepository struct {
	table *sheet.Table
}

func NewSheetsListRepository(tables *SheetTables) ListRepository {
	return &sheetsListRepository{table: tables.Lists}
}

func listFromRow(r sheet.Row) *List {
	name := r.Get(2)
	deleted := strings.HasPrefix(name, deletedPrefix)

	return &List{
		ID:         r.Get(0),
		OwnerEmail: r.Get(1),
		Name:       strings.TrimPrefix(name, deletedPrefix),
		IsPublic:   parseBool(r.Get(3)),
		CreatedAt:  parseTime(r.Get(4)),
		Deleted:    deleted,
	}
}

func (s *sheetsListRepository) Create(ctx context.Context, list *List) error {
	return s.table.Append(ctx,
		list.ID,
		list.OwnerEmail,
		list.Name,
		formatBool(list.IsPublic),
		formatTime(list.CreatedAt),
	)
}

func (s *sheetsListRepository) find(ctx context.Context, id string) (sheet.Row, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return sheet.Row{}, err
	}

	for _, r := range rows {
		if !r.Blank() && r.Get(0) == id {
			return r, nil
		}
	}
	return sheet.Row{}, ErrNotFound
}

func (s *sheetsListRepository) Get(ctx context.Context, id string) (*List, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return listFromRow(r), nil
}

func (s *sheetsListRepository) GetVisible(ctx context.Context, email string) ([]*List, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, err
	}

	lists := make([]*List, 0)
	for _, r := range rows {
		if r.Blank() {
			continue
		}
		l := listFromRow(r)
		if l.Deleted {
			continue
		}
		if l.IsPublic || l.OwnedBy(email) {
			lists = append(lists, l)
		}
	}
	return lists, nil
}

// MarkDeleted renames the row to "[DELETED] <name>" and makes it private.
// Rows are never physically removed.
func (s *sheetsListRepository) MarkDeleted(ctx context.Context, id string) error {
	r, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	l := listFromRow(r)
	if l.Deleted {
		return nil
	}

	return s.table.UpdateRow(ctx, r.Number,
		l.ID,
		l.OwnerEmail,
		deletedPrefix+l.Name,
		sheetFalse,
		r.Get(4),
	)
}
