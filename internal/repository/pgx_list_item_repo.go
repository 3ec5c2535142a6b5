package repository

import (
	"context"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type pgxListItemRepository struct {
	pool *pgxpool.Pool
}

func NewPgxListItemRepository(pool *pgxpool.Pool) ListItemRepository {
	return &pgxListItemRepository{pool: pool}
}

func (p *pgxListItemRepository) GetByList(ctx context.Context, listID string) ([]*ListItem, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "list_id", "company_id", "created_at"),
		sm.From("list_items"),
		sm.Where(psql.Quote("list_id").EQ(psql.Arg(listID))),
		sm.OrderBy("created_at"),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*ListItem, error) {
		item := &ListItem{}
		if err := row.Scan(&item.ID, &item.ListID, &item.CompanyID, &item.CreatedAt); err != nil {
			return nil, err
		}
		return item, nil
	})
}

// Add skips duplicates with ON CONFLICT so the surrounding transaction is
// not aborted by a unique violation.
func (p *pgxListItemRepository) Add(ctx context.Context, item *ListItem) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	sql, args, err := insertListItemQuery(ctx, item)
	if err != nil {
		return err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func insertListItemQuery(ctx context.Context, item *ListItem) (string, []any, error) {
	return psql.Insert(
		im.Into("list_items", "id", "list_id", "company_id", "created_at"),
		im.Values(
			psql.Arg(item.ID),
			psql.Arg(item.ListID),
			psql.Arg(item.CompanyID),
			psql.Arg(item.CreatedAt),
		),
		im.OnConflict(psql.Quote("list_id"), psql.Quote("company_id")).DoNothing(),
	).Build(ctx)
}

func (p *pgxListItemRepository) Remove(ctx context.Context, listID, companyID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("list_items"),
		dm.Where(psql.Quote("list_id").EQ(psql.Arg(listID))),
		dm.Where(psql.Quote("company_id").EQ(psql.Arg(companyID))),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
