package repository

import (
	"context"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"time"
)

var listColumns = []any{"id", "owner_email", "name", "is_public", "created_at", "deleted_at"}

type pgxListRepository struct {
	pool *pgxpool.Pool
}

func NewPgxListRepository(pool *pgxpool.Pool) ListRepository {
	return &pgxListRepository{pool: pool}
}

func scanList(row pgx.Row) (*List, error) {
	l := &List{}
	var deletedAt *time.Time
	if err := row.Scan(&l.ID, &l.OwnerEmail, &l.Name, &l.IsPublic, &l.CreatedAt, &deletedAt); err != nil {
		return nil, err
	}
	l.Deleted = deletedAt != nil
	return l, nil
}

func (p *pgxListRepository) Create(ctx context.Context, list *List) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("lists", "id", "owner_email", "owner_key", "name", "is_public", "created_at"),
		im.Values(
			psql.Arg(list.ID),
			psql.Arg(list.OwnerEmail),
			psql.Arg(emailKey(list.OwnerEmail)),
			psql.Arg(list.Name),
			psql.Arg(list.IsPublic),
			psql.Arg(list.CreatedAt),
		),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (p *pgxListRepository) Get(ctx context.Context, id string) (*List, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(listColumns...),
		sm.From("lists"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	l, err := scanList(e.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return l, err
}

func (p *pgxListRepository) GetVisible(ctx context.Context, email string) ([]*List, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(listColumns...),
		sm.From("lists"),
		sm.Where(psql.Quote("deleted_at").IsNull()),
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

	all, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*List, error) {
		return scanList(row)
	})
	if err != nil {
		return nil, err
	}

	lists := make([]*List, 0, len(all))
	for _, l := range all {
		if l.IsPublic || l.OwnedBy(email) {
			lists = append(lists, l)
		}
	}
	return lists, nil
}

func (p *pgxListRepository) MarkDeleted(ctx context.Context, id string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	if _, err := p.Get(ctx, id); err != nil {
		return err
	}

	q := psql.Update(
		um.Table("lists"),
		um.SetCol("deleted_at").ToArg(time.Now().UTC()),
		um.SetCol("is_public").ToArg(false),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return err
}
