package repository

import (
	"context"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type pgxUnlockRepository struct {
	pool *pgxpool.Pool
}

func NewPgxUnlockRepository(pool *pgxpool.Pool) UnlockRepository {
	return &pgxUnlockRepository{pool: pool}
}

func (p *pgxUnlockRepository) GetByEmail(ctx context.Context, email string) ([]*Unlock, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "email", "company_id", "created_at"),
		sm.From("unlocks"),
		sm.Where(psql.Quote("email_key").EQ(psql.Arg(emailKey(email)))),
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

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Unlock, error) {
		u := &Unlock{}
		if err := row.Scan(&u.ID, &u.Email, &u.CompanyID, &u.CreatedAt); err != nil {
			return nil, err
		}
		return u, nil
	})
}

func (p *pgxUnlockRepository) Add(ctx context.Context, unlock *Unlock) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	sql, args, err := insertUnlockQuery(ctx, unlock)
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

func insertUnlockQuery(ctx context.Context, unlock *Unlock) (string, []any, error) {
	return psql.Insert(
		im.Into("unlocks", "id", "email", "email_key", "company_id", "created_at"),
		im.Values(
			psql.Arg(unlock.ID),
			psql.Arg(unlock.Email),
			psql.Arg(emailKey(unlock.Email)),
			psql.Arg(unlock.CompanyID),
			psql.Arg(unlock.CreatedAt),
		),
		im.OnConflict(psql.Quote("email_key"), psql.Quote("company_id")).DoNothing(),
	).Build(ctx)
}
