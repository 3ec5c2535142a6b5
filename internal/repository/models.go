package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"strings"
	"time"
)

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type List struct {
	ID         string    `db:"id"`
	OwnerEmail string    `db:"owner_email"`
	Name       string    `db:"name"`
	IsPublic   bool      `db:"is_public"`
	CreatedAt  time.Time `db:"created_at"`
	Deleted    bool      `db:"-"`
}

// OwnedBy compares owner emails case-insensitively.
func (l *List) OwnedBy(email string) bool {
	return email != "" && strings.EqualFold(l.OwnerEmail, email)
}

type ListItem struct {
	ID        string    `db:"id"`
	ListID    string    `db:"list_id"`
	CompanyID string    `db:"company_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Unlock struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CompanyID string    `db:"company_id"`
	CreatedAt time.Time `db:"created_at"`
}

type CompanyRepository interface {
	All(ctx context.Context) ([]*model.Company, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Upsert inserts the user unless one with the same email exists and
	// reports whether a row was created.
	Upsert(ctx context.Context, user *User) (bool, error)
}

type ListRepository interface {
	Create(ctx context.Context, list *List) error
	// Get returns deleted lists too, flagged with Deleted.
	Get(ctx context.Context, id string) (*List, error)
	// GetVisible returns non-deleted lists that are public or owned by email.
	GetVisible(ctx context.Context, email string) ([]*List, error)
	MarkDeleted(ctx context.Context, id string) error
}

type ListItemRepository interface {
	GetByList(ctx context.Context, listID string) ([]*ListItem, error)
	// Add returns ErrAlreadyExists when the company is already on the list.
	Add(ctx context.Context, item *ListItem) error
	// Remove returns ErrNotFound when the company is not on the list.
	Remove(ctx context.Context, listID, companyID string) error
}

type UnlockRepository interface {
	GetByEmail(ctx context.Context, email string) ([]*Unlock, error)
	// Add returns ErrAlreadyExists when the company is already unlocked.
	Add(ctx context.Context, unlock *Unlock) error
}
