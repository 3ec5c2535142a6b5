package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/limchewyew/CompanyDirectory/internal/id"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"strings"
	"time"
)

type UserService struct {
	tx db.Transactor

	users repository.UserRepository
}

func NewUserService(tx db.Transactor) *UserService {
	return &UserService{tx: tx}
}

// SignIn records the user on first sign-in. Signing in again with the same
// email in any letter case returns the stored user unchanged.
func (u *UserService) SignIn(ctx context.Context, email, name string) (*model.User, *Error) {
	l := logger.FromContext(ctx).With(zap.String("email", email))

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, NewError(ErrorCodeInvalidBody, "email is required")
	}

	var user *repository.User
	err := u.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		candidate := &repository.User{
			ID:        id.New(id.PrefixUser),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}

		created, err := u.users.Upsert(txCtx, candidate)
		if err != nil {
			l.Error("failed to upsert user", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to save user")
		}

		if created {
			l.Info("user created", zap.String("user_id", candidate.ID))
			user = candidate
			return nil
		}

		user, err = u.users.GetByEmail(txCtx, email)
		if errors.Is(err, repository.ErrNotFound) {
			l.Error("user vanished after upsert")
			return NewError(ErrorCodeUnspecified, "failed to load user")
		}
		if err != nil {
			l.Error("failed to get user", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to load user")
		}
		return nil
	})
	if serr := asError(ctx, err, "failed to sign in"); serr != nil {
		return nil, serr
	}

	return &model.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (u *UserService) WithUserRepo(userRepo repository.UserRepository) *UserService {
	u.users = userRepo
	return u
}
