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
	"golang.org/x/sync/errgroup"
	"strings"
	"time"
)

type ListService struct {
	tx db.Transactor

	lists     repository.ListRepository
	items     repository.ListItemRepository
	companies repository.CompanyRepository
}

func NewListService(tx db.Transactor) *ListService {
	return &ListService{tx: tx}
}

func (s *ListService) Create(ctx context.Context, email, name string, isPublic bool) (string, *Error) {
	l := logger.FromContext(ctx)

	if email == "" {
		return "", NewError(ErrorCodeUnauthorized, "sign in to create a list")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewError(ErrorCodeInvalidBody, "name is required")
	}

	list := &repository.List{
		ID:         id.New(id.PrefixList),
		OwnerEmail: email,
		Name:       name,
		IsPublic:   isPublic,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.lists.Create(ctx, list); err != nil {
		l.Error("failed to create list", zap.String("owner", email), zap.Error(err))
		return "", NewError(ErrorCodeUnspecified, "failed to create list")
	}

	l.Info("list created", zap.String("list_id", list.ID), zap.String("owner", email))
	return list.ID, nil
}

// Visible returns public lists and, when email is set, the caller's own lists.
func (s *ListService) Visible(ctx context.Context, email string) ([]*model.List, *Error) {
	lists, err := s.lists.GetVisible(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get lists", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get lists")
	}

	res := make([]*model.List, 0, len(lists))
	for _, list := range lists {
		res = append(res, toModelList(list))
	}
	return res, nil
}

func (s *ListService) Get(ctx context.Context, listID, email string) (*model.ListDetail, *Error) {
	l := logger.FromContext(ctx).With(zap.String("list_id", listID))

	list, serr := s.readable(ctx, listID, email)
	if serr != nil {
		return nil, serr
	}

	var (
		items     []*repository.ListItem
		companies []*model.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.items.GetByList(gctx, listID)
		return errors.Wrap(err, "get items")
	})
	g.Go(func() error {
		var err error
		companies, err = s.companies.All(gctx)
		return errors.Wrap(err, "get companies")
	})
	if err := g.Wait(); err != nil {
		l.Error("failed to load list contents", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get list")
	}

	index := indexCompanies(companies)
	detail := &model.ListDetail{
		List:  *toModelList(list),
		Items: make([]*model.ListItem, 0, len(items)),
	}
	for _, item := range items {
		mi := &model.ListItem{
			ID:        item.ID,
			ListID:    item.ListID,
			CompanyID: item.CompanyID,
			CreatedAt: item.CreatedAt,
		}
		if c, ok := index[item.CompanyID]; ok {
			mi.Company = c.Summary()
		}
		detail.Items = append(detail.Items, mi)
	}

	return detail, nil
}

func (s *ListService) Delete(ctx context.Context, listID, email string) *Error {
	l := logger.FromContext(ctx).With(zap.String("list_id", listID))

	if email == "" {
		return NewError(ErrorCodeUnauthorized, "sign in to delete a list")
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		list, err := s.lists.Get(txCtx, listID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && (list.Deleted || !list.OwnedBy(email))) {
			l.Warn("refusing to delete list", zap.String("caller", email))
			return NewError(ErrorCodeForbidden, "list not found or not owned by you")
		}
		if err != nil {
			l.Error("failed to get list", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to delete list")
		}

		if err = s.lists.MarkDeleted(txCtx, listID); err != nil {
			l.Error("failed to mark list deleted", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to delete list")
		}

		l.Info("list deleted", zap.String("owner", email))
		return nil
	})

	return asError(ctx, err, "failed to delete list")
}

func (s *ListService) AddItem(ctx context.Context, listID, companyID, email string) *Error {
	l := logger.FromContext(ctx).With(zap.String("list_id", listID), zap.String("company_id", companyID))

	if email == "" {
		return NewError(ErrorCodeUnauthorized, "sign in to edit a list")
	}

	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return NewError(ErrorCodeInvalidBody, "companyId is required")
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if serr := s.editable(txCtx, listID, email); serr != nil {
			return serr
		}

		err := s.items.Add(txCtx, &repository.ListItem{
			ID:        id.New(id.PrefixItem),
			ListID:    listID,
			CompanyID: companyID,
			CreatedAt: time.Now().UTC(),
		})
		if errors.Is(err, repository.ErrAlreadyExists) {
			l.Debug("company already on list")
			return nil
		}
		if err != nil {
			l.Error("failed to add list item", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to add company to list")
		}

		l.Debug("company added to list")
		return nil
	})

	return asError(ctx, err, "failed to add company to list")
}

func (s *ListService) RemoveItem(ctx context.Context, listID, companyID, email string) *Error {
	l := logger.FromContext(ctx).With(zap.String("list_id", listID), zap.String("company_id", companyID))

	if email == "" {
		return NewError(ErrorCodeUnauthorized, "sign in to edit a list")
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if serr := s.editable(txCtx, listID, email); serr != nil {
			return serr
		}

		err := s.items.Remove(txCtx, listID, strings.TrimSpace(companyID))
		if errors.Is(err, repository.ErrNotFound) {
			l.Debug("company was not on list")
			return nil
		}
		if err != nil {
			l.Error("failed to remove list item", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to remove company from list")
		}

		l.Debug("company removed from list")
		return nil
	})

	return asError(ctx, err, "failed to remove company from list")
}

// readable returns the list when email may view it. Private lists of other
// users are reported as missing.
func (s *ListService) readable(ctx context.Context, listID, email string) (*repository.List, *Error) {
	list, err := s.lists.Get(ctx, listID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && (list.Deleted || (!list.IsPublic && !list.OwnedBy(email)))) {
		return nil, NewError(ErrorCodeNotFound, "list not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get list", zap.String("list_id", listID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get list")
	}
	return list, nil
}

func (s *ListService) editable(ctx context.Context, listID, email string) *Error {
	list, err := s.lists.Get(ctx, listID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && list.Deleted) {
		return NewError(ErrorCodeNotFound, "list not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get list", zap.String("list_id", listID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get list")
	}
	if !list.OwnedBy(email) {
		return NewError(ErrorCodeForbidden, "list is owned by another user")
	}
	return nil
}

func (s *ListService) WithListRepo(r repository.ListRepository) *ListService {
	s.lists = r
	return s
}

func (s *ListService) WithListItemRepo(r repository.ListItemRepository) *ListService {
	s.items = r
	return s
}

func (s *ListService) WithCompanyRepo(r repository.CompanyRepository) *ListService {
	s.companies = r
	return s
}

func toModelList(list *repository.List) *model.List {
	return &model.List{
		ID:         list.ID,
		OwnerEmail: list.OwnerEmail,
		Name:       list.Name,
		IsPublic:   list.IsPublic,
		CreatedAt:  list.CreatedAt,
	}
}
