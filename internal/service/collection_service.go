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
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const DefaultPackSize = 1

type CollectionService struct {
	tx db.Transactor

	companies repository.CompanyRepository
	unlocks   repository.UnlockRepository

	packSize int
	shuffle  func(n int, swap func(i, j int))
}

func NewCollectionService(tx db.Transactor) *CollectionService {
	return &CollectionService{
		tx:       tx,
		packSize: DefaultPackSize,
		shuffle:  rand.Shuffle,
	}
}

func (s *CollectionService) Unlock(ctx context.Context, email, companyID string) *Error {
	l := logger.FromContext(ctx).With(zap.String("email", email), zap.String("company_id", companyID))

	if email == "" {
		return NewError(ErrorCodeUnauthorized, "sign in to unlock companies")
	}

	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return NewError(ErrorCodeInvalidBody, "companyId is required")
	}

	companies, serr := loadCompanies(ctx, s.companies)
	if serr != nil {
		return serr
	}
	if _, ok := indexCompanies(companies)[companyID]; !ok {
		l.Debug("unlock of unknown company")
		return NewError(ErrorCodeNotFound, "company not found")
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.add(txCtx, email, companyID)
		return err
	})
	return asError(ctx, err, "failed to unlock company")
}

func (s *CollectionService) Unlocked(ctx context.Context, email string) ([]string, *Error) {
	if email == "" {
		return nil, NewError(ErrorCodeUnauthorized, "sign in to see unlocked companies")
	}

	unlocks, serr := s.unlocked(ctx, email)
	if serr != nil {
		return nil, serr
	}

	ids := make([]string, 0, len(unlocks))
	for _, u := range unlocks {
		ids = append(ids, u.CompanyID)
	}
	return ids, nil
}

// OpenPack draws up to packSize distinct companies the user has not unlocked
// yet, topping up with already unlocked ones when too few are left, and
// unlocks them.
func (s *CollectionService) OpenPack(ctx context.Context, email string) (*model.PackResult, *Error) {
	l := logger.FromContext(ctx).With(zap.String("email", email))

	if email == "" {
		return nil, NewError(ErrorCodeUnauthorized, "sign in to open packs")
	}

	res := &model.PackResult{
		Companies: make([]*model.Company, 0, s.packSize),
		New:       make([]string, 0, s.packSize),
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		companies, owned, serr := s.load(txCtx, email)
		if serr != nil {
			return serr
		}
		if len(companies) == 0 {
			return NewError(ErrorCodeNotFound, "no companies available")
		}

		var locked, unlocked []*model.Company
		for _, c := range companies {
			if _, ok := owned[strconv.Itoa(c.ID)]; ok {
				unlocked = append(unlocked, c)
			} else {
				locked = append(locked, c)
			}
		}

		drawn := s.draw(locked, s.packSize)
		if len(drawn) < s.packSize {
			drawn = append(drawn, s.draw(unlocked, s.packSize-len(drawn))...)
		}

		for _, c := range drawn {
			companyID := strconv.Itoa(c.ID)
			added, err := s.add(txCtx, email, companyID)
			if err != nil {
				return err
			}
			if added {
				res.New = append(res.New, companyID)
			}
			res.Companies = append(res.Companies, c)
		}

		l.Info("pack opened", zap.Int("drawn", len(res.Companies)), zap.Strings("new", res.New))
		return nil
	})
	if serr := asError(ctx, err, "failed to open pack"); serr != nil {
		return nil, serr
	}

	return res, nil
}

// Collection returns the unlocked companies in catalogue order.
func (s *CollectionService) Collection(ctx context.Context, email string) ([]*model.Company, *Error) {
	if email == "" {
		return nil, NewError(ErrorCodeUnauthorized, "sign in to see your collection")
	}

	companies, owned, serr := s.load(ctx, email)
	if serr != nil {
		return nil, serr
	}

	res := make([]*model.Company, 0, len(owned))
	for _, c := range companies {
		if _, ok := owned[strconv.Itoa(c.ID)]; ok {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *CollectionService) Scrapbook(ctx context.Context, email string) (*model.Scrapbook, *Error) {
	if email == "" {
		return nil, NewError(ErrorCodeUnauthorized, "sign in to see your scrapbook")
	}

	companies, owned, serr := s.load(ctx, email)
	if serr != nil {
		return nil, serr
	}

	book := &model.Scrapbook{
		Total:     len(companies),
		Companies: make([]*model.ScrapbookEntry, 0, len(companies)),
	}
	for _, c := range companies {
		_, ok := owned[strconv.Itoa(c.ID)]
		if ok {
			book.Unlocked++
		}
		book.Companies = append(book.Companies, &model.ScrapbookEntry{Company: c, Unlocked: ok})
	}
	return book, nil
}

func (s *CollectionService) draw(from []*model.Company, n int) []*model.Company {
	if n <= 0 || len(from) == 0 {
		return nil
	}

	pool := make([]*model.Company, len(from))
	copy(pool, from)
	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// add unlocks one company and reports whether it was newly unlocked.
func (s *CollectionService) add(ctx context.Context, email, companyID string) (bool, error) {
	err := s.unlocks.Add(ctx, &repository.Unlock{
		ID:        id.New(id.PrefixUnlock),
		Email:     email,
		CompanyID: companyID,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to add unlock",
			zap.String("email", email),
			zap.String("company_id", companyID),
			zap.Error(err))
		return false, NewError(ErrorCodeUnspecified, "failed to unlock company")
	}
	return true, nil
}

func (s *CollectionService) unlocked(ctx context.Context, email string) ([]*repository.Unlock, *Error) {
	unlocks, err := s.unlocks.GetByEmail(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get unlocks", zap.String("email", email), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get unlocked companies")
	}
	return unlocks, nil
}

// load reads the catalogue and the user's unlocks concurrently.
func (s *CollectionService) load(ctx context.Context, email string) ([]*model.Company, map[string]struct{}, *Error) {
	var (
		companies []*model.Company
		unlocks   []*repository.Unlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var serr *Error
		if companies, serr = loadCompanies(gctx, s.companies); serr != nil {
			return serr
		}
		return nil
	})
	g.Go(func() error {
		var serr *Error
		if unlocks, serr = s.unlocked(gctx, email); serr != nil {
			return serr
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, asError(ctx, err, "failed to load collection")
	}

	owned := make(map[string]struct{}, len(unlocks))
	for _, u := range unlocks {
		owned[u.CompanyID] = struct{}{}
	}
	return companies, owned, nil
}

func (s *CollectionService) WithCompanyRepo(r repository.CompanyRepository) *CollectionService {
	s.companies = r
	return s
}

func (s *CollectionService) WithUnlockRepo(r repository.UnlockRepository) *CollectionService {
	s.unlocks = r
	return s
}

func (s *CollectionService) WithPackSize(n int) *CollectionService {
	if n > 0 {
		s.packSize = n
	}
	return s
}

func (s *CollectionService) WithShuffle(shuffle func(n int, swap func(i, j int))) *CollectionService {
	s.shuffle = shuffle
	return s
}
