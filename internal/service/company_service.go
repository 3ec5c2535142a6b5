package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/catalog"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"strconv"
)

type CompanyService struct {
	companies repository.CompanyRepository
}

func NewCompanyService() *CompanyService {
	return &CompanyService{}
}

func (c *CompanyService) All(ctx context.Context) ([]*model.Company, *Error) {
	return loadCompanies(ctx, c.companies)
}

func (c *CompanyService) Get(ctx context.Context, id int) (*model.Company, *Error) {
	l := logger.FromContext(ctx)

	companies, serr := loadCompanies(ctx, c.companies)
	if serr != nil {
		return nil, serr
	}

	for _, company := range companies {
		if company.ID == id {
			return company, nil
		}
	}

	l.Debug("company not found", zap.Int("company_id", id))
	return nil, NewError(ErrorCodeNotFound, "company not found")
}

func (c *CompanyService) Browse(ctx context.Context, q catalog.Query) (*model.CompanyPage, *Error) {
	l := logger.FromContext(ctx)

	companies, serr := loadCompanies(ctx, c.companies)
	if serr != nil {
		return nil, serr
	}

	page, err := catalog.Browse(companies, q)
	if errors.Is(err, catalog.ErrInvalidSort) || errors.Is(err, catalog.ErrInvalidOrder) {
		l.Debug("invalid browse query", zap.Error(err))
		return nil, NewError(ErrorCodeInvalidBody, err.Error())
	}
	if err != nil {
		l.Error("failed to browse companies", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to browse companies")
	}

	return page, nil
}

func (c *CompanyService) Facets(ctx context.Context, s catalog.FacetSearch) (*model.Facets, *Error) {
	companies, serr := loadCompanies(ctx, c.companies)
	if serr != nil {
		return nil, serr
	}
	return catalog.Facets(companies, s), nil
}

func (c *CompanyService) Search(ctx context.Context, q string, limit int) ([]*model.CompanySummary, *Error) {
	companies, serr := loadCompanies(ctx, c.companies)
	if serr != nil {
		return nil, serr
	}
	return catalog.QuickSearch(companies, q, limit), nil
}

func (c *CompanyService) WithCompanyRepo(r repository.CompanyRepository) *CompanyService {
	c.companies = r
	return c
}

func loadCompanies(ctx context.Context, r repository.CompanyRepository) ([]*model.Company, *Error) {
	companies, err := r.All(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load companies", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to load companies")
	}
	return companies, nil
}

// indexCompanies keys companies by their id as it appears in list items and unlocks.
func indexCompanies(companies []*model.Company) map[string]*model.Company {
	index := make(map[string]*model.Company, len(companies))
	for _, c := range companies {
		index[strconv.Itoa(c.ID)] = c
	}
	return index
}
