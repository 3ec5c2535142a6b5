package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/analytics"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
)

type AnalyticsService struct {
	companies repository.CompanyRepository
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

func (a *AnalyticsService) Summary(ctx context.Context) (*analytics.Summary, *Error) {
	companies, serr := loadCompanies(ctx, a.companies)
	if serr != nil {
		return nil, serr
	}
	return analytics.Summarize(companies), nil
}

func (a *AnalyticsService) Bubbles(ctx context.Context) ([]analytics.Bubble, *Error) {
	companies, serr := loadCompanies(ctx, a.companies)
	if serr != nil {
		return nil, serr
	}
	return analytics.Bubbles(companies), nil
}

func (a *AnalyticsService) WithCompanyRepo(r repository.CompanyRepository) *AnalyticsService {
	a.companies = r
	return a
}
