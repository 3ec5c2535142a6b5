package repository

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"github.com/pkg/errors"
)

// companyRange covers name through logo. Row 1 is the header.
const companyRange = TabDatabase + "!A:M"

type sheetsCompanyRepository struct {
	values sheet.Values
}

func NewSheetsCompanyRepository(values sheet.Values) CompanyRepository {
	return &sheetsCompanyRepository{values: values}
}

func (s *sheetsCompanyRepository) All(ctx context.Context) ([]*model.Company, error) {
	rows, err := s.values.Get(ctx, companyRange)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read companies")
	}
	if len(rows) < 2 {
		return []*model.Company{}, nil
	}

	companies := make([]*model.Company, 0, len(rows)-1)
	for i, r := range rows[1:] {
		if len(r) == 0 {
			continue
		}
		row := sheet.Row{Number: i + 2, Cells: r}
		companies = append(companies, &model.Company{
			ID:             i + 1,
			Name:           row.Get(0),
			Description:    row.Get(1),
			Country:        row.Get(2),
			Industry:       row.Get(3),
			SubIndustry:    row.Get(4),
			History:        parseNumber(row.Get(5)),
			BrandAwareness: parseNumber(row.Get(6)),
			Moat:           parseNumber(row.Get(7)),
			Size:           parseNumber(row.Get(8)),
			Innovation:     parseNumber(row.Get(9)),
			Total:          parseNumber(row.Get(10)),
			Website:        row.Get(11),
			Logo:           row.Get(12),
		})
	}

	return companies, nil
}
