package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/catalog"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"strconv"
	"strings"
)

// ProcessRequest runs each step in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) *service.Error) *service.Error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func parseSearch(e echo.Context, q *catalog.Query) *service.Error {
	q.Search = strings.TrimSpace(e.QueryParam("q"))
	return nil
}

func parseFacetFilters(e echo.Context, q *catalog.Query) *service.Error {
	params := e.QueryParams()
	q.Countries = nonEmpty(params["country"])
	q.Industries = nonEmpty(params["industry"])
	q.SubIndustries = nonEmpty(params["subIndustry"])
	return nil
}

func parseTotalRange(e echo.Context, q *catalog.Query) *service.Error {
	var err *service.Error
	if q.TotalMin, err = floatParam(e, "totalMin"); err != nil {
		return err
	}
	if q.TotalMax, err = floatParam(e, "totalMax"); err != nil {
		return err
	}
	return nil
}

func parseSorting(e echo.Context, q *catalog.Query) *service.Error {
	q.SortBy = catalog.SortField(e.QueryParam("sortBy"))
	q.Order = catalog.Order(strings.ToLower(e.QueryParam("order")))
	return nil
}

func parsePaging(e echo.Context, q *catalog.Query) *service.Error {
	var err *service.Error
	if q.Page, err = intParam(e, "page"); err != nil {
		return err
	}
	if q.PageSize, err = intParam(e, "pageSize"); err != nil {
		return err
	}
	return nil
}

func floatParam(e echo.Context, name string) (*float64, *service.Error) {
	raw := strings.TrimSpace(e.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, service.NewError(service.ErrorCodeInvalidBody, name+" must be a number")
	}
	return &f, nil
}

func intParam(e echo.Context, name string) (int, *service.Error) {
	raw := strings.TrimSpace(e.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewError(service.ErrorCodeInvalidBody, name+" must be an integer")
	}
	return n, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
