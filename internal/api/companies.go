package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/catalog"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

func (h *Handler) ListCompanies(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	companies, err := h.companies.All(e.Request().Context())
	if err != nil {
		l.Error("failed to list companies", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, companies)
}

func (h *Handler) BrowseCompanies(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var q catalog.Query
	if err := ProcessRequest(e, &q, parseSearch, parseFacetFilters, parseTotalRange, parseSorting, parsePaging); err != nil {
		l.Warn("invalid browse query", zap.Any("error", err))
		return h.transportError(e, err)
	}

	page, err := h.companies.Browse(e.Request().Context(), q)
	if err != nil {
		l.Error("failed to browse companies", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, page)
}

func (h *Handler) CompanyFacets(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	facets, err := h.companies.Facets(e.Request().Context(), catalog.FacetSearch{
		Country:     e.QueryParam("countrySearch"),
		Industry:    e.QueryParam("industrySearch"),
		SubIndustry: e.QueryParam("subIndustrySearch"),
	})
	if err != nil {
		l.Error("failed to get facets", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, facets)
}

func (h *Handler) SearchCompanies(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	// A non-numeric limit falls back to the default.
	limit, _ := strconv.Atoi(e.QueryParam("limit"))

	res, err := h.companies.Search(e.Request().Context(), e.QueryParam("q"), limit)
	if err != nil {
		l.Error("failed to search companies", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, res)
}

func (h *Handler) GetCompany(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	id, convErr := strconv.Atoi(e.Param("id"))
	if convErr != nil {
		return h.transportError(e, service.NewError(service.ErrorCodeNotFound, "company not found"))
	}

	company, err := h.companies.Get(e.Request().Context(), id)
	if err != nil {
		l.Info("failed to get company", zap.Int("company_id", id), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, company)
}

func (h *Handler) GetAnalytics(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	summary, err := h.analytics.Summary(e.Request().Context())
	if err != nil {
		l.Error("failed to compute analytics", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, summary)
}

func (h *Handler) GetBubbles(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	bubbles, err := h.analytics.Bubbles(e.Request().Context())
	if err != nil {
		l.Error("failed to compute bubbles", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, bubbles)
}
