package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/limchewyew/CompanyDirectory/internal/auth"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type Handler struct {
	companies  *service.CompanyService
	analytics  *service.AnalyticsService
	lists      *service.ListService
	users      *service.UserService
	collection *service.CollectionService
	enquiries  *service.EnquiryService

	oauth      auth.Provider
	sessionTTL time.Duration
	secure     bool

	healthChecker HealthChecker
	metrics       *Metrics

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger:     logger,
		sessionTTL: 30 * 24 * time.Hour,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithMetrics(m *Metrics) *Handler {
	h.metrics = m
	return h
}

func (h *Handler) WithCompanyService(s *service.CompanyService) *Handler {
	h.companies = s
	return h
}

func (h *Handler) WithAnalyticsService(s *service.AnalyticsService) *Handler {
	h.analytics = s
	return h
}

func (h *Handler) WithListService(s *service.ListService) *Handler {
	h.lists = s
	return h
}

func (h *Handler) WithUserService(s *service.UserService) *Handler {
	h.users = s
	return h
}

func (h *Handler) WithCollectionService(s *service.CollectionService) *Handler {
	h.collection = s
	return h
}

func (h *Handler) WithEnquiryService(s *service.EnquiryService) *Handler {
	h.enquiries = s
	return h
}

// WithOAuth enables the /auth login flow. secure marks cookies Secure.
func (h *Handler) WithOAuth(p auth.Provider, sessionTTL time.Duration, secure bool) *Handler {
	h.oauth = p
	if sessionTTL > 0 {
		h.sessionTTL = sessionTTL
	}
	h.secure = secure
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if h.metrics != nil {
		e.Use(h.metrics.Middleware())
		e.GET("/metrics", h.metrics.Handler())
	}
	e.Use(SessionMiddleware())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	api := e.Group("/api")

	api.GET("/companies", h.ListCompanies)
	api.GET("/companies/browse", h.BrowseCompanies)
	api.GET("/companies/facets", h.CompanyFacets)
	api.GET("/companies/search", h.SearchCompanies)
	api.GET("/companies/:id", h.GetCompany)

	api.GET("/analytics", h.GetAnalytics)
	api.GET("/analytics/bubbles", h.GetBubbles)
	api.POST("/analytics", h.SendEnquiry)
	api.POST("/enquiry", h.SendEnquiry)

	api.GET("/lists", h.GetLists)
	api.GET("/lists/:id", h.GetList)

	signedIn := RequireSession()

	api.POST("/lists", h.CreateList, signedIn)
	api.DELETE("/lists/:id", h.DeleteList, signedIn)
	api.POST("/lists/:id/items", h.AddListItem, signedIn)
	api.DELETE("/lists/:id/items/:companyId", h.RemoveListItem, signedIn)

	api.GET("/unlock", h.GetUnlocked, signedIn)
	api.POST("/unlock", h.Unlock, signedIn)
	api.POST("/packs/open", h.OpenPack, signedIn)
	api.GET("/collection", h.GetCollection, signedIn)
	api.POST("/collection", h.UpdateCollection, signedIn)
	api.GET("/scrapbook", h.GetScrapbook, signedIn)

	authGroup := e.Group("/auth")
	authGroup.GET("/login", h.Login)
	authGroup.GET("/callback", h.Callback)
	authGroup.GET("/session", h.GetSession)
	authGroup.POST("/logout", h.Logout)
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}

	if err := e.Validate(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, response)
	case service.ErrorCodeForbidden:
		return e.JSON(http.StatusForbidden, response)
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeNotImplemented:
		return e.JSON(http.StatusNotImplemented, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}
