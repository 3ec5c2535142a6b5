package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
	"net/http"
)

func (h *Handler) GetUnlocked(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	ids, err := h.collection.Unlocked(e.Request().Context(), callerEmail(e))
	if err != nil {
		l.Error("failed to get unlocked companies", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		UnlockedCompanies []string `json:"unlockedCompanies"`
	}{UnlockedCompanies: ids})
}

func (h *Handler) Unlock(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		CompanyID CompanyID `json:"companyId" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Warn("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	if err := h.collection.Unlock(e.Request().Context(), callerEmail(e), string(req.CompanyID)); err != nil {
		l.Warn("failed to unlock company", zap.String("company_id", string(req.CompanyID)), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

func (h *Handler) OpenPack(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	res, err := h.collection.OpenPack(e.Request().Context(), callerEmail(e))
	if err != nil {
		l.Error("failed to open pack", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, res)
}

func (h *Handler) GetCollection(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	companies, err := h.collection.Collection(e.Request().Context(), callerEmail(e))
	if err != nil {
		l.Error("failed to get collection", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool             `json:"success"`
		Data    []*model.Company `json:"data"`
	}{Success: true, Data: companies})
}

// UpdateCollection is reserved; collections only grow through packs and unlocks.
func (h *Handler) UpdateCollection(e echo.Context) error {
	return h.transportError(e, service.NewError(service.ErrorCodeNotImplemented, "updating the collection is not supported"))
}

func (h *Handler) GetScrapbook(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	book, err := h.collection.Scrapbook(e.Request().Context(), callerEmail(e))
	if err != nil {
		l.Error("failed to get scrapbook", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, book)
}

func (h *Handler) SendEnquiry(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req model.Enquiry
	if err := h.decodeRequest(e, &req); err != nil {
		l.Warn("invalid enquiry", zap.Any("error", err))
		return h.transportError(e, err)
	}

	if err := h.enquiries.Send(e.Request().Context(), &req); err != nil {
		l.Error("failed to send enquiry", zap.Any("error", err))
		return e.JSON(http.StatusInternalServerError, enquiryResponse{Success: false, Message: err.Message})
	}

	return e.JSON(http.StatusOK, enquiryResponse{Success: true, Message: "Your query has been sent"})
}

type enquiryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
