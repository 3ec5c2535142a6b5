package api

import (
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
	"net/http"
)

func (h *Handler) GetLists(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	lists, err := h.lists.Visible(e.Request().Context(), callerEmail(e))
	if err != nil {
		l.Error("failed to get lists", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, lists)
}

func (h *Handler) GetList(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	listID := e.Param("id")

	list, err := h.lists.Get(e.Request().Context(), listID, callerEmail(e))
	if err != nil {
		l.Info("failed to get list", zap.String("list_id", listID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, list)
}

func (h *Handler) CreateList(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Name     string `json:"name" validate:"required"`
		IsPublic bool   `json:"isPublic"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Warn("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	listID, err := h.lists.Create(e.Request().Context(), callerEmail(e), req.Name, req.IsPublic)
	if err != nil {
		l.Error("failed to create list", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		ID string `json:"id"`
	}{ID: listID})
}

func (h *Handler) DeleteList(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	listID := e.Param("id")

	if err := h.lists.Delete(e.Request().Context(), listID, callerEmail(e)); err != nil {
		l.Warn("failed to delete list", zap.String("list_id", listID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, okResponse{OK: true})
}

func (h *Handler) AddListItem(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	listID := e.Param("id")

	var req struct {
		CompanyID CompanyID `json:"companyId" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Warn("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	if err := h.lists.AddItem(e.Request().Context(), listID, string(req.CompanyID), callerEmail(e)); err != nil {
		l.Warn("failed to add list item",
			zap.String("list_id", listID),
			zap.String("company_id", string(req.CompanyID)),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, okResponse{OK: true})
}

func (h *Handler) RemoveListItem(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	listID := e.Param("id")
	companyID := e.Param("companyId")

	if err := h.lists.RemoveItem(e.Request().Context(), listID, companyID, callerEmail(e)); err != nil {
		l.Warn("failed to remove list item",
			zap.String("list_id", listID),
			zap.String("company_id", companyID),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, okResponse{OK: true})
}
