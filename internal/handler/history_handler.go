package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rentier/internal/auth"
	"rentier/internal/model"
	"rentier/internal/repository"
	"rentier/internal/service"
)

// HistoryHandler handles ownership-scoped history retrieval and deletion.
type HistoryHandler struct {
	svc service.HistoryService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// HistoryResponse is one page (or the full set) of the user's entries with
// total-count metadata for pagination controls.
type HistoryResponse struct {
	Entries  []model.Entry `json:"entries"`
	Total    int64         `json:"total"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
}

// List godoc
// @Summary List the logged-in user's prediction history
// @Tags history
// @Produce json
// @Param page query int false "Page number (omit for the full set)"
// @Param page_size query int false "Entries per page"
// @Param sort query string false "Sort column" default(created)
// @Param desc query bool false "Descending order" default(true)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	session := auth.FromContext(c)

	params := repository.ListParams{
		Page:      intQuery(c, "page", 0),
		PageSize:  intQuery(c, "page_size", 0),
		SortField: c.QueryParam("sort"),
		Desc:      boolQuery(c, "desc", true),
	}

	entries, total, err := h.svc.List(c.Request().Context(), session.UserID, params)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, HistoryResponse{
		Entries:  entries,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// Get godoc
// @Summary Fetch a single history entry
// @Tags history
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} model.Entry
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /history/{id} [get]
func (h *HistoryHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	session := auth.FromContext(c)
	entry, err := h.svc.Get(c.Request().Context(), uint(id), session.UserID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a history entry
// @Description The only destructive operation: irreversible, atomic, owner only.
// @Tags history
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]uint
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /history/{id} [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	session := auth.FromContext(c)
	deleted, err := h.svc.Delete(c.Request().Context(), uint(id), session.UserID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]uint{"result": deleted})
}

func intQuery(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func boolQuery(c echo.Context, name string, def bool) bool {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
