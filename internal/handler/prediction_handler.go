package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rentier/internal/auth"
	"rentier/internal/model"
	"rentier/internal/service"
)

// PredictionHandler handles the prediction pipeline endpoint and the form
// catalog for the rendering layer.
type PredictionHandler struct {
	svc service.PredictionService
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(svc service.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// PredictRequest carries the candidate feature values for one prediction.
// Integer-valued fields are typed int so a fractional submission fails at
// bind time; domain rules re-check ranges and closed sets on top.
type PredictRequest struct {
	Beds          int      `json:"beds" validate:"min=0"`
	Bathrooms     float64  `json:"bathrooms" validate:"min=0"`
	Accomodates   int      `json:"accomodates" validate:"required,min=1"`
	MinimumNights int      `json:"minimum_nights" validate:"min=0"`
	RoomType      string   `json:"room_type" validate:"required"`
	Neighborhood  string   `json:"neighborhood" validate:"required"`
	Wifi          bool     `json:"wifi"`
	Elevator      bool     `json:"elevator"`
	Pool          bool     `json:"pool"`
	ActualPrice   *float64 `json:"actual_price" validate:"omitempty,gt=0"`
	Link          *string  `json:"link" validate:"omitempty,url"`
}

// CatalogResponse lists the closed sets the prediction form is built from.
type CatalogResponse struct {
	RoomTypes     []string `json:"room_types"`
	Neighborhoods []string `json:"neighborhoods"`
}

// Predict godoc
// @Summary Run a prediction and record it
// @Description Validates the features, invokes the price estimator and stores
// @Description one immutable history entry for the logged-in user.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Listing features"
// @Success 200 {object} model.Entry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /predict [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session := auth.FromContext(c)
	entry, err := h.svc.Predict(c.Request().Context(), session.UserID, model.EntryInput{
		Beds:          req.Beds,
		Bathrooms:     req.Bathrooms,
		Accomodates:   req.Accomodates,
		MinimumNights: req.MinimumNights,
		RoomType:      req.RoomType,
		Neighborhood:  req.Neighborhood,
		Wifi:          req.Wifi,
		Elevator:      req.Elevator,
		Pool:          req.Pool,
		ActualPrice:   req.ActualPrice,
		Link:          req.Link,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Catalog godoc
// @Summary Closed sets for the prediction form
// @Tags predictions
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /predict [get]
func (h *PredictionHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, CatalogResponse{
		RoomTypes:     model.RoomTypes,
		Neighborhoods: model.Neighborhoods,
	})
}
