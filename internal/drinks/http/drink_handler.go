// Package http provides HTTP handlers for the drink menu.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/t-lanigan/coffee-shop/internal/auth/http"
	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
	"github.com/t-lanigan/coffee-shop/internal/drinks/http/dto"
	drinksUseCase "github.com/t-lanigan/coffee-shop/internal/drinks/usecase"
	"github.com/t-lanigan/coffee-shop/internal/httputil"
	customValidation "github.com/t-lanigan/coffee-shop/internal/validation"
)

// DrinkHandler handles HTTP requests for the drink menu.
type DrinkHandler struct {
	drinkUseCase drinksUseCase.DrinkUseCase
	logger       *slog.Logger
}

// NewDrinkHandler creates a new drink handler with required dependencies.
func NewDrinkHandler(drinkUseCase drinksUseCase.DrinkUseCase, logger *slog.Logger) *DrinkHandler {
	return &DrinkHandler{
		drinkUseCase: drinkUseCase,
		logger:       logger,
	}
}

// ListHandler lists the menu in the short representation.
// GET /drinks - Public.
func (h *DrinkHandler) ListHandler(c *gin.Context) {
	drinks, err := h.drinkUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToShortResponse(drinks))
}

// ListDetailHandler lists the menu with full recipes.
// GET /drinks-detail - Requires get:drinks-detail.
func (h *DrinkHandler) ListDetailHandler(c *gin.Context) {
	drinks, err := h.drinkUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drinks...))
}

// CreateHandler adds a drink to the menu.
// POST /drinks - Requires post:drinks.
func (h *DrinkHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateDrinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	drink, err := h.drinkUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logChange(c, "drink created", drink.ID)
	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drink))
}

// UpdateHandler partially updates a drink.
// PATCH /drinks/:id - Requires patch:drinks.
func (h *DrinkHandler) UpdateHandler(c *gin.Context) {
	drinkID, ok := h.parseDrinkID(c)
	if !ok {
		return
	}

	var req dto.UpdateDrinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	drink, err := h.drinkUseCase.Update(c.Request.Context(), drinkID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logChange(c, "drink updated", drink.ID)
	c.JSON(http.StatusOK, dto.MapDrinksToLongResponse(drink))
}

// DeleteHandler removes a drink.
// DELETE /drinks/:id - Requires delete:drinks.
func (h *DrinkHandler) DeleteHandler(c *gin.Context) {
	drinkID, ok := h.parseDrinkID(c)
	if !ok {
		return
	}

	if err := h.drinkUseCase.Delete(c.Request.Context(), drinkID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logChange(c, "drink deleted", drinkID)
	c.JSON(http.StatusOK, dto.DeleteDrinkResponse{Success: true, Delete: drinkID.String()})
}

// parseDrinkID reads the :id parameter. An ID that is not a UUID cannot name a drink,
// so it is answered with 404.
func (h *DrinkHandler) parseDrinkID(c *gin.Context) (uuid.UUID, bool) {
	drinkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, drinksDomain.ErrDrinkNotFound, h.logger)
		return uuid.Nil, false
	}
	return drinkID, true
}

func (h *DrinkHandler) logChange(c *gin.Context, msg string, drinkID uuid.UUID) {
	attrs := []any{slog.String("drink_id", drinkID.String())}
	if claims, ok := authHTTP.GetClaims(c.Request.Context()); ok {
		attrs = append(attrs, slog.String("subject", claims.Subject))
	}
	h.logger.Info(msg, attrs...)
}
