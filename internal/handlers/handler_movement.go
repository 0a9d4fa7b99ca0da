package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/middleware"
)

// movementHandler handles HTTP requests related to ledger movements.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

// registerMovementRoutes registers routes related to movements.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:id", h.getMovement)
		movements.PUT("/:id", h.updateMovement)
		movements.DELETE("/:id", h.deleteMovement)
	}
}

// createMovement godoc
// @Summary Record a movement
// @Description Records a deposit or withdrawal and applies it to the account balance atomically.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement details"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient funds"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), req)
	if err != nil {
		h.renderMovementError(c, err, "Failed to create movement")
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Lists all recorded movements ordered by date.
// @Tags movements
// @Produce json
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	movements, err := h.movementService.ListMovements(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list movements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements))
}

// getMovement godoc
// @Summary Get a movement by ID
// @Description Retrieves a single movement.
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	movementID := c.Param("id")

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), movementID)
	if err != nil {
		h.renderMovementError(c, err, "Failed to retrieve movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Update a movement date
// @Description Changes the movement's date. Amount, kind and account are immutable.
// @Tags movements
// @Accept json
// @Produce json
// @Param id path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "New date"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	date, err := req.ParsedDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	movement, err := h.movementService.UpdateMovementDate(c.Request.Context(), movementID, date)
	if err != nil {
		h.renderMovementError(c, err, "Failed to update movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Removes a movement and reverses its balance effect. Deleting an absent movement succeeds.
// @Tags movements
// @Param id path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 409 {object} ErrorResponse "Strict reversal would overdraw the account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	movementID := c.Param("id")

	if err := h.movementService.DeleteMovement(c.Request.Context(), movementID); err != nil {
		h.renderMovementError(c, err, "Failed to delete movement")
		return
	}
	c.Status(http.StatusNoContent)
}

// renderMovementError maps service errors to HTTP responses. Insufficient
// funds renders as a 400 alongside validation failures.
func (h *movementHandler) renderMovementError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
