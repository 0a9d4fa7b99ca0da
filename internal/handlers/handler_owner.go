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

// ownerHandler handles HTTP requests related to owners.
type ownerHandler struct {
	ownerService portssvc.OwnerSvcFacade
}

func newOwnerHandler(os portssvc.OwnerSvcFacade) *ownerHandler {
	return &ownerHandler{ownerService: os}
}

// registerOwnerRoutes registers routes related to owners.
func registerOwnerRoutes(rg *gin.RouterGroup, ownerService portssvc.OwnerSvcFacade) {
	h := newOwnerHandler(ownerService)

	owners := rg.Group("/owners")
	{
		owners.GET("", h.listOwners)
		owners.GET("/:id", h.getOwner)
		owners.PUT("/:id", h.updateOwner)
		owners.DELETE("/:id", h.deleteOwner)
	}
}

// listOwners godoc
// @Summary List owners
// @Description Lists all registered owners.
// @Tags owners
// @Produce json
// @Success 200 {object} dto.ListOwnersResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /owners [get]
func (h *ownerHandler) listOwners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owners, err := h.ownerService.ListOwners(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list owners", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list owners"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListOwnersResponse(owners))
}

// getOwner godoc
// @Summary Get an owner by ID
// @Description Retrieves a single owner.
// @Tags owners
// @Produce json
// @Param id path string true "Owner ID"
// @Success 200 {object} dto.OwnerResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /owners/{id} [get]
func (h *ownerHandler) getOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("id")

	owner, err := h.ownerService.GetOwnerByID(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Owner not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to get owner", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve owner"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToOwnerResponse(owner))
}

// updateOwner godoc
// @Summary Update an owner
// @Description Updates an owner's name, tax ID or address.
// @Tags owners
// @Accept json
// @Produce json
// @Param id path string true "Owner ID"
// @Param owner body dto.UpdateOwnerRequest true "Fields to update"
// @Success 200 {object} dto.OwnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Tax ID already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /owners/{id} [put]
func (h *ownerHandler) updateOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("id")

	var req dto.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOwner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	owner, err := h.ownerService.UpdateOwner(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Owner not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update owner", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update owner"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToOwnerResponse(owner))
}

// deleteOwner godoc
// @Summary Delete an owner
// @Description Deletes an owner that has no accounts.
// @Tags owners
// @Param id path string true "Owner ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Owner still has accounts"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /owners/{id} [delete]
func (h *ownerHandler) deleteOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("id")

	if err := h.ownerService.DeleteOwner(c.Request.Context(), ownerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Owner not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to delete owner", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete owner"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
