package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/middleware"
	"github.com/ledgerhouse/banking-backoffice/internal/platform/config"
	"github.com/ledgerhouse/banking-backoffice/internal/utils"
)

// authHandler handles registration and login.
type authHandler struct {
	ownerService portssvc.OwnerSvcFacade
	jwtSecret    string
	jwtDuration  time.Duration
	jwtIssuer    string
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(os portssvc.OwnerSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		ownerService: os,
		jwtSecret:    cfg.JWTSecret,
		jwtDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, ownerService portssvc.OwnerSvcFacade) {
	h := newAuthHandler(ownerService, cfg)

	// Rate limit: 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/register", h.register)
	}
}

// register godoc
// @Summary Register a new owner
// @Description Registers a new account owner with credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param owner body dto.RegisterRequest true "Owner details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email or tax ID already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	owner, err := h.ownerService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to register owner", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register owner"})
		}
		return
	}

	token, err := utils.GenerateJWT(owner.OwnerID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate JWT for new owner", slog.String("owner_id", owner.OwnerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		OwnerID:   owner.OwnerID,
		Name:      owner.Name,
		Email:     owner.Email,
	})
}

// login godoc
// @Summary Owner login
// @Description Authenticates an owner and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	owner, err := h.ownerService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		} else {
			logger.Error("Failed to authenticate owner", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		}
		return
	}

	token, err := utils.GenerateJWT(owner.OwnerID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate JWT", slog.String("owner_id", owner.OwnerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("Owner logged in", slog.String("owner_id", owner.OwnerID))
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		OwnerID:   owner.OwnerID,
		Name:      owner.Name,
		Email:     owner.Email,
	})
}
