package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/general_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// RegisterAuthRoutes sets up the public authentication routes on rg.
func RegisterAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	registerGoogleOAuthRoutes(auth, services)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user with a password and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or username/email already exists"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, errorMessages{
			Duplicate: "Username or email already exists",
			Fallback:  "Failed to register user",
		})
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome %s! Your account has been created.", user.FullName),
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user by username or email and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Login failed", slog.String("identifier", req.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondWithError(c, err, errorMessages{Fallback: "Login failed"})
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome back, %s!", user.FullName),
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}
