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

// GoogleOAuthHandler handles Google OAuth related requests.
// It depends on the Google OAuth service, user service, and token service.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// GoogleLoginURLResponse carries the consent screen URL and the CSRF state embedded in it.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// LoginURLGoogle returns the Google consent screen URL for the frontend to redirect to.
// @Summary Google login URL
// @Tags oauth
// @Produce  json
// @Success 200 {object} GoogleLoginURLResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google/url [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google login.")
		c.JSON(appErr.Code, appErr)
		return
	}
	c.JSON(http.StatusOK, GoogleLoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// It exchanges the code, finds or creates the user and returns an application JWT.
// @Summary Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code or email already registered"
// @Failure 401 {object} dto.ErrorResponse "Google rejected the code or ID token"
// @Failure 504 {object} dto.ErrorResponse "Failed to communicate with Google"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorContext(ctx, "Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	identity, err := h.googleOAuthService.ExchangeCode(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		if errors.Is(err, apperrors.ErrUnauthorized) {
			appErr = apperrors.NewUnauthorizedError("Invalid or expired authorization code.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}
	logger.InfoContext(ctx, "Google identity verified", slog.String("google_user_id", identity.Subject))

	user, err := h.userService.FindOrCreateOAuthUser(ctx, *identity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create or get OAuth user", slog.String("error", err.Error()), slog.String("google_user_id", identity.Subject))
		appErr := apperrors.NewInternalServerError("Failed to process user authentication.")
		if errors.Is(err, apperrors.ErrDuplicate) {
			appErr = apperrors.NewBadRequestError("An account with this email already exists. Sign in with your password.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.InfoContext(ctx, "Issued access token via Google OAuth", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome back, %s!", user.FullName),
		Token:   accessToken,
		User:    dto.ToUserResponse(user),
	})
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/url", h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}
