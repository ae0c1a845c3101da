package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-system/internal/api/metrics"
	"github.com/inkpress/blog-system/internal/core/domain"
	"github.com/inkpress/blog-system/internal/core/ports"
)

// AuthHandler handles registration, login, and email verification.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns it with a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    result.User,
		Token:   result.Token,
	})
}

// Login verifies credentials and returns a fresh bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

// VerifyEmail redeems a verification link token. This endpoint is opened from
// a browser link, so both outcomes render a minimal HTML page, never JSON.
//
// @Summary      Verify email address
// @Tags         auth
// @Produce      html
// @Param        token  query  string  true  "Verification token"
// @Success      200
// @Failure      400
// @Router       /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	linkToken := c.QueryParam("token")
	if linkToken == "" {
		metrics.EmailVerificationsTotal.WithLabelValues("invalid").Inc()
		return c.HTML(http.StatusBadRequest, verifyFailurePage("The verification link is missing its token."))
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), linkToken); err != nil {
		result, reason := "invalid", "The verification link is invalid or has expired."
		if errors.Is(err, domain.ErrTokenConsumed) {
			result, reason = "used", "This verification link has already been used."
		}
		metrics.EmailVerificationsTotal.WithLabelValues(result).Inc()
		return c.HTML(http.StatusBadRequest, verifyFailurePage(reason))
	}

	metrics.EmailVerificationsTotal.WithLabelValues("ok").Inc()
	return c.HTML(http.StatusOK, verifySuccessPage)
}

const verifySuccessPage = `<!DOCTYPE html>
<html>
<head><title>Email Verified</title></head>
<body>
<h2>Email verified</h2>
<p>Your email address has been confirmed. You can close this page.</p>
</body>
</html>`

func verifyFailurePage(reason string) string {
	return `<!DOCTYPE html>
<html>
<head><title>Verification Failed</title></head>
<body>
<h2>Verification failed</h2>
<p>` + reason + `</p>
</body>
</html>`
}
