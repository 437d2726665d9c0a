package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/api/middleware"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Signup registers a client account.
//
// @Summary      Sign up
// @Description  Creates the credential and the client profile. When email confirmation is enabled no session is returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  signupResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.sessions.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	confirmation := "none"
	if res.NeedsConfirmation {
		confirmation = "required"
	}
	metrics.SignupsTotal.WithLabelValues(confirmation).Inc()

	return c.JSON(http.StatusCreated, signupResponse{
		NeedsConfirmation: res.NeedsConfirmation,
		Auth:              toAuthResponse(res.Login),
	})
}

// Login authenticates with email and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Confirm redeems an email confirmation token and signs the user in.
//
// @Summary      Confirm email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Confirmation token"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/confirm [post]
func (h *AuthHandler) Confirm(c echo.Context) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.sessions.ConfirmSignup(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// ForgotPassword sends a reset link. The response is the same whether or not
// the email is registered.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.sessions.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "if the email is registered, a reset link has been sent"})
}

// ResetPassword sets a new password with a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.sessions.ResetPassword(c.Request().Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// Session returns the caller's resolved session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.SessionFrom(c))
}

// Logout revokes the access token. Local session state is cleared even when
// the revoke fails, so this always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	a, _ := actor(c)
	h.sessions.Logout(c.Request().Context(), middleware.TokenFrom(c), a.ID)
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword updates the signed-in user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "New password and confirmation"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err := h.sessions.ChangePassword(c.Request().Context(), middleware.TokenFrom(c), req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// UpdateProfile edits the caller's own name, company, phone or avatar. Email
// and role cannot be changed here.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := toProfilePatch(req)
	if patch.Empty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	p, err := h.sessions.UpdateProfile(c.Request().Context(), a.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Navigate runs the route gate for a browser path.
//
// @Summary      Route gate decision
// @Tags         profile
// @Produce      json
// @Param        path  query     string  true  "Browser path, e.g. /admin/clients"
// @Success      200   {object}  navigateResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/navigate [get]
func (h *AuthHandler) Navigate(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	sess := middleware.SessionFrom(c)
	decision, ok := domain.Navigate(sess, path)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown route")
	}
	return c.JSON(http.StatusOK, navigateResponse{
		Path:     path,
		Decision: decision,
		Session:  navigateSession{IsAuthenticated: sess.IsAuthenticated, Role: sess.Role()},
	})
}
