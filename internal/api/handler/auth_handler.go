package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/api/metrics"
	"github.com/deadeye/laserworks/internal/api/middleware"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/token"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Encode(s token.Subject) (string, error)
}

type AuthHandler struct {
	users    ports.UserManager
	verifier ports.Verifier
	tokens   TokenIssuer
	log      zerolog.Logger
}

func NewAuthHandler(users ports.UserManager, verifier ports.Verifier, tokens TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, verifier: verifier, tokens: tokens, log: logger}
}

// Token exchanges credentials for a bearer token.
//
// @Summary      Issue a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	tkn, err := h.tokens.Encode(token.SubjectOf(user))
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()

	return c.JSON(http.StatusOK, tokenResponse{Token: tkn})
}

// Register creates a regular account, returns its token and mails a
// confirmation link. A failure to queue the mail does not fail the signup.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.Register(ctx, ports.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}

	tkn, err := h.tokens.Encode(token.SubjectOf(user))
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.WithLabelValues("register").Inc()

	if err := h.verifier.SendConfirmation(ctx, user.Username, user.Email); err != nil {
		h.log.Error().Err(err).Str("username", user.Username).Msg("confirmation email not queued")
	}

	return c.JSON(http.StatusCreated, tokenResponse{Token: tkn})
}

// Confirm consumes an emailed confirmation token and marks its user verified.
//
// @Summary      Confirm an email address
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Confirmation token"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /auth/confirmation/{token} [get]
func (h *AuthHandler) Confirm(c echo.Context) error {
	user, err := h.verifier.Confirm(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// SendVerification mails a fresh confirmation link.
//
// @Summary      Resend the confirmation email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                   true  "Username"
// @Param        body      body      sendVerificationRequest  true  "Address to confirm"
// @Success      200       {object}  successResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /auth/send-verification/{username} [post]
func (h *AuthHandler) SendVerification(c echo.Context) error {
	var req sendVerificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.verifier.SendConfirmation(c.Request().Context(), c.Param("username"), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Me returns the identity the caller's token carries.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, identityResponse{Identity: middleware.IdentityOf(c)})
}
