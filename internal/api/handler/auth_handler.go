package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/record-admin/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token exchanges the operator credentials for a JWT.
//
// @Summary      Issue an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Operator credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	if !h.authService.Enabled() {
		return echo.NewHTTPError(http.StatusNotFound, "authentication is disabled")
	}

	var req tokenRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		requestLog(c).Warn().Str("username", req.Username).Msg("login rejected")
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer"})
}
