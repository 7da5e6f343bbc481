package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/core/validation"
)

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Description  Case-insensitive search on name, email and role. Stored order.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Search term"
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), ports.ListQuery{Search: c.QueryParam("q")})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User fields"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	form := req.form()
	if err := validate(c, "user", &form); err != nil {
		return err
	}

	u, err := h.service.Create(c.Request().Context(), form.Fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Replace handles PUT /v1/users/:id. Every field is taken from the body;
// an absent avatar clears the stored one.
//
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      userRequest  true  "User fields"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Replace(c echo.Context) error {
	var req userRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	form := req.form()
	if err := validate(c, "user", &form); err != nil {
		return err
	}

	u, err := h.service.Update(c.Request().Context(), c.Param("id"), form.Patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Patch handles PATCH /v1/users/:id. Sent fields are checked against the
// stored record so the result is always a valid user.
//
// @Summary      Update some user fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      userRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req userRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}
	form := validation.UserFormOf(current)
	req.overlay(&form)
	if err := validate(c, "user", &form); err != nil {
		return err
	}

	u, err := h.service.Update(ctx, id, req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	ok, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// AttachAvatar handles PUT /v1/users/:id/avatar. Files that are not images
// are ignored and the user is returned unchanged.
//
// @Summary      Upload a user avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User id"
// @Param        file  formData  file    true  "Image file"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Router       /v1/users/{id}/avatar [put]
func (h *UserHandler) AttachAvatar(c echo.Context) error {
	up, closer, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	u, err := h.service.AttachAvatar(c.Request().Context(), c.Param("id"), up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// ClearAvatar handles DELETE /v1/users/:id/avatar.
//
// @Summary      Remove a user avatar
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/avatar [delete]
func (h *UserHandler) ClearAvatar(c echo.Context) error {
	u, err := h.service.ClearAvatar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
