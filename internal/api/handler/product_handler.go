package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/core/validation"
)

// ProductHandler handles HTTP requests for product records.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Description  Case-insensitive search on name, description and category. Stored order.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Search term"
// @Success      200  {array}   productResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), ports.ListQuery{Search: c.QueryParam("q")})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Create handles POST /v1/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	form := req.form()
	if err := validate(c, "product", &form); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), form.Fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// Replace handles PUT /v1/products/:id. Every field is taken from the body;
// an absent image clears the stored image.
//
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Replace(c echo.Context) error {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	form := req.form()
	if err := validate(c, "product", &form); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), form.Patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// Patch handles PATCH /v1/products/:id. Sent fields are checked against the
// stored record so the result is always a valid product.
//
// @Summary      Update some product fields
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Product id"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorResponse
// @Router       /v1/products/{id} [patch]
func (h *ProductHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}
	form := validation.ProductFormOf(current)
	req.overlay(&form)
	if err := validate(c, "product", &form); err != nil {
		return err
	}

	p, err := h.service.Update(ctx, id, req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// Delete handles DELETE /v1/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	ok, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// AttachImage handles PUT /v1/products/:id/image. Files that are not images
// are ignored and the product is returned unchanged.
//
// @Summary      Upload a product image
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Product id"
// @Param        file  formData  file    true  "Image file"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Router       /v1/products/{id}/image [put]
func (h *ProductHandler) AttachImage(c echo.Context) error {
	up, closer, err := formUpload(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	p, err := h.service.AttachImage(c.Request().Context(), c.Param("id"), up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

// ClearImage handles DELETE /v1/products/:id/image.
//
// @Summary      Remove a product image
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id}/image [delete]
func (h *ProductHandler) ClearImage(c echo.Context) error {
	p, err := h.service.ClearImage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}
