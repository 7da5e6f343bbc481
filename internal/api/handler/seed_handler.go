package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/record-admin/internal/core/ports"
)

type SeedHandler struct {
	seeder ports.Seeder
}

func NewSeedHandler(seeder ports.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed handles POST /v1/seed.
//
// @Summary      Load sample data
// @Description  Seeds every collection that has never been written. Returns the seeded collection names.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  seedResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	seeded, err := h.seeder.InitializeSampleData(c.Request().Context())
	if err != nil {
		return err
	}
	if seeded == nil {
		seeded = []string{}
	}
	return c.JSON(http.StatusOK, seedResponse{Seeded: seeded})
}
