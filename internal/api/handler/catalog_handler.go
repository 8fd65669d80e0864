package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// CatalogHandler proxies service catalog CRUD straight to the repository.
// There is no domain logic here and none belongs here.
type CatalogHandler struct {
	services ports.ServiceRepository
}

func NewCatalogHandler(services ports.ServiceRepository) *CatalogHandler {
	return &CatalogHandler{services: services}
}

// Create handles POST /services.
func (h *CatalogHandler) Create(c echo.Context) error {
	var svc domain.Service
	if err := c.Bind(&svc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	svc.ID = ""

	id, err := h.services.Create(c.Request().Context(), &svc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /services.
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.services.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// Get handles GET /services/:id.
func (h *CatalogHandler) Get(c echo.Context) error {
	svc, err := h.services.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// Delete handles DELETE /services/:id.
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.services.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
