package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// ReviewHandler proxies review CRUD straight to the repository.
type ReviewHandler struct {
	reviews ports.ReviewRepository
}

func NewReviewHandler(reviews ports.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating" validate:"required,gt=0"`
	Comment string  `json:"comment"`
}

// Create handles POST /review.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id, err := h.reviews.Create(c.Request().Context(), &domain.Review{
		Email:   req.Email,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviews.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByEmail handles GET /reviews/:email.
func (h *ReviewHandler) ListByEmail(c echo.Context) error {
	reviews, err := h.reviews.FindByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// ToggleStatus handles PATCH /review/:id. The read-then-write pair below is
// not atomic; concurrent toggles of the same review can lose an update.
func (h *ReviewHandler) ToggleStatus(c echo.Context) error {
	id := c.Param("id")

	review, err := h.reviews.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.reviews.SetStatus(c.Request().Context(), id, !review.Status); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"status": !review.Status})
}

// Delete handles DELETE /review/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviews.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
