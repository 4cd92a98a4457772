package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewManager
}

func NewReviewHandler(reviews ports.ReviewManager) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Get
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId  path      int  true  "Review ID"
// @Success      200       {object}  reviewResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}
	review, err := h.reviews.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewResponse{Review: review})
}

// Add posts a review as the user in the path. The body's userId must be
// that user's id.
//
// @Summary      Review a service
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string            true  "Username"
// @Param        body      body      reviewAddRequest  true  "Review"
// @Success      201       {object}  reviewResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{username} [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	var req reviewAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Add(c.Request().Context(), c.Param("username"), ports.AddReviewInput{
		UserID:     req.UserID,
		ServiceID:  req.ServiceID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reviewResponse{Review: review})
}

// Update
//
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      int                  true  "Review ID"
// @Param        username  path      string               true  "Author"
// @Param        body      body      reviewUpdateRequest  true  "Fields to change"
// @Success      200       {object}  reviewResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId}/{username} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}
	var req reviewUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), id, c.Param("username"), ports.ReviewUpdate{
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewResponse{Review: review})
}

// Delete
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      int     true  "Review ID"
// @Param        username  path      string  true  "Author"
// @Success      200       {object}  deletedResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId}/{username} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}
	if err := h.reviews.Remove(c.Request().Context(), id, c.Param("username")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: strconv.FormatInt(id, 10)})
}
