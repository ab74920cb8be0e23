package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// ReviewHandler serves product reviews. Listing is public; writes require
// ownership, with deletes also open to moderators for content takedowns.
type ReviewHandler struct {
	reviewService ports.ReviewService
	reviews       ports.ReviewRepository
	authorizer    ports.Authorizer
	directory     ports.Directory
}

func NewReviewHandler(reviewService ports.ReviewService, reviews ports.ReviewRepository, authorizer ports.Authorizer, directory ports.Directory) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		reviews:       reviews,
		authorizer:    authorizer,
		directory:     directory,
	}
}

func (h *ReviewHandler) lookup(ctx context.Context, key ports.ResourceKey) (domain.Ownable, error) {
	return h.reviews.FindByID(ctx, key.ResourceID)
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
	// UserID lets an admin post on behalf of another user.
	UserID string `json:"user_id,omitempty"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type listReviewsResponse struct {
	Data       []*domain.Review   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ListByProduct returns a page of reviews for one product.
//
// @Summary      List reviews for a product
// @Tags         reviews
// @Produce      json
// @Param        id     path      string  true   "Product id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  listReviewsResponse
// @Failure      404    {object}  map[string]string
// @Router       /v1/products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.reviewService.ListByProduct(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReviewsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Create posts a review on a product for the effective user.
//
// @Summary      Review a product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Product id"
// @Param        body  body      createReviewRequest  true  "Rating and comment"
// @Success      201   {object}  domain.Review
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/products/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID, err := h.authorizer.ValidateEffectiveUser(c.Request().Context(), principal, req.UserID)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Create(c.Request().Context(), ports.CreateReviewInput{
		OwnerUserID: ownerID,
		ProductID:   c.Param("id"),
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Update edits a review, owner or admin only.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Review id"
// @Param        body  body      updateReviewRequest  true  "Rating and comment"
// @Success      200   {object}  domain.Review
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "review", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "review", res)
	}

	review, err := h.reviewService.Update(c.Request().Context(), res.Resource.(*domain.Review), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete removes a review. Owners and admins pass the ownership check;
// moderators may also delete, verified against the directory at request time.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Review id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	res, err := h.authorizer.VerifyOwnership(ctx, principal.UserID, "review", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		if res.Reason == ports.DenyForbidden {
			isModerator, roleErr := h.directory.HasRole(ctx, principal.UserID, domain.RoleModerator)
			if roleErr != nil {
				return roleErr
			}
			if isModerator {
				if err := h.reviewService.Delete(ctx, c.Param("id")); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			}
		}
		return denied(c, "review", res)
	}

	if err := h.reviewService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
