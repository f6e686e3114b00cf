package handlers

import (
	"errors"
	"net/http"

	"coachbar/services/review"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type addReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// AddReviewHandler records the caller's rating of a listing.
func (h *HandlerBundle) AddReviewHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	created, err := h.Reviews.Add(c.Request.Context(), c.Param("id"), userID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating), errors.Is(err, review.ErrOwnListing):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		default:
			getLogger(c).Error("Failed to add review", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to add review", "")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListingReviewsHandler lists every review for a listing.
func (h *HandlerBundle) ListingReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.ForListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to list reviews", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list reviews", "")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListingSummaryHandler returns the rating aggregate shown on profile screens.
func (h *HandlerBundle) ListingSummaryHandler(c *gin.Context) {
	summary, err := h.Reviews.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to build listing summary", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to build listing summary", "")
		return
	}
	c.JSON(http.StatusOK, summary)
}
