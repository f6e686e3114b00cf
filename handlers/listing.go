package handlers

import (
	"errors"
	"net/http"

	"coachbar/services/listing"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type listingRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId"`
	ImageURL    string  `json:"imageUrl"`
}

// CreateListingHandler creates a listing owned by the caller.
func (h *HandlerBundle) CreateListingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	created, err := h.Listings.Create(c.Request.Context(), listing.ListingInput{
		UserID:      userID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrMissingName),
			errors.Is(err, listing.ErrUnknownCategory),
			errors.Is(err, listing.ErrCategoryTaken):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		default:
			getLogger(c).Error("Failed to create listing", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create listing", "")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetListingHandler returns one listing.
func (h *HandlerBundle) GetListingHandler(c *gin.Context) {
	found, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Listing not found", "")
		return
	}
	c.JSON(http.StatusOK, found)
}

// CategoryListingsHandler lists listings filed under a category.
func (h *HandlerBundle) CategoryListingsHandler(c *gin.Context) {
	listings, err := h.Listings.ByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to list category listings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list listings", "")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// MyListingsHandler lists the caller's listings.
func (h *HandlerBundle) MyListingsHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	listings, err := h.Listings.ByOwner(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list own listings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list listings", "")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// UpdateListingHandler applies editable fields after an ownership check.
func (h *HandlerBundle) UpdateListingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	updated, err := h.Listings.Update(c.Request.Context(), c.Param("id"), userID, listing.ListingInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, listing.ErrNotOwner) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to update listing", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update listing", "")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteListingHandler removes a listing after an ownership check.
func (h *HandlerBundle) DeleteListingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Listings.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, listing.ErrNotOwner) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to delete listing", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete listing", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}

// CategoriesHandler returns the fixed category catalogue.
func (h *HandlerBundle) CategoriesHandler(c *gin.Context) {
	categories, err := h.Listings.Categories(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list categories", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list categories", "")
		return
	}
	c.JSON(http.StatusOK, categories)
}
