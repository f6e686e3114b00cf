package handlers

import (
	"errors"
	"net/http"
	"time"

	"coachbar/services/roster"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createClassRequest struct {
	ListingID        string    `json:"listingId" binding:"required"`
	ClassName        string    `json:"className" binding:"required"`
	ClassPrice       float64   `json:"classPrice"`
	ClassDescription string    `json:"classDescription"`
	ClassSeats       int       `json:"classSeats" binding:"required"`
	StartDateTime    time.Time `json:"startDateTime" binding:"required"`
	EndDateTime      time.Time `json:"endDateTime" binding:"required"`
}

// CreateClassHandler schedules a group class under one of the caller's listings.
func (h *HandlerBundle) CreateClassHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	class, err := h.Roster.CreateClass(c.Request.Context(), roster.ClassInput{
		TeacherID:        userID,
		ListingID:        req.ListingID,
		ClassName:        req.ClassName,
		ClassPrice:       req.ClassPrice,
		ClassDescription: req.ClassDescription,
		ClassSeats:       req.ClassSeats,
		StartDateTime:    req.StartDateTime,
		EndDateTime:      req.EndDateTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidSeats):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, roster.ErrNotListingOwner):
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
		default:
			getLogger(c).Error("Failed to create class", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create class", "")
		}
		return
	}
	c.JSON(http.StatusCreated, class)
}

// GetClassHandler returns one class.
func (h *HandlerBundle) GetClassHandler(c *gin.Context) {
	class, err := h.Roster.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Class not found", "")
		return
	}
	c.JSON(http.StatusOK, class)
}

// ListingClassesHandler lists classes scheduled under a listing.
func (h *HandlerBundle) ListingClassesHandler(c *gin.Context) {
	classes, err := h.Roster.ClassesForListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to list classes", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list classes", "")
		return
	}
	c.JSON(http.StatusOK, classes)
}

// BookClassHandler takes one seat for the caller.
func (h *HandlerBundle) BookClassHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	class, err := h.Roster.Book(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrClassFull), errors.Is(err, roster.ErrAlreadyEnrolled):
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
		default:
			getLogger(c).Error("Failed to book class", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to book class", "")
		}
		return
	}
	c.JSON(http.StatusOK, class)
}

// CancelClassBookingHandler releases the caller's seat.
func (h *HandlerBundle) CancelClassBookingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	class, err := h.Roster.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, roster.ErrNotEnrolled) {
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to cancel class booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel class booking", "")
		return
	}
	c.JSON(http.StatusOK, class)
}

// BookedClassesHandler lists classes the caller is enrolled in.
func (h *HandlerBundle) BookedClassesHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	classes, err := h.Roster.BookedClasses(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list booked classes", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list booked classes", "")
		return
	}
	c.JSON(http.StatusOK, classes)
}

// TaughtClassesHandler lists classes the caller teaches.
func (h *HandlerBundle) TaughtClassesHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	classes, err := h.Roster.TaughtClasses(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list taught classes", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list taught classes", "")
		return
	}
	c.JSON(http.StatusOK, classes)
}
