package handlers

import (
	"errors"
	"net/http"

	"coachbar/services/negotiation"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProposeBookingHandler writes a booking suggestion into the channel.
func (h *HandlerBundle) ProposeBookingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var input negotiation.ProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	input.CreatedBy = userID

	suggestion, err := h.Negotiations.Propose(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, negotiation.ErrMissingStudents):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, negotiation.ErrNotParticipant):
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
		default:
			getLogger(c).Error("Failed to create booking suggestion", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking suggestion", "")
		}
		return
	}
	c.JSON(http.StatusCreated, suggestion)
}

// ConfirmBookingHandler accepts a suggestion on behalf of the other
// participant. Repeating a confirmation returns the stored suggestion.
func (h *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	suggestion, err := h.Negotiations.Confirm(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, negotiation.ErrSelfConfirm) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to confirm booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to confirm booking", "")
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// GetBookingHandler returns one suggestion.
func (h *HandlerBundle) GetBookingHandler(c *gin.Context) {
	if _, ok := authedUserID(c); !ok {
		return
	}
	suggestion, err := h.Negotiations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// UpcomingBookingsHandler lists confirmed suggestions the caller proposed or
// accepted.
func (h *HandlerBundle) UpcomingBookingsHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	suggestions, err := h.Negotiations.UpcomingFor(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list upcoming bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list upcoming bookings", "")
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
