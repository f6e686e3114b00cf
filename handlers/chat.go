package handlers

import (
	"errors"
	"net/http"

	"coachbar/services/chat"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type openChannelRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

// OpenChannelHandler finds or creates the channel between the caller and the
// receiver. Opening an existing pair returns the stored channel.
func (h *HandlerBundle) OpenChannelHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req openChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	channel, err := h.Chats.Open(c.Request.Context(), userID, req.ReceiverID)
	if err != nil {
		if errors.Is(err, chat.ErrSelfChannel) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to open channel", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to open channel", "")
		return
	}
	c.JSON(http.StatusOK, channel)
}

// GetChannelHandler returns one channel the caller participates in.
func (h *HandlerBundle) GetChannelHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	channel, err := h.Chats.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, chat.ErrNotParticipant) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Channel not found", "")
		return
	}
	c.JSON(http.StatusOK, channel)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessageHandler appends a plain-text message to the channel.
func (h *HandlerBundle) SendMessageHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	channel, err := h.Chats.SendMessage(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, chat.ErrNotParticipant):
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
		default:
			getLogger(c).Error("Failed to send message", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to send message", "")
		}
		return
	}
	c.JSON(http.StatusOK, channel)
}

// MarkReadHandler marks every message from the other participant as read.
func (h *HandlerBundle) MarkReadHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Chats.MarkAllRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, chat.ErrNotParticipant) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		getLogger(c).Error("Failed to mark channel read", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark channel read", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

// InboxHandler lists the caller's conversations, most recent first.
func (h *HandlerBundle) InboxHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	summaries, err := h.Chats.Inbox(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to load inbox", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load inbox", "")
		return
	}
	c.JSON(http.StatusOK, summaries)
}
