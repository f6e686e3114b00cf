package handlers

import (
	"errors"
	"net/http"
	"time"

	"coachbar/models"
	"coachbar/services/chat"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients connect from app origins, not browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChannelFeedHandler upgrades the request to a WebSocket and streams channel
// snapshots until the client disconnects. Each frame is the full channel
// document, so a reconnecting client needs no replay.
func (h *HandlerBundle) ChannelFeedHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	channelID := c.Param("id")

	stream, cancel, err := h.Chats.Subscribe(c.Request.Context(), channelID, userID)
	if err != nil {
		if errors.Is(err, chat.ErrNotParticipant) {
			utils.JSONError(c, http.StatusForbidden, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Channel not found", "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	go writeChannelFeed(conn, stream, cancel, logger)
	go readUntilClosed(conn, cancel)
}

// writeChannelFeed pushes snapshots and pings until the stream or the
// connection ends.
func writeChannelFeed(conn *websocket.Conn, stream <-chan *models.ChatChannel, cancel func(), logger *zap.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
	}()

	for {
		select {
		case snapshot, open := <-stream:
			if !open {
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(snapshot); err != nil {
				logger.Debug("Feed write failed, dropping subscriber", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close frames are
// processed, releasing the subscription when the connection drops.
func readUntilClosed(conn *websocket.Conn, cancel func()) {
	defer cancel()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
