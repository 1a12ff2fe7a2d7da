package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"data_service/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler 提供資料異動通知的 WebSocket 端點
type WebSocketHandler struct {
	wsService *service.WebSocketService
}

func NewWebSocketHandler(wsService *service.WebSocketService) *WebSocketHandler {
	return &WebSocketHandler{wsService: wsService}
}

// HandleWebSocket 處理 GET /data/events
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	// Upgrade 失敗時已自行回覆錯誤
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.wsService.HandleConnection(conn)
}
