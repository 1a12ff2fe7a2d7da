package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"data_service/internal/models"
)

const (
	EventDataCreated = "data_created"
	EventDataDeleted = "data_deleted"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBufferSize = 256
)

// Event 是推送給訂閱者的資料異動通知
type Event struct {
	Type string      `json:"type"`
	Data models.Data `json:"data"`
}

// Client 代表一個訂閱異動通知的 WebSocket 連線
type Client struct {
	Conn     *websocket.Conn
	SendChan chan *Event
}

// WebSocketService 管理所有訂閱連線並廣播資料異動
type WebSocketService struct {
	clients    map[*Client]bool
	clientsMux sync.RWMutex
	logger     logrus.FieldLogger
}

func NewWebSocketService(logger logrus.FieldLogger) *WebSocketService {
	return &WebSocketService{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

// HandleConnection 註冊連線並阻塞直到連線關閉
func (s *WebSocketService) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		Conn:     conn,
		SendChan: make(chan *Event, sendBufferSize),
	}

	s.addClient(client)
	defer func() {
		s.removeClient(client)
		conn.Close()
	}()

	go s.writePump(client)
	s.readPump(client)
}

// readPump 只負責處理 pong 與關閉訊框，訂閱者送來的內容一律忽略
func (s *WebSocketService) readPump(client *Client) {
	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.WithError(err).Warn("websocket unexpected close")
			}
			return
		}
	}
}

func (s *WebSocketService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.WithError(err).Error("event encoding error")
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish 廣播事件給所有訂閱者；佇列已滿的訂閱者會被斷線
func (s *WebSocketService) Publish(event *Event) {
	var slow []*Client

	s.clientsMux.RLock()
	for client := range s.clients {
		select {
		case client.SendChan <- event:
		default:
			slow = append(slow, client)
		}
	}
	s.clientsMux.RUnlock()

	for _, client := range slow {
		s.logger.Warn("dropping slow websocket subscriber")
		s.removeClient(client)
		client.Conn.Close()
	}
}

func (s *WebSocketService) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	s.clients[client] = true
}

// removeClient 移除連線並關閉其發送通道，可重複呼叫
func (s *WebSocketService) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.SendChan)
	}
}

// ClientCount 回傳目前的訂閱者數量
func (s *WebSocketService) ClientCount() int {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return len(s.clients)
}

// CloseAll 關閉所有訂閱連線，用於服務關閉時
func (s *WebSocketService) CloseAll() {
	s.clientsMux.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.clientsMux.Unlock()

	for _, client := range clients {
		s.removeClient(client)
		client.Conn.Close()
	}
}
