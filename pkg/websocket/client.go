package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// 向客戶端寫入消息的等待時間
	writeWait = 10 * time.Second

	// 讀取下一個 pong 消息的等待時間
	pongWait = 60 * time.Second

	// 發送 ping 消息的頻率
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 512

	// 每個客戶端的發送緩衝
	sendBufferSize = 256
)

// Client 是 WebSocket 連接的中間人
type Client struct {
	// 客戶端識別碼
	ID string

	// WebSocket 連接
	conn *websocket.Conn

	// 發送消息的緩衝通道
	send chan []byte

	// 管理器
	manager *Manager
}

// NewClient 創建一個新的客戶端
func NewClient(manager *Manager, conn *websocket.Conn) *Client {
	return &Client{
		ID:      uuid.New().String(),
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		manager: manager,
	}
}

// Send 發送消息給此客戶端，緩衝已滿時丟棄並返回 false
func (c *Client) Send(message []byte) bool {
	c.manager.mutex.Lock()
	defer c.manager.mutex.Unlock()

	if _, ok := c.manager.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// readPump 從 WebSocket 連接中讀取消息並交給管理器的處理函數
func (c *Client) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.logger.Warn("讀取消息失敗", zap.String("clientID", c.ID), zap.Error(err))
			}
			break
		}

		if handler := c.manager.messageHandler(); handler != nil {
			handler(c, message)
		}
	}
}

// writePump 將消息寫入 WebSocket 連接，每條消息一個文字幀
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 管道關閉
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
