package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允許所有來源的連接，生產環境應該限制
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// MessageHandler 處理客戶端送來的消息
type MessageHandler func(client *Client, message []byte)

// ConnectHandler 客戶端連線成功後呼叫
type ConnectHandler func(client *Client)

// Manager 管理 WebSocket 連接
type Manager struct {
	// 註冊的客戶端
	clients map[*Client]bool

	// 廣播消息通道
	broadcast chan []byte

	// 註冊請求
	register chan *Client

	// 取消註冊請求
	unregister chan *Client

	// 互斥鎖，保護資源
	mutex sync.Mutex

	onMessage MessageHandler
	onConnect ConnectHandler

	// Start 結束時關閉
	done chan struct{}

	logger *zap.Logger
}

// NewManager 創建一個新的管理器
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With(zap.String("component", "websocket_manager")),
	}
}

// OnMessage 設定消息處理函數
func (m *Manager) OnMessage(handler MessageHandler) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onMessage = handler
}

// OnConnect 設定連線處理函數
func (m *Manager) OnConnect(handler ConnectHandler) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onConnect = handler
}

func (m *Manager) messageHandler() MessageHandler {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.onMessage
}

func (m *Manager) connectHandler() ConnectHandler {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.onConnect
}

// Start 啟動管理器，直到 ctx 取消
func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("WebSocket 管理器已啟動")
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			// 上下文取消，關閉所有連接
			m.closeAll()
			return

		case client := <-m.register:
			// 註冊新客戶端
			m.mutex.Lock()
			m.clients[client] = true
			count := len(m.clients)
			m.mutex.Unlock()
			m.logger.Info("新客戶端連線", zap.String("clientID", client.ID), zap.Int("clients", count))

			if handler := m.connectHandler(); handler != nil {
				handler(client)
			}

		case client := <-m.unregister:
			// 取消註冊客戶端
			m.mutex.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
				m.logger.Info("客戶端斷線", zap.String("clientID", client.ID))
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			// 廣播消息給所有客戶端
			m.mutex.Lock()
			for client := range m.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(m.clients, client)
					m.logger.Warn("客戶端發送緩衝已滿，中斷連線", zap.String("clientID", client.ID))
				}
			}
			m.mutex.Unlock()
		}
	}
}

// Shutdown 關閉管理器
func (m *Manager) Shutdown() {
	m.closeAll()
	m.logger.Info("WebSocket 管理器關閉")
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for client := range m.clients {
		close(client.send)
		delete(m.clients, client)
	}
}

// ServeWs 處理 WebSocket 請求
func (m *Manager) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Error("WebSocket 升級失敗", zap.Error(err))
		return
	}

	client := NewClient(m, conn)
	select {
	case m.register <- client:
	case <-m.done:
		conn.Close()
		return
	}

	// 啟動客戶端的讀寫協程
	go client.writePump()
	go client.readPump()
}

// Broadcast 廣播消息給所有客戶端，不會阻塞呼叫方
func (m *Manager) Broadcast(message []byte) bool {
	select {
	case m.broadcast <- message:
		return true
	default:
		m.logger.Warn("廣播緩衝已滿，丟棄消息")
		return false
	}
}

// ClientCount 當前連線數
func (m *Manager) ClientCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.clients)
}
