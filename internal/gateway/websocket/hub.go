// Package websocket 提供向在线用户实时推送已落库消息的网关
// 推送与 Telegram 转发遵循同一条规则：落库之后、尽力而为、绝不阻塞发送路径
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sendBufferSize = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 一条已登录用户的 WebSocket 连接
type Client struct {
	Conn *websocket.Conn
	Uuid string
	Send chan []byte
}

// Hub 按用户 uuid 管理在线连接
// 同一用户允许多条连接（多开页面），推送时全部下发
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub 创建连接管理器
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

// HandleConn 升级连接并启动读写协程
// uuid 来自已通过认证的上下文
func (h *Hub) HandleConn(c *gin.Context, uuid string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade error", zap.Error(err))
		return
	}
	client := &Client{
		Conn: conn,
		Uuid: uuid,
		Send: make(chan []byte, sendBufferSize),
	}
	h.register(client)
	go h.readPump(client)
	go h.writePump(client)
	zap.L().Info("ws连接成功", zap.String("uuid", uuid))
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[client.Uuid]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.Uuid] = set
	}
	set[client] = struct{}{}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[client.Uuid]; ok {
		if _, exists := set[client]; exists {
			delete(set, client)
			close(client.Send)
			if len(set) == 0 {
				delete(h.clients, client.Uuid)
			}
		}
	}
}

// readPump 只为感知断线：收到的内容一律忽略
// 消息发送走 HTTP 接口，不走 WebSocket 上行
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister(client)
		_ = client.Conn.Close()
	}()
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump 把 Send 通道里的数据写到连接
func (h *Hub) writePump(client *Client) {
	for payload := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			zap.L().Error("ws write error", zap.Error(err))
			_ = client.Conn.Close()
			return
		}
	}
}

// Push 向指定用户的所有在线连接推送一条 JSON 数据
// 某条连接的缓冲满时跳过该连接，推送不阻塞调用方
func (h *Hub) Push(uuid string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("ws push marshal error", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[uuid] {
		select {
		case client.Send <- data:
		default:
			zap.L().Warn("ws send buffer full, message skipped", zap.String("uuid", uuid))
		}
	}
}

// Close 关闭所有连接
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for client := range set {
			_ = client.Conn.Close()
		}
	}
	h.clients = make(map[string]map[*Client]struct{})
}
