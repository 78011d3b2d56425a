package daily_music

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time 写入超时时间
	writeWait = 10 * time.Second

	// Time pong超时时间
	pongWait = 60 * time.Second

	// Send 对应的ping 必须小于pong
	pingPeriod = (pongWait * 9) / 10

	// Maximum 对等端允许消息大小
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for SDK
	},
}

// Client 一条 websocket 连接。
// 歌曲详情页建连后发 watch_song 订阅某首歌，之后该歌的新评分/新评论
// 会实时推给它。UserID 为 0 表示未登录的访客（只看不写）。
type Client struct {
	hub *WsServer

	conn *websocket.Conn

	// 消息缓冲区
	send chan []byte

	// UserID 和用户关联，访客为 0
	UserID uint64

	// watching 当前订阅的歌曲 ID，0 表示未订阅
	mu       sync.Mutex
	watching uint64
}

func (c *Client) watchSong(songID uint64) {
	c.mu.Lock()
	old := c.watching
	c.watching = songID
	c.mu.Unlock()
	c.hub.rewatch(c, old, songID)
}

func (c *Client) watchedSong() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watching
}

// readPump 将消息从 client (websocket 连接) 交给 hub 处理。
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error: %v", err)
			}
			break
		}
		c.hub.handleMessage(c, msg)
	}
}

// writePump 把 hub 投递的消息写到具体的 client (websocket 连接)。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(msg)

			// 管道里攒下的消息一次写完，减少系统调用
			n := len(c.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// WsServer 歌曲页实时推送 hub：按歌曲维护订阅者集合。
type WsServer struct {
	clients map[*Client]bool

	// 歌曲ID -> 订阅该歌的连接集合
	songWatchers map[uint64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	// 回调处理上行消息（engine 注入，解析 message.Req）
	onMessage func(client *Client, msg []byte)
}

func NewWsServer() *WsServer {
	return &WsServer{
		clients:      make(map[*Client]bool),
		songWatchers: make(map[uint64]map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
	}
}

func (h *WsServer) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if songID := client.watchedSong(); songID != 0 {
					if set := h.songWatchers[songID]; set != nil {
						delete(set, client)
						if len(set) == 0 {
							delete(h.songWatchers, songID)
						}
					}
				}
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// rewatch 把连接从旧歌曲的订阅集合挪到新歌曲。
func (h *WsServer) rewatch(c *Client, oldSongID, newSongID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if oldSongID != 0 {
		if set := h.songWatchers[oldSongID]; set != nil {
			delete(set, c)
			if len(set) == 0 {
				delete(h.songWatchers, oldSongID)
			}
		}
	}
	if newSongID != 0 {
		set := h.songWatchers[newSongID]
		if set == nil {
			set = make(map[*Client]bool)
			h.songWatchers[newSongID] = set
		}
		set[c] = true
	}
}

// BroadcastToSong 把事件推给订阅了该歌的全部连接。尽力而为：
// 发不进去（缓冲满/连接将死）就丢，不阻塞写库路径。
func (h *WsServer) BroadcastToSong(songID uint64, payload []byte) {
	if songID == 0 || len(payload) == 0 {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.songWatchers[songID] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (h *WsServer) handleMessage(c *Client, msg []byte) {
	if h.onMessage != nil {
		h.onMessage(c, msg)
	}
}

// ServeWS 升级 HTTP 连接。userID 为 0 表示访客。
func (h *WsServer) ServeWS(w http.ResponseWriter, r *http.Request, userID uint64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 64), UserID: userID}
	h.register <- client

	go client.writePump()
	go client.readPump()
}
