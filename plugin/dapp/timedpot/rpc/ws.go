// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	pty "github.com/33cn/timedpot/plugin/dapp/timedpot/types"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

type wsClient struct {
	id         string
	pool       string
	conn       *websocket.Conn
	send       chan []byte
	pongWait   time.Duration
	pingPeriod time.Duration
}

// Broadcaster 把已提交的奖池事件推送给订阅者, url 带 ?pool= 时只推送该奖池的事件
type Broadcaster struct {
	mu       sync.Mutex
	clients  map[string]*wsClient
	upgrader websocket.Upgrader
	// pongWait 内收不到 pong 就断开, 每 pingPeriod 发一次 ping
	pongWait   time.Duration
	pingPeriod time.Duration
}

// NewBroadcaster new
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients:  make(map[string]*wsClient),
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

// Len 当前订阅者数目
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Broadcast 不阻塞，缓冲满的订阅者直接断开
func (b *Broadcaster) Broadcast(ev *pty.PoolEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		rlog.Error("Broadcast marshal", "err", err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, c := range b.clients {
		if c.pool != "" && c.pool != ev.PoolID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			rlog.Error("Broadcast slow client", "id", id)
			b.removeLocked(id)
		}
	}
}

func (b *Broadcaster) removeLocked(id string) {
	c, ok := b.clients[id]
	if !ok {
		return
	}
	delete(b.clients, id)
	close(c.send)
}

func (b *Broadcaster) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(id)
}

// ServeHTTP 升级为 websocket 连接
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rlog.Error("websocket upgrade", "err", err)
		return
	}
	c := &wsClient{
		id:   uuid.New().String(),
		pool: r.URL.Query().Get("pool"),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	b.mu.Lock()
	c.pongWait, c.pingPeriod = b.pongWait, b.pingPeriod
	b.clients[c.id] = c
	b.mu.Unlock()
	rlog.Debug("websocket subscribe", "id", c.id, "pool", c.pool, "remote", r.RemoteAddr)

	conn.SetReadDeadline(time.Now().Add(c.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})
	go b.writeLoop(c)
	// 读到错误说明连接已经断开或者超时没有回 pong
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	b.remove(c.id)
}

func (b *Broadcaster) writeLoop(c *wsClient) {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				rlog.Debug("websocket write", "id", c.id, "err", err)
				b.remove(c.id)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				rlog.Debug("websocket ping", "id", c.id, "err", err)
				b.remove(c.id)
				return
			}
		}
	}
}
