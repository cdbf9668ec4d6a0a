package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
}

// Enqueue 将要发送的消息压入队列，非阻塞
// 队列满或连接已关闭时丢弃并返回 false，绝不拖住 Tick
func (c *ClientConn) Enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Close 关闭底层连接并让写协程退出，幂等
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// sendJSON 便捷私发（应答类消息）
func (c *ClientConn) sendJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		Log.Errorf("marshal reply: %v", err)
		return
	}
	c.Enqueue(b)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// Gateway 接入层：分配会话 ID、解析入站消息并路由到注册表或所在房间
// 不直接改游戏状态，一切改动经房间的方法进行
type Gateway struct {
	registry  *RoomRegistry
	nextID    int64
	connected int64
}

func NewGateway(reg *RoomRegistry) *Gateway {
	return &Gateway{registry: reg}
}

// ConnectedCount 当前在线连接数（/api/info 用）
func (g *Gateway) ConnectedCount() int64 {
	return atomic.LoadInt64(&g.connected)
}

// HandleWS WebSocket 接入：升级连接、发 init、进入读循环
func (g *Gateway) HandleWS(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	id := PlayerID(atomic.AddInt64(&g.nextID, 1))
	client := NewClientConn(ws)
	player := NewPlayer(id, client)

	atomic.AddInt64(&g.connected, 1)
	Log.Infof("player #%d connected", id)

	go client.writePump()
	client.sendJSON(initMsg{Type: "init", PlayerID: id, Color: player.Color})

	g.readPump(client, player)
}

// readPump 读取客户端消息直到断线；断线等同 leaveRoom
func (g *Gateway) readPump(client *ClientConn, player *Player) {
	var room *Room

	defer func() {
		if room != nil {
			room.Leave(player.ID)
		}
		client.Close()
		atomic.AddInt64(&g.connected, -1)
		Log.Infof("player #%d disconnected", player.ID)
	}()

	client.ws.SetReadLimit(1 << 16) // 64KB，入站消息都很小
	_ = client.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.ws.SetPongHandler(func(string) error {
		return client.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		_, payload, err := client.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			Log.Debugf("player #%d: malformed message dropped: %v", player.ID, err)
			continue
		}
		room = g.dispatch(client, player, room, msg)
	}
}

// dispatch 按判别字段路由一条消息，返回玩家当前所在的房间
// 未知类型直接忽略；非房主发 startGame 同样静默忽略
func (g *Gateway) dispatch(client *ClientConn, player *Player, room *Room, msg ClientMessage) *Room {
	switch msg.Type {
	case "setName":
		if room != nil {
			room.SetPlayerName(player.ID, msg.Name)
		} else {
			player.SetName(msg.Name)
		}

	case "getRooms":
		client.sendJSON(roomListMsg{Type: "roomList", Rooms: g.registry.List()})

	case "createRoom":
		if room != nil {
			room.Leave(player.ID)
			room = nil
		}
		created, err := g.registry.Create(player)
		if err != nil {
			client.sendJSON(errorMsg{Type: "error", Message: errorText(err)})
			return room
		}
		room = created
		client.sendJSON(roomCreatedMsg{Type: "roomCreated", Room: room.Info()})

	case "joinRoom":
		target, ok := g.registry.Lookup(msg.Code)
		if !ok {
			client.sendJSON(errorMsg{Type: "error", Message: errorText(ErrRoomNotFound)})
			return room
		}
		if target == room {
			// 重复加入当前房间：补发一次应答即可
			client.sendJSON(roomJoinedMsg{Type: "roomJoined", Room: room.Info()})
			return room
		}
		if err := target.Join(player); err != nil {
			client.sendJSON(errorMsg{Type: "error", Message: errorText(err)})
			return room
		}
		if room != nil {
			room.Leave(player.ID)
		}
		room = target
		client.sendJSON(roomJoinedMsg{Type: "roomJoined", Room: room.Info()})

	case "leaveRoom":
		if room != nil {
			room.Leave(player.ID)
			room = nil
		}
		client.sendJSON(leftRoomMsg{Type: "leftRoom"})

	case "startGame":
		if room != nil {
			room.Start(player.ID)
		}

	case "position":
		if room != nil {
			room.UpdatePosition(player.ID, msg.X, msg.Y, msg.Angle)
		}

	case "shoot":
		if room != nil {
			room.RelayShoot(player.ID, msg.X, msg.Y, msg.Angle)
		}

	case "zombieHit", "zombieKill":
		if room != nil {
			room.ApplyZombieDamage(player.ID, msg.ZombieID, msg.Damage)
		}

	default:
		// 未知判别字段：按协议忽略
	}
	return room
}

// errorText 把预期失败映射为发给客户端的文案
func errorText(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, ErrRoomFull):
		return "Room is full"
	case errors.Is(err, ErrGameStarted):
		return "Game already started"
	case errors.Is(err, ErrCapacityExceeded):
		return "No room codes available"
	default:
		return "Request failed"
	}
}
