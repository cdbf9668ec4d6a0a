package server

import (
	"encoding/json"
	"testing"
)

// newTestPlayer 造一个带离线发送队列的玩家：不跑写协程，消息留在队列里供断言
func newTestPlayer(id PlayerID) *Player {
	return NewPlayer(id, NewClientConn(nil))
}

// drainMessages 取出并解码玩家队列里的全部消息
func drainMessages(t *testing.T, p *Player) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case b := <-p.Conn.send:
			var m map[string]any
			if err := json.Unmarshal(b, &m); err != nil {
				t.Fatalf("player #%d: bad message %q: %v", p.ID, b, err)
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

// messagesOfType 按判别字段过滤
func messagesOfType(msgs []map[string]any, typ string) []map[string]any {
	var out []map[string]any
	for _, m := range msgs {
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

// newTestRoom 建注册表 + 房间，房主 ID 为 1，后续玩家 2..n
func newTestRoom(t *testing.T, extraPlayers int) (*RoomRegistry, *Room, []*Player) {
	t.Helper()
	reg := NewRegistry()
	host := newTestPlayer(1)
	room, err := reg.Create(host)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	players := []*Player{host}
	for i := 0; i < extraPlayers; i++ {
		p := newTestPlayer(PlayerID(i + 2))
		if err := room.Join(p); err != nil {
			t.Fatalf("join player #%d: %v", p.ID, err)
		}
		players = append(players, p)
	}
	for _, p := range players {
		drainMessages(t, p)
	}
	return reg, room, players
}
