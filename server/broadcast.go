package server

import "encoding/json"

// broadcastLocked 序列化一次，扇出到房内所有在线成员
// exclude 非零时跳过该玩家（用于 playerMove/playerShoot 这类自身已知的事件）
// 死连接直接跳过，不影响其他接收方；调用方必须已持有 r.mu
func (r *Room) broadcastLocked(v any, exclude PlayerID) {
	b, err := json.Marshal(v)
	if err != nil {
		Log.Errorf("room %s: marshal broadcast: %v", r.Code, err)
		return
	}
	for _, p := range r.players {
		if p.ID == exclude || p.Conn == nil {
			continue
		}
		if !p.Conn.Enqueue(b) {
			r.metrics.IncSendDropped()
		}
	}
	r.metrics.IncBroadcast()
}

// sendToLocked 私发单个玩家（如 playerHit 只通知受击者本人）
func (r *Room) sendToLocked(p *Player, v any) {
	if p.Conn == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		Log.Errorf("room %s: marshal private send: %v", r.Code, err)
		return
	}
	if !p.Conn.Enqueue(b) {
		r.metrics.IncSendDropped()
	}
}
