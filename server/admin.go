package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// HandleAdminConfig 提供房间模拟参数的读取与热更新
// GET  /admin/config?room=ABCD  返回当前参数
// POST /admin/config?room=ABCD  以 JSON 载荷更新部分字段
func HandleAdminConfig(reg *RoomRegistry) http.HandlerFunc {
	type cfg struct {
		SpawnIntervalMs  *int     `json:"spawnIntervalMs,omitempty"`
		AttackCooldownMs *int     `json:"attackCooldownMs,omitempty"`
		EngageRadius     *float64 `json:"engageRadius,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		room, ok := reg.Lookup(r.URL.Query().Get("room"))
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			cur := room.Config()
			spawnMs := int(cur.SpawnInterval / time.Millisecond)
			cooldownMs := int(cur.AttackCooldown / time.Millisecond)
			out := cfg{
				SpawnIntervalMs:  &spawnMs,
				AttackCooldownMs: &cooldownMs,
				EngageRadius:     &cur.EngageRadius,
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(out)

		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			cur := room.Config()
			if body.SpawnIntervalMs != nil {
				cur.SpawnInterval = time.Duration(*body.SpawnIntervalMs) * time.Millisecond
			}
			if body.AttackCooldownMs != nil {
				cur.AttackCooldown = time.Duration(*body.AttackCooldownMs) * time.Millisecond
			}
			if body.EngageRadius != nil {
				cur.EngageRadius = *body.EngageRadius
			}
			room.SetConfig(cur)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
			Log.Infof("config updated: room=%s spawn=%v cooldown=%v engage=%.1f",
				room.Code, cur.SpawnInterval, cur.AttackCooldown, cur.EngageRadius)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=ABCD
func HandleMetrics(reg *RoomRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, ok := reg.Lookup(r.URL.Query().Get("room"))
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		payload := map[string]any{
			"room":    room.Code,
			"wave":    room.Wave(),
			"metrics": room.Metrics().Snapshot(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// HandleRooms 房间浏览器用的只读列表
// GET /api/rooms
func HandleRooms(reg *RoomRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reg.List())
	}
}

// HandleInfo 服务器概况
// GET /api/info
func (g *Gateway) HandleInfo(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"name":    "Zombie Arena Server",
		"players": g.ConnectedCount(),
		"rooms":   g.registry.Count(),
		"version": "2.0",
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
