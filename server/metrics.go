package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount   int64 // 统计的 Tick 次数
	TotalTickNs int64 // Tick 累计耗时（纳秒）
	Spawns      int64 // 刷出的僵尸数
	Attacks     int64 // 僵尸攻击次数
	Kills       int64 // 玩家击杀数
	Broadcasts  int64 // 广播消息条数
	SendDropped int64 // 因发送队列满被丢弃的消息数
}

func (m *RoomMetrics) IncSpawn()       { atomic.AddInt64(&m.Spawns, 1) }
func (m *RoomMetrics) IncAttack()      { atomic.AddInt64(&m.Attacks, 1) }
func (m *RoomMetrics) IncKill()        { atomic.AddInt64(&m.Kills, 1) }
func (m *RoomMetrics) IncBroadcast()   { atomic.AddInt64(&m.Broadcasts, 1) }
func (m *RoomMetrics) IncSendDropped() { atomic.AddInt64(&m.SendDropped, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":   tick,
		"spawns":       atomic.LoadInt64(&m.Spawns),
		"attacks":      atomic.LoadInt64(&m.Attacks),
		"kills":        atomic.LoadInt64(&m.Kills),
		"broadcasts":   atomic.LoadInt64(&m.Broadcasts),
		"send_dropped": atomic.LoadInt64(&m.SendDropped),
		"avg_tick_ms":  avgMs,
	}
}
