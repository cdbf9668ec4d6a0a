package server

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// 房间操作的预期失败，网关据此回发 error 消息
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameStarted      = errors.New("game already started")
	ErrCapacityExceeded = errors.New("room code space exhausted")
)

// roomCodeAlphabet 去掉易混淆字符（I/O/0/1）的房间码字符集
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	roomCodeLen      = 4
	roomCodeAttempts = 100
)

// RoomSummary 房间浏览器条目，只列出未开局的房间
type RoomSummary struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Wave       int    `json:"wave"`
}

// RoomRegistry 管理多个房间的生命周期
// 进程启动时由 main 创建一份，交给网关持有，不做包级单例
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	rng   *rand.Rand
}

// NewRegistry 创建空的房间注册表
func NewRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create 生成未占用的房间码并建房，房主随之入房
// 字符集足够大，重试上限只是理论兜底
func (m *RoomRegistry) Create(host *Player) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for i := 0; ; i++ {
		if i >= roomCodeAttempts {
			return nil, ErrCapacityExceeded
		}
		code = m.generateCode()
		if _, taken := m.rooms[code]; !taken {
			break
		}
	}

	r := newRoom(code, host, m)
	m.rooms[code] = r
	Log.Infof("room %s created by player #%d", code, host.ID)
	return r, nil
}

// Lookup 按房间码查找，大小写不敏感
func (m *RoomRegistry) Lookup(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[strings.ToUpper(code)]
	return r, ok
}

// List 房间浏览器列表：仅 Lobby 状态的房间可被发现
func (m *RoomRegistry) List() []RoomSummary {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	list := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		if s, ok := r.lobbySummary(); ok {
			list = append(list, s)
		}
	}
	return list
}

// Retire 摘除房间并停掉它的 Tick 调度，恰好一次
// 房间清空时由房间自身触发
func (m *RoomRegistry) Retire(code string) {
	m.mu.Lock()
	r, ok := m.rooms[code]
	if ok {
		delete(m.rooms, code)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	r.stopTicker()
	Log.Infof("room %s retired (empty)", code)
}

// Count 当前房间总数（/api/info 用）
func (m *RoomRegistry) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *RoomRegistry) generateCode() string {
	b := make([]byte, roomCodeLen)
	for i := range b {
		b[i] = roomCodeAlphabet[m.rng.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}
