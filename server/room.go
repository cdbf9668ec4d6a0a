package server

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// RoomState 房间生命周期：Lobby（可加入）→ Active（游戏中）
// 没有显式的结束态，房间清空即退役
type RoomState int

const (
	StateLobby RoomState = iota
	StateActive
)

// Room 房间世界：玩家、僵尸、波次的权威状态都在内存
// 网关协程与 Tick 协程都会改动状态，统一走 mu
type Room struct {
	Code string
	Name string

	mu      sync.Mutex
	state   RoomState
	hostID  PlayerID
	players map[PlayerID]*Player
	zombies map[string]*Zombie

	wave         int
	killedInWave int
	spawnAccum   time.Duration
	lastTick     time.Time

	nextJoinSeq int64
	cfg         SimConfig
	rng         *rand.Rand

	registry *RoomRegistry
	metrics  *RoomMetrics

	stop          chan struct{}
	stopOnce      sync.Once
	tickerStarted bool
}

// newRoom 建房并让房主入座，初始为 Lobby、第 1 波
func newRoom(code string, host *Player, reg *RoomRegistry) *Room {
	r := &Room{
		Code:     code,
		Name:     fmt.Sprintf("%s's Room", host.Name),
		state:    StateLobby,
		hostID:   host.ID,
		players:  make(map[PlayerID]*Player),
		zombies:  make(map[string]*Zombie),
		wave:     1,
		cfg:      DefaultSimConfig(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		registry: reg,
		metrics:  &RoomMetrics{},
		stop:     make(chan struct{}),
	}
	host.joinSeq = r.nextJoinSeq
	r.nextJoinSeq++
	r.players[host.ID] = host
	return r
}

// Join 加入房间：仅 Lobby 状态且未满员时允许
// 失败只回给请求方，不打扰房内其他人
func (r *Room) Join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateLobby {
		return ErrGameStarted
	}
	if len(r.players) >= RoomCapacity {
		return ErrRoomFull
	}

	p.joinSeq = r.nextJoinSeq
	r.nextJoinSeq++
	r.players[p.ID] = p

	// 其余成员收到 playerJoined，加入者自己走 roomJoined 应答
	r.broadcastLocked(playerJoinedMsg{Type: "playerJoined", Player: p.State()}, p.ID)
	Log.Infof("player #%d joined room %s (%d/%d)", p.ID, r.Code, len(r.players), RoomCapacity)
	return nil
}

// Leave 将玩家移出房间（显式退出或断线皆走这里）
// 清空即退役；房主离开则按加入顺序交接并广播 newHost
func (r *Room) Leave(id PlayerID) {
	r.mu.Lock()
	p, ok := r.players[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.players, id)

	if len(r.players) == 0 {
		r.mu.Unlock()
		r.registry.Retire(r.Code)
		return
	}

	if r.hostID == id {
		next := r.earliestJoinedLocked()
		r.hostID = next.ID
		r.Name = fmt.Sprintf("%s's Room", next.Name)
		r.broadcastLocked(newHostMsg{Type: "newHost", HostID: next.ID}, 0)
		Log.Infof("room %s host handed to player #%d", r.Code, next.ID)
	}

	r.broadcastLocked(playerLeftMsg{Type: "playerLeft", PlayerID: id}, 0)
	Log.Infof("player #%d left room %s", p.ID, r.Code)
	r.mu.Unlock()
}

// Start 开局：仅房主、仅 Lobby 状态有效，其余情况静默忽略
// 重置波次与玩家战斗状态，玩家围绕中心圆形站位，随后启动 Tick
func (r *Room) Start(requester PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateLobby || r.hostID != requester {
		return false
	}

	r.state = StateActive
	r.wave = 1
	r.killedInWave = 0
	r.spawnAccum = 0
	r.zombies = make(map[string]*Zombie)
	r.lastTick = time.Now()

	i, n := 0, len(r.players)
	for _, p := range r.players {
		angle := float64(i) / float64(n) * 2 * math.Pi
		p.X = SpawnX + math.Cos(angle)*StartCircleRadius
		p.Y = SpawnY + math.Sin(angle)*StartCircleRadius
		p.HP = PlayerMaxHP
		p.Kills = 0
		i++
	}

	r.broadcastLocked(gameStartMsg{Type: "gameStart", Wave: r.wave, Players: r.playerStatesLocked()}, 0)
	r.startTickerLocked()
	Log.Infof("game started in room %s with %d players", r.Code, n)
	return true
}

// UpdatePosition 客户端上报的权威位置，转发给其他成员
func (r *Room) UpdatePosition(id PlayerID, x, y, angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.X, p.Y, p.Angle = x, y, angle
	r.broadcastLocked(playerMoveMsg{Type: "playerMove", PlayerID: id, X: x, Y: y, Angle: angle}, id)
}

// RelayShoot 开枪特效仅做转发，不参与结算，排除发送者
func (r *Room) RelayShoot(id PlayerID, x, y, angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return
	}
	r.broadcastLocked(playerShootMsg{Type: "playerShoot", PlayerID: id, X: x, Y: y, Angle: angle}, id)
}

// SetPlayerName 改名（可能发生在入房之后）
func (r *Room) SetPlayerName(id PlayerID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		p.SetName(name)
	}
}

// Info 回给加入者的房间数据
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		Code:    r.Code,
		Name:    r.Name,
		HostID:  r.hostID,
		Players: r.playerStatesLocked(),
	}
}

// Config 当前模拟参数的副本
func (r *Room) Config() SimConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// SetConfig 热更模拟参数（/admin/config）
func (r *Room) SetConfig(cfg SimConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
}

// Wave 当前波次
func (r *Room) Wave() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wave
}

// Metrics 房间运行指标
func (r *Room) Metrics() *RoomMetrics {
	return r.metrics
}

// lobbySummary 房间浏览器条目；Active 房间不可被发现
func (r *Room) lobbySummary() (RoomSummary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateLobby {
		return RoomSummary{}, false
	}
	return RoomSummary{
		Code:       r.Code,
		Name:       r.Name,
		Players:    len(r.players),
		MaxPlayers: RoomCapacity,
		Wave:       r.wave,
	}, true
}

// earliestJoinedLocked 按加入顺序取最早的在场玩家（房主交接规则）
func (r *Room) earliestJoinedLocked() *Player {
	var best *Player
	for _, p := range r.players {
		if best == nil || p.joinSeq < best.joinSeq {
			best = p
		}
	}
	return best
}

func (r *Room) playerStatesLocked() []PlayerState {
	states := make([]PlayerState, 0, len(r.players))
	for _, p := range r.players {
		states = append(states, p.State())
	}
	return states
}

func (r *Room) zombieStatesLocked() []ZombieState {
	states := make([]ZombieState, 0, len(r.zombies))
	for _, z := range r.zombies {
		states = append(states, z.State())
	}
	return states
}
