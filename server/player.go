package server

import "fmt"

// PlayerID 玩家唯一标识，进程生命周期内由网关递增分配
type PlayerID int64

// playerColors 玩家配色，按接入顺序轮转取用
var playerColors = []string{
	"#4CAF50", "#2196F3", "#FF9800", "#E91E63",
	"#9C27B0", "#00BCD4", "#FFEB3B", "#795548",
	"#FF5722", "#607D8B", "#8BC34A", "#3F51B5",
}

// PlayerState 广播给客户端的玩家状态
type PlayerState struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Angle float64  `json:"angle"`
	HP    int      `json:"hp"`
	Kills int      `json:"kills"`
}

// Player 房间内的玩家实体（服务端权威状态）
// 加入房间后一切字段变更都在房间锁内进行
type Player struct {
	ID    PlayerID
	Name  string
	Color string
	X     float64
	Y     float64
	Angle float64
	HP    int
	Kills int

	joinSeq int64 // 加入房间的顺序号，房主交接按此排序

	Conn *ClientConn // 网络连接的发送端（写协程）
}

// NewPlayer 按接入顺序创建玩家，昵称与颜色给默认值
func NewPlayer(id PlayerID, conn *ClientConn) *Player {
	return &Player{
		ID:    id,
		Name:  fmt.Sprintf("Player %d", id),
		Color: playerColors[int(id)%len(playerColors)],
		X:     SpawnX,
		Y:     SpawnY,
		HP:    PlayerMaxHP,
		Conn:  conn,
	}
}

// SetName 设置昵称，超长截断，空串回退默认
func (p *Player) SetName(name string) {
	if name == "" {
		p.Name = fmt.Sprintf("Player %d", p.ID)
		return
	}
	runes := []rune(name)
	if len(runes) > NameMaxLen {
		runes = runes[:NameMaxLen]
	}
	p.Name = string(runes)
}

// State 当前状态的只读快照
func (p *Player) State() PlayerState {
	return PlayerState{
		ID:    p.ID,
		Name:  p.Name,
		Color: p.Color,
		X:     p.X,
		Y:     p.Y,
		Angle: p.Angle,
		HP:    p.HP,
		Kills: p.Kills,
	}
}
