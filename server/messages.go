package server

// 入站消息的统一 JSON 结构（WebSocket 文本消息）
// type 为判别字段，未知类型直接忽略
// 示例：{"type":"joinRoom","code":"ABCD"}
type ClientMessage struct {
	Type     string  `json:"type"`
	Name     string  `json:"name,omitempty"`     // setName
	Code     string  `json:"code,omitempty"`     // joinRoom
	X        float64 `json:"x,omitempty"`        // position / shoot
	Y        float64 `json:"y,omitempty"`        // position / shoot
	Angle    float64 `json:"angle,omitempty"`    // position / shoot
	ZombieID string  `json:"zombieId,omitempty"` // zombieHit / zombieKill
	Damage   int     `json:"damage,omitempty"`   // zombieHit / zombieKill
}

// RoomInfo 发给客户端的房间数据（roomCreated / roomJoined）
type RoomInfo struct {
	Code    string        `json:"code"`
	Name    string        `json:"name"`
	HostID  PlayerID      `json:"hostId"`
	Players []PlayerState `json:"players"`
}

// 出站消息：每种类型一个结构体，序列化一次后广播

type initMsg struct {
	Type     string   `json:"type"` // "init"
	PlayerID PlayerID `json:"playerId"`
	Color    string   `json:"color"`
}

type roomCreatedMsg struct {
	Type string   `json:"type"` // "roomCreated"
	Room RoomInfo `json:"room"`
}

type roomJoinedMsg struct {
	Type string   `json:"type"` // "roomJoined"
	Room RoomInfo `json:"room"`
}

type roomListMsg struct {
	Type  string        `json:"type"` // "roomList"
	Rooms []RoomSummary `json:"rooms"`
}

type playerJoinedMsg struct {
	Type   string      `json:"type"` // "playerJoined"
	Player PlayerState `json:"player"`
}

type playerLeftMsg struct {
	Type     string   `json:"type"` // "playerLeft"
	PlayerID PlayerID `json:"playerId"`
}

type newHostMsg struct {
	Type   string   `json:"type"` // "newHost"
	HostID PlayerID `json:"hostId"`
}

type gameStartMsg struct {
	Type    string        `json:"type"` // "gameStart"
	Wave    int           `json:"wave"`
	Players []PlayerState `json:"players"`
}

type waveStartMsg struct {
	Type string `json:"type"` // "waveStart"
	Wave int    `json:"wave"`
}

type worldUpdateMsg struct {
	Type    string        `json:"type"` // "worldUpdate"
	Zombies []ZombieState `json:"zombies"`
	Players []PlayerState `json:"players"`
}

type playerMoveMsg struct {
	Type     string   `json:"type"` // "playerMove"
	PlayerID PlayerID `json:"playerId"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Angle    float64  `json:"angle"`
}

type playerShootMsg struct {
	Type     string   `json:"type"` // "playerShoot"
	PlayerID PlayerID `json:"playerId"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Angle    float64  `json:"angle"`
}

type playerHitMsg struct {
	Type string `json:"type"` // "playerHit"
	HP   int    `json:"hp"`
}

type playerDiedMsg struct {
	Type     string   `json:"type"` // "playerDied"
	PlayerID PlayerID `json:"playerId"`
	Kills    int      `json:"kills"`
}

type zombieKilledMsg struct {
	Type     string   `json:"type"` // "zombieKilled"
	ZombieID string   `json:"zombieId"`
	PlayerID PlayerID `json:"playerId"`
	Kills    int      `json:"kills"`
}

type leftRoomMsg struct {
	Type string `json:"type"` // "leftRoom"
}

type errorMsg struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}
