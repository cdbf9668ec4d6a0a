package server

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ZombieState 广播给客户端的僵尸状态
type ZombieState struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	HP    int     `json:"hp"`
}

// Zombie 房间内的僵尸实体，由 Tick 协程驱动
type Zombie struct {
	ID     string
	X      float64
	Y      float64
	Angle  float64
	HP     int
	Speed  float64 // 单位/秒
	Damage int

	lastAttack time.Time
}

// newZombieID 生成全局唯一 ID：毫秒时间戳 + uuid 随机后缀
func newZombieID() string {
	return fmt.Sprintf("z_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// newZombie 在世界中心外的环带内随机取点生成一只僵尸
// 血量、速度、伤害随波次线性成长
func newZombie(rng *rand.Rand, wave int) *Zombie {
	angle := rng.Float64() * 2 * math.Pi
	radius := SpawnRingInner + rng.Float64()*(SpawnRingOuter-SpawnRingInner)
	x := clamp(SpawnX+math.Cos(angle)*radius, 0, WorldWidth)
	y := clamp(SpawnY+math.Sin(angle)*radius, 0, WorldHeight)

	speed := ZombieBaseSpeed + ZombieSpeedStep*float64(wave-1)
	if speed > ZombieMaxSpeed {
		speed = ZombieMaxSpeed
	}
	damage := ZombieBaseDamage + ZombieDamageStep*(wave-1)
	if damage > ZombieMaxDamage {
		damage = ZombieMaxDamage
	}

	return &Zombie{
		ID:     newZombieID(),
		X:      x,
		Y:      y,
		HP:     ZombieBaseHP + ZombieHPStep*(wave-1),
		Speed:  speed,
		Damage: damage,
	}
}

// State 当前状态的只读快照
func (z *Zombie) State() ZombieState {
	return ZombieState{ID: z.ID, X: z.X, Y: z.Y, Angle: z.Angle, HP: z.HP}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
