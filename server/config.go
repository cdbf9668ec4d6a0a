package server

import "time"

// 世界与模拟的基础常量（编译期固定，热更部分见 SimConfig）
const (
	// TicksPerSecond 模拟推进频率（20 TPS）
	TicksPerSecond = 20

	// RoomCapacity 单房间最大玩家数
	RoomCapacity = 8

	// 世界尺寸与中心（出生点）
	WorldWidth  = 3000.0
	WorldHeight = 3000.0
	SpawnX      = WorldWidth / 2
	SpawnY      = WorldHeight / 2

	// PlayerMaxHP 玩家满血值
	PlayerMaxHP = 100
	// NameMaxLen 玩家昵称长度上限
	NameMaxLen = 15

	// StartCircleRadius 开局时玩家围绕中心站位的半径
	StartCircleRadius = 100.0

	// 刷怪数量：cap(wave) = BaseZombiesPerWave + ZombiesPerWaveStep*(wave-1)
	BaseZombiesPerWave = 5
	ZombiesPerWaveStep = 3

	// 僵尸属性按波次线性成长（速度与伤害设上限）
	ZombieBaseHP     = 50
	ZombieHPStep     = 12
	ZombieBaseSpeed  = 45.0 // 单位/秒
	ZombieSpeedStep  = 5.0
	ZombieMaxSpeed   = 90.0
	ZombieBaseDamage = 10
	ZombieDamageStep = 2
	ZombieMaxDamage  = 20

	// 刷怪环：以世界中心为圆心的环带内随机取点
	SpawnRingInner = 600.0
	SpawnRingOuter = 900.0

	// MaxDeltaTime 帧间隔上限，进程卡顿时避免积分爆炸
	MaxDeltaTime = 250 * time.Millisecond
)

var tickInterval = time.Second / TicksPerSecond // 50ms

// SimConfig 房间内可热更的模拟参数（经 /admin/config 调整）
type SimConfig struct {
	SpawnInterval  time.Duration // 刷怪间隔
	AttackCooldown time.Duration // 僵尸攻击冷却
	EngageRadius   float64       // 近战触发距离
}

// DefaultSimConfig 参考实现的默认参数
func DefaultSimConfig() SimConfig {
	return SimConfig{
		SpawnInterval:  2 * time.Second,
		AttackCooldown: time.Second,
		EngageRadius:   60,
	}
}

// zombieCap 当前波次允许同时存在的僵尸数
func zombieCap(wave int) int {
	return BaseZombiesPerWave + ZombiesPerWaveStep*(wave-1)
}
