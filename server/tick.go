package server

import (
	"math"
	"time"
)

// startTickerLocked 启动房间的 Tick 循环（开局时调用，调用方持有 r.mu）
// 每个 Active 房间一个协程，退役时经 stop 通道退出
func (r *Room) startTickerLocked() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.tick(time.Now())
			}
		}
	}()
}

// stopTicker 终止 Tick 调度，恰好一次；退役后的房间不再产生任何发送
func (r *Room) stopTicker() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// tick 单步推进：刷怪 → 僵尸 AI → 波次推进 → 全量快照广播
// 顺序固定，快照总是反映本 Tick 之前收到的所有改动
func (r *Room) tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return
	}

	dt := now.Sub(r.lastTick)
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime // 进程卡顿后不做追帧积分
	}
	r.lastTick = now

	r.spawnZombiesLocked(dt)
	r.updateZombiesLocked(now, dt)
	r.advanceWaveLocked()
	r.broadcastLocked(worldUpdateMsg{
		Type:    "worldUpdate",
		Zombies: r.zombieStatesLocked(),
		Players: r.playerStatesLocked(),
	}, 0)

	r.metrics.AddTick(time.Since(now).Nanoseconds())
}

// spawnZombiesLocked 刷怪策略：场上数量低于波次上限时累积时间，
// 累积超过刷怪间隔就在环带上生成一只并清零累积
func (r *Room) spawnZombiesLocked(dt time.Duration) {
	if len(r.zombies) >= zombieCap(r.wave) {
		return
	}
	r.spawnAccum += dt
	if r.spawnAccum < r.cfg.SpawnInterval {
		return
	}
	r.spawnAccum = 0
	z := newZombie(r.rng, r.wave)
	r.zombies[z.ID] = z
	r.metrics.IncSpawn()
}

// updateZombiesLocked 僵尸 AI：追最近的活人，进入近战距离后按冷却啃咬
// 受击者私收 playerHit；打死则广播 playerDied 并原地满血重生在出生点
func (r *Room) updateZombiesLocked(now time.Time, dt time.Duration) {
	for _, z := range r.zombies {
		target := r.nearestLivingLocked(z.X, z.Y)
		if target == nil {
			continue // 全员倒地，僵尸发呆
		}

		dx := target.X - z.X
		dy := target.Y - z.Y
		dist := math.Hypot(dx, dy)
		z.Angle = math.Atan2(dy, dx)

		if dist > r.cfg.EngageRadius {
			if dist > 0 {
				step := z.Speed * dt.Seconds()
				z.X += dx / dist * step
				z.Y += dy / dist * step
			}
			continue
		}

		if now.Sub(z.lastAttack) < r.cfg.AttackCooldown {
			continue
		}
		z.lastAttack = now
		r.metrics.IncAttack()

		target.HP -= z.Damage
		if target.HP < 0 {
			target.HP = 0
		}
		r.sendToLocked(target, playerHitMsg{Type: "playerHit", HP: target.HP})

		if target.HP == 0 {
			// 死亡事件带上临终击杀数，然后满血回出生点；玩家不离场
			r.broadcastLocked(playerDiedMsg{Type: "playerDied", PlayerID: target.ID, Kills: target.Kills}, 0)
			target.HP = PlayerMaxHP
			target.X = SpawnX
			target.Y = SpawnY
			Log.Infof("player #%d died in room %s (wave %d)", target.ID, r.Code, r.wave)
		}
	}
}

// advanceWaveLocked 本波击杀数达到配额且场上清空后进入下一波
func (r *Room) advanceWaveLocked() {
	if r.killedInWave < zombieCap(r.wave) || len(r.zombies) > 0 {
		return
	}
	r.wave++
	r.killedInWave = 0
	r.spawnAccum = 0
	r.broadcastLocked(waveStartMsg{Type: "waveStart", Wave: r.wave}, 0)
	Log.Infof("room %s advanced to wave %d", r.Code, r.wave)
}

// nearestLivingLocked 平面欧氏距离最近且 HP>0 的玩家，无人存活返回 nil
func (r *Room) nearestLivingLocked(x, y float64) *Player {
	var best *Player
	bestDist := math.MaxFloat64
	for _, p := range r.players {
		if p.HP <= 0 {
			continue
		}
		d := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}
