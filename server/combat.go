package server

// ApplyZombieDamage 结算客户端上报的命中（zombieHit / zombieKill）
// 打空（已被别人杀掉或过期 ID）是静默空操作：同帧重复上报属正常现象
// 打死则移除僵尸、攻击者击杀数 +1，并向全房（含攻击者）广播 zombieKilled
func (r *Room) ApplyZombieDamage(attackerID PlayerID, zombieID string, damage int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, ok := r.zombies[zombieID]
	if !ok {
		return
	}

	z.HP -= damage
	if z.HP > 0 {
		return
	}

	delete(r.zombies, zombieID)
	r.killedInWave++
	r.metrics.IncKill()

	kills := 0
	if attacker, ok := r.players[attackerID]; ok {
		attacker.Kills++
		kills = attacker.Kills
	}

	r.broadcastLocked(zombieKilledMsg{
		Type:     "zombieKilled",
		ZombieID: zombieID,
		PlayerID: attackerID,
		Kills:    kills,
	}, 0)
}
