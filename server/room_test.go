package server

import (
	"testing"
	"time"
)

func TestJoinRespectsCapacity(t *testing.T) {
	_, room, _ := newTestRoom(t, RoomCapacity-1)
	extra := newTestPlayer(99)
	if err := room.Join(extra); err != ErrRoomFull {
		t.Fatalf("Join over capacity: got %v, want ErrRoomFull", err)
	}
}

func TestJoinRejectedAfterStart(t *testing.T) {
	reg, room, _ := newTestRoom(t, 1)
	defer reg.Retire(room.Code)
	if !room.Start(1) {
		t.Fatal("host Start failed")
	}
	if err := room.Join(newTestPlayer(99)); err != ErrGameStarted {
		t.Fatalf("Join after start: got %v, want ErrGameStarted", err)
	}
}

func TestJoinBroadcastExcludesJoiner(t *testing.T) {
	_, room, players := newTestRoom(t, 1)
	p3 := newTestPlayer(3)
	if err := room.Join(p3); err != nil {
		t.Fatalf("join: %v", err)
	}

	for _, p := range players {
		joined := messagesOfType(drainMessages(t, p), "playerJoined")
		if len(joined) != 1 {
			t.Fatalf("player #%d saw %d playerJoined, want 1", p.ID, len(joined))
		}
		payload := joined[0]["player"].(map[string]any)
		if PlayerID(payload["id"].(float64)) != p3.ID {
			t.Fatalf("playerJoined for wrong id: %v", payload["id"])
		}
	}
	if got := drainMessages(t, p3); len(got) != 0 {
		t.Fatalf("joiner received own join broadcast: %v", got)
	}
}

// Scenario C：房主离开按加入顺序交接，旧房主无法再开局
func TestHostReassignment(t *testing.T) {
	_, room, players := newTestRoom(t, 2)
	host, p2, p3 := players[0], players[1], players[2]

	room.Leave(host.ID)

	if room.Info().HostID != p2.ID {
		t.Fatalf("host = %d, want earliest joined %d", room.Info().HostID, p2.ID)
	}
	for _, p := range []*Player{p2, p3} {
		msgs := drainMessages(t, p)
		hosts := messagesOfType(msgs, "newHost")
		if len(hosts) != 1 || PlayerID(hosts[0]["hostId"].(float64)) != p2.ID {
			t.Fatalf("player #%d: newHost = %v", p.ID, hosts)
		}
		lefts := messagesOfType(msgs, "playerLeft")
		if len(lefts) != 1 || PlayerID(lefts[0]["playerId"].(float64)) != host.ID {
			t.Fatalf("player #%d: playerLeft = %v", p.ID, lefts)
		}
	}

	if room.Start(host.ID) {
		t.Fatal("departed ex-host started the game")
	}
	if !room.Start(p2.ID) {
		t.Fatal("new host could not start the game")
	}
	room.stopTicker()
}

func TestHostAlwaysMember(t *testing.T) {
	_, room, players := newTestRoom(t, 5)

	assertHostPresent := func() {
		t.Helper()
		room.mu.Lock()
		_, ok := room.players[room.hostID]
		room.mu.Unlock()
		if !ok {
			t.Fatal("hostId not present in participant set")
		}
	}

	// 乱序离场，host 不变量在每一步都成立
	for _, idx := range []int{2, 0, 4, 1} {
		room.Leave(players[idx].ID)
		assertHostPresent()
	}
}

func TestStartResetsRoomState(t *testing.T) {
	reg, room, players := newTestRoom(t, 1)
	defer reg.Retire(room.Code)

	room.mu.Lock()
	players[0].HP = 3
	players[0].Kills = 7
	z := newZombie(room.rng, 1)
	room.zombies[z.ID] = z
	room.wave = 4
	room.killedInWave = 2
	room.spawnAccum = time.Second
	room.mu.Unlock()

	if !room.Start(players[0].ID) {
		t.Fatal("Start failed")
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.state != StateActive {
		t.Fatal("room not Active after Start")
	}
	if room.wave != 1 || room.killedInWave != 0 || room.spawnAccum != 0 {
		t.Fatalf("wave state not reset: wave=%d killed=%d accum=%v", room.wave, room.killedInWave, room.spawnAccum)
	}
	if len(room.zombies) != 0 {
		t.Fatal("zombie set not cleared")
	}
	for _, p := range players {
		if p.HP != PlayerMaxHP || p.Kills != 0 {
			t.Fatalf("player #%d not reset: hp=%d kills=%d", p.ID, p.HP, p.Kills)
		}
	}
}

func TestStartIgnoredForNonHost(t *testing.T) {
	_, room, players := newTestRoom(t, 1)
	if room.Start(players[1].ID) {
		t.Fatal("non-host started the game")
	}
	if room.Start(0) {
		t.Fatal("unknown player started the game")
	}
	room.mu.Lock()
	state := room.state
	room.mu.Unlock()
	if state != StateLobby {
		t.Fatal("room left Lobby without host Start")
	}
}

func TestStartIgnoredWhenAlreadyActive(t *testing.T) {
	reg, room, players := newTestRoom(t, 0)
	defer reg.Retire(room.Code)
	if !room.Start(players[0].ID) {
		t.Fatal("first Start failed")
	}
	if room.Start(players[0].ID) {
		t.Fatal("second Start succeeded on Active room")
	}
}

func TestBroadcastExclusion(t *testing.T) {
	_, room, players := newTestRoom(t, 2)

	room.mu.Lock()
	room.broadcastLocked(waveStartMsg{Type: "waveStart", Wave: 9}, players[1].ID)
	room.mu.Unlock()

	for i, p := range players {
		got := messagesOfType(drainMessages(t, p), "waveStart")
		want := 1
		if i == 1 {
			want = 0
		}
		if len(got) != want {
			t.Fatalf("player #%d received %d copies, want %d", p.ID, len(got), want)
		}
	}
}

func TestPositionUpdateRelaysToOthers(t *testing.T) {
	_, room, players := newTestRoom(t, 1)
	room.UpdatePosition(players[0].ID, 123, 456, 1.5)

	if got := messagesOfType(drainMessages(t, players[0]), "playerMove"); len(got) != 0 {
		t.Fatalf("mover received own playerMove: %v", got)
	}
	moves := messagesOfType(drainMessages(t, players[1]), "playerMove")
	if len(moves) != 1 {
		t.Fatalf("peer received %d playerMove, want 1", len(moves))
	}
	if moves[0]["x"].(float64) != 123 || moves[0]["y"].(float64) != 456 {
		t.Fatalf("relayed wrong position: %v", moves[0])
	}

	room.mu.Lock()
	p := room.players[players[0].ID]
	if p.X != 123 || p.Y != 456 || p.Angle != 1.5 {
		t.Fatalf("authoritative position not updated: %+v", p)
	}
	room.mu.Unlock()
}

func TestSetNameTruncates(t *testing.T) {
	p := newTestPlayer(7)
	p.SetName("abcdefghijklmnopqrstuvwxyz")
	if len([]rune(p.Name)) != NameMaxLen {
		t.Fatalf("name %q not truncated to %d", p.Name, NameMaxLen)
	}
	p.SetName("")
	if p.Name != "Player 7" {
		t.Fatalf("empty name not defaulted: %q", p.Name)
	}
}
