package tui

import (
	"testing"

	"github.com/vovakirdan/lane-battle/internal/sim"
)

func laneTestUnits() []sim.UnitMaster {
	return []sim.UnitMaster{
		{ID: 1, Name: "Footman", Cost: 10, MaxHealth: 100, Attack: 10, Speed: 2, HitFrame: 2},
		{ID: 2, Name: "Drone", Cost: 10, MaxHealth: 100, Attack: 0, Speed: 2, HitFrame: 0},
		{ID: 3, Name: "Crawler", Cost: 10, MaxHealth: 100, Attack: 5, Speed: 1, HitFrame: 1},
		{ID: 9, Name: "Keep", Cost: 0, MaxHealth: 500, Attack: 0, Speed: 0, HitFrame: 0},
	}
}

func newLaneBattle(laneLen int) (*sim.Battle, *LaneDelegate) {
	units := laneTestUnits()
	cfg := sim.NewConfig(sim.WithCostRecovery(100), sim.WithMaxCost(100))
	d := NewLaneDelegate(laneLen, units)
	b := sim.New(d)
	b.Init(sim.InitParams{
		Stage:  sim.StageMaster{ID: 1, Name: "test"},
		Units:  units,
		Roster: []int{1, 2, 3},
		Config: &cfg,
	})
	d.Attach(b)
	return b, d
}

func TestColumnMapping(t *testing.T) {
	_, d := newLaneBattle(10)

	cases := []struct {
		name    string
		entity  *sim.Entity
		wantCol int
	}{
		{"player at origin", &sim.Entity{IsPlayer: true, Distance: 0}, 0},
		{"player mid lane", &sim.Entity{IsPlayer: true, Distance: 3.7}, 3},
		{"player clamped at far end", &sim.Entity{IsPlayer: true, Distance: 40}, 9},
		{"enemy at origin", &sim.Entity{IsPlayer: false, Distance: 0}, 9},
		{"enemy mid lane", &sim.Entity{IsPlayer: false, Distance: 3}, 6},
		{"enemy clamped at far end", &sim.Entity{IsPlayer: false, Distance: 40}, 0},
	}
	for _, tc := range cases {
		if got := d.Column(tc.entity); got != tc.wantCol {
			t.Errorf("%s: Column() = %d, want %d", tc.name, got, tc.wantCol)
		}
	}
}

func TestContactLock(t *testing.T) {
	_, d := newLaneBattle(10)

	player := &sim.Entity{ID: 0, UnitID: 1, IsPlayer: true, Distance: 4}
	adjacent := &sim.Entity{ID: 1, UnitID: 1, IsPlayer: false, Distance: 4} // col 5
	far := &sim.Entity{ID: 2, UnitID: 1, IsPlayer: false, Distance: 1}      // col 8

	if !d.ShouldLockUnit(player, adjacent) {
		t.Error("expected lock approval for adjacent columns")
	}
	if d.ShouldLockUnit(player, far) {
		t.Error("expected no lock approval with a gap between columns")
	}

	// A fast unit can overshoot past its target; crossed columns still count as contact.
	crossed := &sim.Entity{ID: 3, UnitID: 1, IsPlayer: false, Distance: 7} // col 2
	if !d.ShouldLockUnit(player, crossed) {
		t.Error("expected lock approval after overshooting the target column")
	}
}

func TestWalkStopsAtLaneEnd(t *testing.T) {
	b, _ := newLaneBattle(10)
	b.RequestAISpawn(3) // speed 1

	for i := 0; i < 30; i++ {
		b.Update()
	}

	e := b.Entities()[0]
	if e.Distance != 9 {
		t.Errorf("enemy distance = %v, want 9 (stopped at lane end)", e.Distance)
	}
}

func TestWalkStopsAtContact(t *testing.T) {
	b, _ := newLaneBattle(10)
	b.SpawnBase(9, true) // player keep at column 0
	b.RequestAISpawn(3)

	for i := 0; i < 30; i++ {
		b.Update()
	}

	var crawler *sim.Entity
	for _, e := range b.Entities() {
		if !e.IsBase {
			crawler = e
		}
	}
	// Column 1 is adjacent to the keep at column 0; the crawler holds there.
	if crawler.Distance != 8 {
		t.Errorf("enemy distance = %v, want 8 (adjacent to keep)", crawler.Distance)
	}
	if crawler.State != sim.StateLocked {
		t.Errorf("enemy state = %v, want %v", crawler.State, sim.StateLocked)
	}
}

func TestHitFrameCadence(t *testing.T) {
	b, _ := newLaneBattle(6)
	b.RequestPlayerSpawn(1) // Footman: attack 10, hit frame 2
	b.RequestAISpawn(2)     // Drone: attack 0, never hits

	// Both spawn and walk on tick 1, meeting at columns 2 and 3; the
	// mutual lock forms on the same tick with zero lock age. A hit lands
	// every second lock tick, so the drone loses 10 on ticks 3 and 5.
	healthAfter := map[int]float64{1: 100, 2: 100, 3: 90, 4: 90, 5: 80}
	for tick := 1; tick <= 5; tick++ {
		b.Update()
		want, ok := healthAfter[tick]
		if !ok {
			continue
		}
		var drone *sim.Entity
		for _, e := range b.Entities() {
			if !e.IsPlayer {
				drone = e
			}
		}
		if drone.Health != want {
			t.Errorf("tick %d: drone health = %v, want %v", tick, drone.Health, want)
		}
	}
}

func TestHitFrameZeroNeverDamages(t *testing.T) {
	b, _ := newLaneBattle(6)
	b.RequestPlayerSpawn(2) // Drone: hit frame 0
	b.RequestAISpawn(2)

	for i := 0; i < 60; i++ {
		b.Update()
	}
	for _, e := range b.Entities() {
		if e.Health != e.MaxHealth {
			t.Errorf("entity %d health = %v, want full %v", e.ID, e.Health, e.MaxHealth)
		}
	}
}

func TestVerdictOnBaseFall(t *testing.T) {
	b, _ := newLaneBattle(10)
	b.SpawnBase(9, true)
	enemyBase := b.SpawnBase(9, false)
	b.Update()

	if outcome, over := Verdict(b, 0); over {
		t.Errorf("expected undecided battle, got outcome %q", outcome)
	}

	b.DealDamage(enemyBase.ID, 1000)
	b.Update()

	outcome, over := Verdict(b, 0)
	if !over || outcome != "player" {
		t.Errorf("Verdict() = %q, %v; want \"player\", true", outcome, over)
	}
}

func TestVerdictTimeout(t *testing.T) {
	b, _ := newLaneBattle(10)
	b.SpawnBase(9, true)
	b.SpawnBase(9, false)

	for i := 0; i < 5; i++ {
		b.Update()
	}

	if outcome, over := Verdict(b, 5); !over || outcome != "timeout" {
		t.Errorf("Verdict() = %q, %v; want \"timeout\", true", outcome, over)
	}
	if _, over := Verdict(b, 100); over {
		t.Error("expected undecided battle before the frame limit")
	}
}

func TestCasualtiesSkipBases(t *testing.T) {
	b, _ := newLaneBattle(10)
	base := b.SpawnBase(9, true)
	b.RequestAISpawn(3)
	b.Update()

	var crawler *sim.Entity
	for _, e := range b.Entities() {
		if !e.IsBase {
			crawler = e
		}
	}
	b.DealDamage(crawler.ID, 1000)
	b.DealDamage(base.ID, 1000)
	b.Update()

	playerLost, enemyLost := Casualties(b)
	if playerLost != 0 || enemyLost != 1 {
		t.Errorf("Casualties() = %d, %d; want 0, 1 (bases excluded)", playerLost, enemyLost)
	}
}

func TestPeakCostTracksObservedMaximum(t *testing.T) {
	units := laneTestUnits()
	cfg := sim.NewConfig(sim.WithCostRecovery(3), sim.WithMaxCost(100))
	d := NewLaneDelegate(10, units)
	b := sim.New(d)
	b.Init(sim.InitParams{
		Stage:  sim.StageMaster{ID: 1, Name: "test"},
		Units:  units,
		Roster: []int{1},
		Config: &cfg,
	})
	d.Attach(b)

	for i := 0; i < 5; i++ {
		b.Update()
	}
	// The pool climbed 3 per tick to 15; the cap was never reached.
	if d.PeakCost() != 15 {
		t.Errorf("PeakCost() = %v, want 15", d.PeakCost())
	}
	if d.MaxCost() != 100 {
		t.Errorf("MaxCost() = %v, want 100", d.MaxCost())
	}

	// Spending drops the pool; the peak holds at the pre-spawn report.
	b.RequestPlayerSpawn(1) // Footman: cost 10
	b.Update()
	if d.Cost() != 8 {
		t.Errorf("Cost() = %v, want 8 after the spawn debit", d.Cost())
	}
	if d.PeakCost() != 18 {
		t.Errorf("PeakCost() = %v, want 18", d.PeakCost())
	}
}

func TestDelegateCountsAndEvents(t *testing.T) {
	b, d := newLaneBattle(10)
	b.RequestPlayerSpawn(1)
	b.RequestAISpawn(2)
	b.Update()

	if d.PlayerSpawned() != 1 || d.EnemySpawned() != 1 {
		t.Errorf("spawn counts = %d, %d; want 1, 1", d.PlayerSpawned(), d.EnemySpawned())
	}

	events := d.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 event lines, got %d: %v", len(events), events)
	}
	if got := d.DrainEvents(); len(got) != 0 {
		t.Errorf("second drain returned %d lines, want 0", len(got))
	}
}
