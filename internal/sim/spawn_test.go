package sim

import "testing"

func TestPlayerSpawnDeductsCost(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(50), WithMaxCost(100))
	b := newTestBattle(nil, cfg, nil)

	b.RequestPlayerSpawn(1) // Levy, cost 30
	b.Update()

	if len(b.Entities()) != 1 {
		t.Fatalf("Expected 1 entity, got %d", len(b.Entities()))
	}
	e := b.Entities()[0]
	if !e.IsPlayer {
		t.Error("Player request should produce a player-side entity")
	}
	if e.Health != 100 || e.MaxHealth != 100 {
		t.Errorf("Expected health 100/100 from master data, got %v/%v", e.Health, e.MaxHealth)
	}
	if e.State != StateIdle {
		t.Errorf("New entity should be idle, got %v", e.State)
	}
	if e.Distance != 2 {
		// The spawn tick's movement phase already ran once at speed 2.
		t.Errorf("Expected distance 2 after spawn tick, got %v", e.Distance)
	}
	if b.AvailableCost() != 20 {
		t.Errorf("Expected 50-30=20 cost remaining, got %v", b.AvailableCost())
	}
}

func TestPlayerSpawnUnaffordableDropped(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(25), WithMaxCost(100))
	b := newTestBattle(nil, cfg, nil)

	b.RequestPlayerSpawn(1) // cost 30 > 25 recovered this tick
	b.Update()

	if len(b.Entities()) != 0 {
		t.Fatal("Unaffordable request should be dropped")
	}
	if b.AvailableCost() != 25 {
		t.Errorf("Dropped request must not touch the pool, got %v", b.AvailableCost())
	}

	// Dropped requests are never carried to the next tick, even once
	// the pool could cover them.
	b.Update()
	if len(b.Entities()) != 0 {
		t.Error("Dropped request must not be retried on a later tick")
	}
	if b.AvailableCost() != 50 {
		t.Errorf("Recovery should continue normally, got %v", b.AvailableCost())
	}
}

func TestAISpawnIgnoresCost(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(0), WithMaxCost(100))
	b := newTestBattle(nil, cfg, nil)

	b.RequestAISpawn(2) // Knight, cost 75, pool is 0
	b.Update()

	if len(b.Entities()) != 1 {
		t.Fatal("AI request must always be granted")
	}
	if b.Entities()[0].IsPlayer {
		t.Error("AI request should produce an AI-side entity")
	}
	if b.AvailableCost() != 0 {
		t.Errorf("AI spawn must not touch the pool, got %v", b.AvailableCost())
	}
}

func TestUnknownUnitSilentlyDropped(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(100), WithMaxCost(100))
	b := newTestBattle(nil, cfg, nil)

	b.RequestPlayerSpawn(404)
	b.RequestAISpawn(404)
	b.Update()

	if len(b.Entities()) != 0 {
		t.Error("Unknown unit ids should be dropped without effect")
	}
	if b.AvailableCost() != 100 {
		t.Errorf("Dropped unknown request must not touch the pool, got %v", b.AvailableCost())
	}
}

func TestEntityIDsStrictlyIncreasing(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(0))
	b := newTestBattle(nil, cfg, nil)

	b.RequestAISpawn(1)
	b.RequestAISpawn(2)
	b.RequestAISpawn(3)
	b.Update()

	entities := b.Entities()
	if len(entities) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(entities))
	}
	for i, e := range entities {
		if e.ID != i {
			t.Errorf("Expected ids 0,1,2 in grant order; entity %d has id %d", i, e.ID)
		}
	}
}

func TestDrainOrderIsEnqueueOrder(t *testing.T) {
	// Pool covers Levy+Raider but not Knight in between: the Knight is
	// dropped and the later, cheaper request still gets its turn.
	cfg := NewConfig(WithCostRecovery(80), WithMaxCost(200))
	b := newTestBattle(nil, cfg, nil)

	b.RequestPlayerSpawn(1) // 30, pool 80 -> 50
	b.RequestPlayerSpawn(2) // 75 > 50, dropped
	b.RequestPlayerSpawn(3) // 50, pool 50 -> 0
	b.Update()

	entities := b.Entities()
	if len(entities) != 2 {
		t.Fatalf("Expected 2 grants, got %d", len(entities))
	}
	if entities[0].UnitID != 1 || entities[1].UnitID != 3 {
		t.Errorf("Expected units 1 then 3, got %d then %d", entities[0].UnitID, entities[1].UnitID)
	}
	if b.AvailableCost() != 0 {
		t.Errorf("Expected pool drained to 0, got %v", b.AvailableCost())
	}
}

func TestSpawnNotificationCarriesOrigin(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(100), WithMaxCost(100))
	d := &recordingDelegate{}
	b := newTestBattle(d, cfg, nil)

	b.RequestPlayerSpawn(1)
	b.RequestAISpawn(1)
	b.Update()

	if len(d.origins) != 2 {
		t.Fatalf("Expected 2 spawn notifications, got %d", len(d.origins))
	}
	if d.origins[0] != OriginPlayerBase {
		t.Errorf("Expected player base origin, got %v", d.origins[0])
	}
	if d.origins[1] != OriginEnemyBase {
		t.Errorf("Expected enemy base origin, got %v", d.origins[1])
	}
}

func TestSpawnFromCallbackDeferredToNextTick(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(0))
	d := &recordingDelegate{}
	b := newTestBattle(d, cfg, nil)

	reinforced := false
	d.onSpawn = func(e *Entity, _ SpawnOrigin) {
		if !reinforced {
			reinforced = true
			b.RequestAISpawn(3)
		}
	}

	b.RequestAISpawn(1)
	b.Update()

	if len(b.Entities()) != 1 {
		t.Fatalf("Callback spawn must not be processed inline; got %d entities", len(b.Entities()))
	}

	b.Update()
	if len(b.Entities()) != 2 {
		t.Fatalf("Callback spawn should land on the next tick; got %d entities", len(b.Entities()))
	}
	if b.Entities()[1].UnitID != 3 {
		t.Errorf("Expected unit 3 from the callback, got %d", b.Entities()[1].UnitID)
	}
}

func TestSpawnBaseOutsideEconomy(t *testing.T) {
	cfg := NewConfig(WithCostRecovery(0))
	b := newTestBattle(nil, cfg, nil)

	base := b.SpawnBase(9, true)
	if base == nil {
		t.Fatal("SpawnBase with a known unit id should succeed")
	}
	if !base.IsBase || !base.IsPlayer {
		t.Error("Base should carry the base flag and the requested side")
	}
	if b.AvailableCost() != 0 {
		t.Errorf("Base placement must not touch the pool, got %v", b.AvailableCost())
	}

	b.Update()
	if base.Distance != 0 {
		t.Errorf("Bases must hold ground, got distance %v", base.Distance)
	}

	if b.SpawnBase(404, false) != nil {
		t.Error("SpawnBase with an unknown unit id should return nil")
	}
}
