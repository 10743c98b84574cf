package sim

// UnitState is the lifecycle state of a spawned entity.
// Transitions only move forward: Idle -> Locked -> Knockback -> Dead,
// with Knockback and Locked able to fall back to Idle. Dead is terminal.
type UnitState int

const (
	StateIdle UnitState = iota
	StateLocked
	StateKnockback
	StateDead
)

// String returns a human-readable name for the state.
func (s UnitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocked:
		return "locked"
	case StateKnockback:
		return "knockback"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// SpawnOrigin tells the presentation layer which end of the lane a new
// entity appears from. The core attaches no geometry to it.
type SpawnOrigin int

const (
	OriginPlayerBase SpawnOrigin = iota
	OriginEnemyBase
)

// String returns a human-readable name for the origin.
func (o SpawnOrigin) String() string {
	if o == OriginPlayerBase {
		return "player base"
	}
	return "enemy base"
}

// Entity is one spawned combatant (or base emplacement).
// The spawn pipeline creates entities and the state machine mutates them;
// nothing in the core ever removes an entity from the battle. Cleanup of
// dead entities is the presentation layer's job.
type Entity struct {
	ID        int     // unique within a battle, strictly increasing in spawn order
	UnitID    int     // key into the unit master table
	IsPlayer  bool    // ownership side, immutable
	IsBase    bool    // base emplacements never walk or attack
	MaxHealth float64
	Health    float64 // always within [0, MaxHealth]
	Distance  float64 // cumulative forward movement, non-decreasing while idle
	State     UnitState

	targetID   int     // entity id this one is locked onto, -1 when none
	lockTicks  int     // ticks spent in the current lock
	tickHealth float64 // health at the end of the previous resolution pass
}

// Alive reports whether the entity is still in play.
func (e *Entity) Alive() bool {
	return e.State != StateDead
}

// Target returns the id of the entity this one is locked onto,
// or -1 when it holds no lock.
func (e *Entity) Target() int {
	return e.targetID
}

// LockTicks returns how many ticks the entity has held its current lock.
// The presentation layer uses this to pace hit frames.
func (e *Entity) LockTicks() int {
	return e.lockTicks
}

// HealthRatio returns Health/MaxHealth, or 0 for a zero-health-cap entity.
func (e *Entity) HealthRatio() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return e.Health / e.MaxHealth
}
