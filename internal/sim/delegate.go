package sim

// Delegate is the seam between the battle core and its presentation
// layer. The core asks through it the questions it cannot answer on its
// own (anything derived from sprite geometry or animation frames) and
// announces the events the presentation reacts to.
//
// All calls happen synchronously inside Battle.Update. A delegate must
// not re-enter the battle's mutating entry points; spawn requests issued
// from inside a callback are queued and drained on the next tick.
type Delegate interface {
	// AvailableCostUpdated fires every tick with the clamped cost pool
	// and the roster unit ids currently affordable, even when the value
	// did not change.
	AvailableCostUpdated(cost, maxCost float64, affordableUnitIDs []int)

	// UnitEntitySpawned fires once per granted spawn request.
	UnitEntitySpawned(e *Entity, origin SpawnOrigin)

	// UnitEntityWalked fires after an idle entity gained distance.
	UnitEntityWalked(e *Entity)

	// ShouldUnitWalk reports whether an idle entity may advance this
	// tick. Only the presentation layer knows whether the path ahead is
	// blocked by another sprite.
	ShouldUnitWalk(e *Entity) bool

	// ShouldLockUnit reports whether attacker is in contact with target
	// and may commit to combat with it.
	ShouldLockUnit(attacker, target *Entity) bool

	// ShouldLockBase is ShouldLockUnit for base emplacement targets.
	ShouldLockBase(attacker, target *Entity) bool

	// ShouldDamage reports whether the attacker's current animation tick
	// is a hit frame against its locked target.
	ShouldDamage(attacker, target *Entity) bool
}

// NopDelegate is the explicit headless mode: movement is unconditional,
// contact never happens, notifications go nowhere. A Battle built with a
// nil delegate uses it, which keeps economy, waves and movement fully
// testable without any presentation layer.
type NopDelegate struct{}

func (NopDelegate) AvailableCostUpdated(float64, float64, []int) {}
func (NopDelegate) UnitEntitySpawned(*Entity, SpawnOrigin)       {}
func (NopDelegate) UnitEntityWalked(*Entity)                     {}
func (NopDelegate) ShouldUnitWalk(*Entity) bool                  { return true }
func (NopDelegate) ShouldLockUnit(*Entity, *Entity) bool         { return false }
func (NopDelegate) ShouldLockBase(*Entity, *Entity) bool         { return false }
func (NopDelegate) ShouldDamage(*Entity, *Entity) bool           { return false }

var _ Delegate = NopDelegate{}
