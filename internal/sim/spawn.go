package sim

// spawnRequest is one pending entry in the spawn queue.
type spawnRequest struct {
	unitID   int
	isPlayer bool
}

// RequestSpawn enqueues a spawn request for the next drain point.
// Nothing is validated here; unknown unit ids are silently dropped when
// the queue drains, and unaffordable player requests are dropped for
// that tick without being re-queued.
func (b *Battle) RequestSpawn(unitID int, isPlayer bool) {
	b.mustInit()
	b.pending = append(b.pending, spawnRequest{unitID: unitID, isPlayer: isPlayer})
}

// RequestPlayerSpawn enqueues a player-side spawn, subject to cost.
func (b *Battle) RequestPlayerSpawn(unitID int) {
	b.RequestSpawn(unitID, true)
}

// RequestAISpawn enqueues an AI-side spawn, which is always granted.
func (b *Battle) RequestAISpawn(unitID int) {
	b.RequestSpawn(unitID, false)
}

// queueWave enqueues the AI spawns scheduled for the current frame.
// A frame with no wave is a no-op; waves are consumed implicitly by the
// frame counter advancing past them.
func (b *Battle) queueWave() {
	for _, entry := range b.wave(b.frame) {
		b.pending = append(b.pending, spawnRequest{unitID: entry.UnitID})
	}
}

// drainSpawns processes every pending request in enqueue order against a
// tentative pool seeded from the available cost. Player requests debit
// the pool or are dropped; AI requests never touch it. Afterward the
// tentative pool becomes the authoritative available cost and is
// re-reported. The queue is cleared up front so that requests issued
// from inside a delegate callback land on the next tick, never inline.
func (b *Battle) drainSpawns() {
	if len(b.pending) == 0 {
		return
	}
	queue := b.pending
	b.pending = nil

	pool := b.available
	for _, req := range queue {
		um, ok := b.units[req.unitID]
		if !ok {
			continue
		}
		if req.isPlayer {
			if um.Cost > pool {
				continue
			}
			pool -= um.Cost
		}
		b.spawnEntity(um, req.isPlayer, false)
	}

	b.available = b.reportCost(pool)
}

// spawnEntity allocates the next entity id, appends the entity to the
// battle, and synchronously notifies the delegate.
func (b *Battle) spawnEntity(um UnitMaster, isPlayer, isBase bool) *Entity {
	e := &Entity{
		ID:         b.nextID,
		UnitID:     um.ID,
		IsPlayer:   isPlayer,
		IsBase:     isBase,
		MaxHealth:  um.MaxHealth,
		Health:     um.MaxHealth,
		State:      StateIdle,
		targetID:   -1,
		tickHealth: um.MaxHealth,
	}
	b.nextID++
	b.entities = append(b.entities, e)

	origin := OriginEnemyBase
	if isPlayer {
		origin = OriginPlayerBase
	}
	b.delegate.UnitEntitySpawned(e, origin)
	return e
}

// SpawnBase places a base emplacement for one side, outside the cost
// economy. Bases hold ground: they never walk and never attack, but they
// can be locked and destroyed. Returns nil for an unknown unit id.
func (b *Battle) SpawnBase(unitID int, isPlayer bool) *Entity {
	b.mustInit()
	um, ok := b.units[unitID]
	if !ok {
		return nil
	}
	return b.spawnEntity(um, isPlayer, true)
}
