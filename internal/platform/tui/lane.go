package tui

import (
	"fmt"

	"github.com/vovakirdan/lane-battle/internal/sim"
)

// maxEventLines caps the delegate's event feed.
const maxEventLines = 64

// LaneDelegate implements sim.Delegate with the only geometry the
// terminal has: a straight lane of laneLen columns. Player entities at
// distance d occupy column d, AI entities column laneLen-1-d, so the
// sides advance toward each other. Contact, walk permission and hit
// frames are all derived from that mapping; the simulation itself never
// sees a column.
type LaneDelegate struct {
	battle  *sim.Battle
	units   map[int]sim.UnitMaster
	laneLen int

	cost       float64
	maxCost    float64
	peakCost   float64
	affordable []int
	events     []string

	playerSpawned int
	enemySpawned  int
}

// NewLaneDelegate creates a delegate for a lane of the given length.
func NewLaneDelegate(laneLen int, units []sim.UnitMaster) *LaneDelegate {
	if laneLen < 4 {
		laneLen = 4
	}
	byID := make(map[int]sim.UnitMaster, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return &LaneDelegate{units: byID, laneLen: laneLen}
}

// Attach binds the delegate to its battle. The delegate reads the
// entity list to answer walk and contact queries; it never mutates the
// battle from inside a callback.
func (d *LaneDelegate) Attach(b *sim.Battle) {
	d.battle = b
}

// LaneLen returns the lane length in columns.
func (d *LaneDelegate) LaneLen() int {
	return d.laneLen
}

// Column maps an entity's distance onto a lane column.
func (d *LaneDelegate) Column(e *sim.Entity) int {
	col := int(e.Distance)
	if !e.IsPlayer {
		col = d.laneLen - 1 - col
	}
	if col < 0 {
		col = 0
	}
	if col >= d.laneLen {
		col = d.laneLen - 1
	}
	return col
}

// contact reports whether attacker has reached (or overshot) the cell
// adjacent to target.
func (d *LaneDelegate) contact(attacker, target *sim.Entity) bool {
	ca, ct := d.Column(attacker), d.Column(target)
	if attacker.IsPlayer {
		return ca >= ct-1
	}
	return ca <= ct+1
}

// AvailableCostUpdated keeps the latest cost snapshot for the HUD and
// tracks the highest pool value the battle ever reported.
func (d *LaneDelegate) AvailableCostUpdated(cost, maxCost float64, affordable []int) {
	d.cost = cost
	d.maxCost = maxCost
	if cost > d.peakCost {
		d.peakCost = cost
	}
	d.affordable = append(d.affordable[:0], affordable...)
}

// UnitEntitySpawned counts per-side spawns and records an event line.
func (d *LaneDelegate) UnitEntitySpawned(e *sim.Entity, origin sim.SpawnOrigin) {
	if e.IsPlayer {
		d.playerSpawned++
	} else {
		d.enemySpawned++
	}

	name := fmt.Sprintf("unit %d", e.UnitID)
	if um, ok := d.units[e.UnitID]; ok && um.Name != "" {
		name = um.Name
	}
	d.pushEvent(fmt.Sprintf("%s deployed from %s", name, origin))
}

// UnitEntityWalked is a per-tick movement notification; the watch view
// redraws the whole lane anyway, so there is nothing to record.
func (d *LaneDelegate) UnitEntityWalked(*sim.Entity) {}

// ShouldUnitWalk permits a step unless the entity is already in contact
// with an opposing live entity or has reached the far end of the lane.
func (d *LaneDelegate) ShouldUnitWalk(e *sim.Entity) bool {
	col := d.Column(e)
	if e.IsPlayer && col >= d.laneLen-1 {
		return false
	}
	if !e.IsPlayer && col <= 0 {
		return false
	}

	if d.battle == nil {
		return true
	}
	for _, o := range d.battle.Entities() {
		if o.ID == e.ID || o.IsPlayer == e.IsPlayer || !o.Alive() {
			continue
		}
		if d.contact(e, o) {
			return false
		}
	}
	return true
}

// ShouldLockUnit approves a lock exactly at contact.
func (d *LaneDelegate) ShouldLockUnit(attacker, target *sim.Entity) bool {
	return d.contact(attacker, target)
}

// ShouldLockBase approves a base lock exactly at contact.
func (d *LaneDelegate) ShouldLockBase(attacker, target *sim.Entity) bool {
	return d.contact(attacker, target)
}

// ShouldDamage lands a hit every HitFrame ticks of a held lock.
func (d *LaneDelegate) ShouldDamage(attacker, _ *sim.Entity) bool {
	um, ok := d.units[attacker.UnitID]
	if !ok || um.HitFrame <= 0 {
		return false
	}
	ticks := attacker.LockTicks()
	return ticks > 0 && ticks%um.HitFrame == 0
}

// pushEvent appends a line to the capped event feed.
func (d *LaneDelegate) pushEvent(line string) {
	d.events = append(d.events, line)
	if len(d.events) > maxEventLines {
		d.events = d.events[len(d.events)-maxEventLines:]
	}
}

// Cost returns the latest reported cost pool value.
func (d *LaneDelegate) Cost() float64 { return d.cost }

// MaxCost returns the reported cost cap.
func (d *LaneDelegate) MaxCost() float64 { return d.maxCost }

// PeakCost returns the highest cost pool value reported so far.
func (d *LaneDelegate) PeakCost() float64 { return d.peakCost }

// Affordable returns the latest affordable roster ids.
func (d *LaneDelegate) Affordable() []int {
	return append([]int(nil), d.affordable...)
}

// PlayerSpawned returns how many player entities were created.
func (d *LaneDelegate) PlayerSpawned() int { return d.playerSpawned }

// EnemySpawned returns how many AI entities were created.
func (d *LaneDelegate) EnemySpawned() int { return d.enemySpawned }

// Events returns the tail of the event feed, newest last.
func (d *LaneDelegate) Events(n int) []string {
	if n <= 0 || n > len(d.events) {
		n = len(d.events)
	}
	return append([]string(nil), d.events[len(d.events)-n:]...)
}

// DrainEvents returns all buffered event lines and clears the feed.
// The headless runner uses this to log each line exactly once.
func (d *LaneDelegate) DrainEvents() []string {
	out := d.events
	d.events = nil
	return out
}

var _ sim.Delegate = (*LaneDelegate)(nil)

// Verdict inspects the battle's base emplacements and reports the
// outcome: "player" or "enemy" when the opposing keep fell, "draw" when
// both fell on the same tick, "timeout" once maxFrames elapsed. over is
// false while the battle is still undecided.
func Verdict(b *sim.Battle, maxFrames int) (outcome string, over bool) {
	playerBaseDown := false
	enemyBaseDown := false
	hasBases := false
	for _, e := range b.Entities() {
		if !e.IsBase {
			continue
		}
		hasBases = true
		if e.State == sim.StateDead {
			if e.IsPlayer {
				playerBaseDown = true
			} else {
				enemyBaseDown = true
			}
		}
	}

	switch {
	case hasBases && playerBaseDown && enemyBaseDown:
		return "draw", true
	case hasBases && enemyBaseDown:
		return "player", true
	case hasBases && playerBaseDown:
		return "enemy", true
	}

	if maxFrames > 0 && b.Frame() >= maxFrames {
		return "timeout", true
	}
	return "", false
}

// Casualties counts dead non-base entities per side.
func Casualties(b *sim.Battle) (playerLost, enemyLost int) {
	for _, e := range b.Entities() {
		if e.IsBase || e.State != sim.StateDead {
			continue
		}
		if e.IsPlayer {
			playerLost++
		} else {
			enemyLost++
		}
	}
	return playerLost, enemyLost
}
