package sim

// resolveStates applies this tick's state transitions grouped by state
// class, highest priority first: deaths, then knockbacks, then lock
// maintenance and new engagements. Each class is evaluated against the
// state as it stood when the class began and applied atomically, so the
// tick's outcome never depends on the order entities were spawned.
// The health baseline is snapshotted before the combat pass lands hits,
// so lock damage is visible to the next tick's knockback check just like
// external damage is.
func (b *Battle) resolveStates() {
	b.resolveDeaths()
	b.resolveKnockbacks()
	b.snapshotHealth()
	b.resolveLocks()
}

// resolveDeaths moves every entity at or below zero health to the
// terminal Dead state. Dead entities are excluded from every later pass
// but stay on the entity list until the presentation layer cleans up.
func (b *Battle) resolveDeaths() {
	for _, e := range b.entities {
		if e.State == StateDead {
			continue
		}
		if e.Health <= 0 {
			e.State = StateDead
			e.targetID = -1
			e.lockTicks = 0
		}
	}
}

// resolveKnockbacks first recovers entities staggered on the previous
// tick back to Idle, then staggers entities whose health ratio crossed
// downward through a configured threshold since the last pass. However
// many thresholds one drop crosses, a tick produces at most one
// knockback. Bases never stagger.
func (b *Battle) resolveKnockbacks() {
	for _, e := range b.entities {
		if e.State != StateKnockback {
			continue
		}
		e.State = StateIdle
	}

	for _, e := range b.entities {
		if e.State == StateDead || e.IsBase {
			continue
		}
		if e.MaxHealth <= 0 {
			continue
		}
		prev := e.tickHealth / e.MaxHealth
		cur := e.Health / e.MaxHealth
		if !b.crossedThreshold(prev, cur) {
			continue
		}
		e.State = StateKnockback
		e.targetID = -1
		e.lockTicks = 0
	}
}

// crossedThreshold reports whether the ratio dropped from strictly above
// a threshold to at-or-below it. Thresholds are sorted descending, so
// the first match is the highest one crossed.
func (b *Battle) crossedThreshold(prev, cur float64) bool {
	for _, t := range b.cfg.KnockbackHealthThresholds {
		if prev > t && cur <= t {
			return true
		}
	}
	return false
}

// resolveLocks runs the combat class: dissolve locks whose target is
// gone, land hits for held locks, then form new engagements for idle
// entities. New lock decisions are planned against the state at the
// start of the engagement step and applied in one batch.
func (b *Battle) resolveLocks() {
	// Locks on a dead or missing target dissolve back to Idle.
	for _, e := range b.entities {
		if e.State != StateLocked {
			continue
		}
		t := b.Entity(e.targetID)
		if t == nil || t.State == StateDead {
			e.State = StateIdle
			e.targetID = -1
			e.lockTicks = 0
		}
	}

	// Held locks age and may land a hit. The delegate decides whether
	// this tick is a hit frame; the damage itself is the attacker's
	// master attack stat, nothing more.
	for _, e := range b.entities {
		if e.State != StateLocked {
			continue
		}
		t := b.Entity(e.targetID)
		if t == nil {
			continue
		}
		e.lockTicks++
		if !b.delegate.ShouldDamage(e, t) {
			continue
		}
		um, ok := b.units[e.UnitID]
		if !ok {
			continue
		}
		t.Health -= um.Attack
		if t.Health < 0 {
			t.Health = 0
		}
	}

	b.planEngagements()
}

// lockPlan is one engagement decided but not yet applied.
type lockPlan struct {
	attacker *Entity
	target   *Entity
}

// planEngagements matches idle entities against live opposing entities.
// A lock needs the delegate's approval (only it knows contact), and
// under ChivalrousEngage a unit target already held by a live attacker
// is off limits, including to attackers planned earlier this same tick.
func (b *Battle) planEngagements() {
	held := make(map[int]bool)
	if b.cfg.ChivalrousEngage {
		for _, e := range b.entities {
			if e.State == StateLocked && e.targetID >= 0 {
				held[e.targetID] = true
			}
		}
	}

	var plans []lockPlan
	for _, attacker := range b.entities {
		if attacker.State != StateIdle || attacker.IsBase {
			continue
		}
		for _, target := range b.entities {
			if target.ID == attacker.ID || target.IsPlayer == attacker.IsPlayer {
				continue
			}
			if target.State == StateDead {
				continue
			}
			if b.cfg.ChivalrousEngage && !target.IsBase && held[target.ID] {
				continue
			}

			allowed := false
			if target.IsBase {
				allowed = b.delegate.ShouldLockBase(attacker, target)
			} else {
				allowed = b.delegate.ShouldLockUnit(attacker, target)
			}
			if !allowed {
				continue
			}

			plans = append(plans, lockPlan{attacker: attacker, target: target})
			if b.cfg.ChivalrousEngage && !target.IsBase {
				held[target.ID] = true
			}
			break
		}
	}

	for _, p := range plans {
		p.attacker.State = StateLocked
		p.attacker.targetID = p.target.ID
		p.attacker.lockTicks = 0
	}
}

// snapshotHealth records each entity's health as the baseline for the
// next tick's threshold-crossing detection. It runs before the combat
// pass, so both lock-pass hits and external DealDamage calls between
// ticks are measured against it.
func (b *Battle) snapshotHealth() {
	for _, e := range b.entities {
		e.tickHealth = e.Health
	}
}
