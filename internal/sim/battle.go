// Package sim implements the deterministic battle core of the lane game:
// the cost economy, the spawn pipeline, scheduled AI waves, and the
// per-tick movement and state machine. The core is single-threaded and
// advances only when Update is called; everything it cannot decide on
// its own (contact geometry, hit frames) goes through the Delegate.
package sim

// InitParams carries the master data and roster a battle starts from.
type InitParams struct {
	Stage  StageMaster
	Units  []UnitMaster
	Roster []int   // player's purchasable unit ids
	Config *Config // nil uses NewConfig() defaults
}

// Battle is one simulation instance. Create it with New, feed it master
// data with Init, then advance it one tick at a time with Update.
// A Battle is not safe for concurrent use; it is built for a
// single-threaded tick loop.
type Battle struct {
	cfg      Config
	delegate Delegate

	units  map[int]UnitMaster
	waves  map[int][]WaveEntry
	roster []int

	entities  []*Entity
	pending   []spawnRequest
	available float64
	frame     int
	nextID    int

	initialized bool
}

// New creates a battle bound to the given delegate. A nil delegate
// selects NopDelegate, the headless mode.
func New(d Delegate) *Battle {
	if d == nil {
		d = NopDelegate{}
	}
	return &Battle{delegate: d}
}

// Init populates the master data caches and resets all mutable state.
// Calling Init again fully replaces the previous battle: the entity
// list, cost pool, frame counter and id sequence all start over.
func (b *Battle) Init(p InitParams) {
	cfg := NewConfig()
	if p.Config != nil {
		cfg = *p.Config
	}
	b.cfg = cfg

	b.units = make(map[int]UnitMaster, len(p.Units))
	for _, um := range p.Units {
		b.units[um.ID] = um
	}

	b.waves = make(map[int][]WaveEntry, len(p.Stage.Waves))
	for frame, wave := range p.Stage.Waves {
		b.waves[frame] = append([]WaveEntry(nil), wave...)
	}

	b.roster = append([]int(nil), p.Roster...)
	b.entities = nil
	b.pending = nil
	b.available = 0
	b.frame = 0
	b.nextID = 0
	b.initialized = true
}

// mustInit guards the mutating entry points against use before Init.
// This is a programmer error, not a runtime condition, so it panics.
func (b *Battle) mustInit() {
	if !b.initialized {
		panic("sim: battle used before Init")
	}
}

// Update advances the simulation by exactly one tick:
// recover and report cost, queue the current frame's AI wave, drain the
// spawn queue, walk idle entities, resolve state transitions, then
// advance the frame counter. The phase order is fixed; every ordering
// guarantee the core makes derives from it.
func (b *Battle) Update() {
	b.mustInit()

	b.available = b.recoverAndReport(b.available)
	b.queueWave()
	b.drainSpawns()
	b.advanceIdle()
	b.resolveStates()

	b.frame++
}

// advanceIdle moves every idle non-base entity that the delegate permits
// to walk. Bases hold ground. Health is not inspected here; death is the
// resolution pass's business.
func (b *Battle) advanceIdle() {
	for _, e := range b.entities {
		if e.State != StateIdle || e.IsBase {
			continue
		}
		um, ok := b.units[e.UnitID]
		if !ok {
			continue
		}
		if !b.delegate.ShouldUnitWalk(e) {
			continue
		}
		e.Distance += um.Speed
		b.delegate.UnitEntityWalked(e)
	}
}

// Frame returns the elapsed-frame counter. It starts at 0 and never
// resets within a battle's life.
func (b *Battle) Frame() int {
	return b.frame
}

// AvailableCost returns the current clamped cost pool.
func (b *Battle) AvailableCost() float64 {
	return b.available
}

// Roster returns the player's purchasable unit ids.
func (b *Battle) Roster() []int {
	return append([]int(nil), b.roster...)
}

// Entities returns the active entity list in spawn order. Dead entities
// stay on the list; only the presentation layer decides when their
// remains leave the screen.
func (b *Battle) Entities() []*Entity {
	return append([]*Entity(nil), b.entities...)
}

// Entity looks up an active entity by id, or nil.
func (b *Battle) Entity(id int) *Entity {
	for _, e := range b.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// DealDamage applies external damage (or healing, with a negative
// amount) to an entity, clamped to [0, MaxHealth]. It never transitions
// state itself; the next resolution pass picks up any death or knockback
// that results. Damage to a dead entity is ignored.
func (b *Battle) DealDamage(entityID int, amount float64) {
	b.mustInit()
	e := b.Entity(entityID)
	if e == nil || e.State == StateDead {
		return
	}
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}
