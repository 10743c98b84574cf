package sim

// AnimationTiming is per-animation frame metadata carried through from
// master data. The core stores it for the presentation layer but never
// interprets it.
type AnimationTiming struct {
	Frames        int // frame count of the animation
	FrameDuration int // ticks each frame is held
}

// UnitMaster is the read-only stat block for one unit type.
type UnitMaster struct {
	ID        int
	Name      string
	Cost      float64
	MaxHealth float64
	Attack    float64 // health removed per landed hit
	Speed     float64 // distance gained per permitted walk tick
	HitFrame  int     // tick within the attack cycle where a hit lands

	// Animations is opaque animation-timing metadata, keyed by clip name.
	Animations map[string]AnimationTiming
}

// WaveEntry is a single scheduled AI spawn inside a wave.
type WaveEntry struct {
	UnitID int
}

// StageMaster describes one stage: identity plus the AI spawn schedule.
// Waves maps an elapsed-frame number to the units spawned on that frame.
type StageMaster struct {
	ID    int
	Name  string
	Waves map[int][]WaveEntry
}

// UnitMaster looks up a unit stat block by id. A miss returns ok=false
// and is never an error; callers treat it as "nothing to do".
func (b *Battle) UnitMaster(unitID int) (UnitMaster, bool) {
	um, ok := b.units[unitID]
	return um, ok
}

// wave returns the AI spawns scheduled for a frame. A frame with no
// entry yields an empty slice.
func (b *Battle) wave(frame int) []WaveEntry {
	return b.waves[frame]
}
