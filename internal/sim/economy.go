package sim

// recoverAndReport adds one frame of cost recovery to the pool, then
// clamps and reports it. Returns the new authoritative value.
func (b *Battle) recoverAndReport(current float64) float64 {
	return b.reportCost(current + b.cfg.CostRecoveryPerFrame)
}

// reportCost clamps cost to the cap, stores it, and notifies the
// delegate with the roster units affordable at the new value. The
// notification fires every tick even when the value is unchanged; the
// delegate decides whether to react.
func (b *Battle) reportCost(cost float64) float64 {
	if cost > b.cfg.MaxAvailableCost {
		cost = b.cfg.MaxAvailableCost
	}
	b.available = cost

	affordable := make([]int, 0, len(b.roster))
	for _, unitID := range b.roster {
		um, ok := b.units[unitID]
		if ok && cost >= um.Cost {
			affordable = append(affordable, unitID)
		}
	}

	b.delegate.AvailableCostUpdated(cost, b.cfg.MaxAvailableCost, affordable)
	return cost
}
