package sim

import "sort"

// Default tunables used when an option is not supplied.
const (
	DefaultCostRecoveryPerFrame = 0.05
	DefaultMaxAvailableCost     = 10.0
)

// defaultKnockbackThresholds gives every unit a single mid-health stagger.
var defaultKnockbackThresholds = []float64{0.5}

// Config holds the immutable tunables of one battle. Build it with
// NewConfig and pass it by value; nothing mutates it after construction.
// Out-of-range values (a negative recovery rate, thresholds outside
// [0,1]) are accepted as-is and leave behavior undefined.
type Config struct {
	// CostRecoveryPerFrame is added to the available cost pool every tick.
	CostRecoveryPerFrame float64

	// MaxAvailableCost caps the pool.
	MaxAvailableCost float64

	// ChivalrousEngage, when true, permits only one attacker per target.
	ChivalrousEngage bool

	// KnockbackHealthThresholds are health ratios in [0,1] that trigger a
	// knockback when crossed downward. Always sorted descending.
	KnockbackHealthThresholds []float64
}

// Option overrides a single Config default.
type Option func(*Config)

// WithCostRecovery sets the per-tick cost recovery rate.
func WithCostRecovery(perFrame float64) Option {
	return func(c *Config) { c.CostRecoveryPerFrame = perFrame }
}

// WithMaxCost sets the cost pool cap.
func WithMaxCost(max float64) Option {
	return func(c *Config) { c.MaxAvailableCost = max }
}

// WithChivalrousEngage toggles the one-attacker-per-target policy.
func WithChivalrousEngage(on bool) Option {
	return func(c *Config) { c.ChivalrousEngage = on }
}

// WithKnockbackThresholds sets the health-ratio thresholds. Input order
// does not matter; the constructor normalizes to descending.
func WithKnockbackThresholds(thresholds ...float64) Option {
	return func(c *Config) {
		c.KnockbackHealthThresholds = append([]float64(nil), thresholds...)
	}
}

// NewConfig builds a Config from the defaults with each option applied
// on top. The threshold list is copied and sorted descending regardless
// of the order the caller supplied.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		CostRecoveryPerFrame:      DefaultCostRecoveryPerFrame,
		MaxAvailableCost:          DefaultMaxAvailableCost,
		ChivalrousEngage:          false,
		KnockbackHealthThresholds: append([]float64(nil), defaultKnockbackThresholds...),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(cfg.KnockbackHealthThresholds)))
	return cfg
}
