package masterdata

import (
	"fmt"
	"os"

	"github.com/vovakirdan/lane-battle/internal/sim"
)

// LoadUnits loads the unit master table.
// Search order: customPath -> ./data/units.yaml -> embedded default.
func LoadUnits(customPath string) ([]sim.UnitMaster, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("masterdata: failed to read units %s: %w", customPath, err)
		}
		units, err := ParseUnits(data)
		if err != nil {
			return nil, fmt.Errorf("masterdata: failed to parse units %s: %w", customPath, err)
		}
		return units, nil
	}

	if data, err := os.ReadFile("data/units.yaml"); err == nil {
		if units, err := ParseUnits(data); err == nil {
			return units, nil
		}
	}

	units, err := ParseUnits(defaultUnitsYAML)
	if err != nil {
		return nil, fmt.Errorf("masterdata: embedded unit defaults are broken: %w", err)
	}
	return units, nil
}

// LoadStage loads the stage master.
// Search order: customPath -> ./data/stage.yaml -> embedded default.
func LoadStage(customPath string) (sim.StageMaster, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return sim.StageMaster{}, fmt.Errorf("masterdata: failed to read stage %s: %w", customPath, err)
		}
		stage, err := ParseStage(data)
		if err != nil {
			return sim.StageMaster{}, fmt.Errorf("masterdata: failed to parse stage %s: %w", customPath, err)
		}
		return stage, nil
	}

	if data, err := os.ReadFile("data/stage.yaml"); err == nil {
		if stage, err := ParseStage(data); err == nil {
			return stage, nil
		}
	}

	stage, err := ParseStage(defaultStageYAML)
	if err != nil {
		return sim.StageMaster{}, fmt.Errorf("masterdata: embedded stage default is broken: %w", err)
	}
	return stage, nil
}

// DefaultRoster returns the player roster used when no explicit roster
// is configured: every unit in the master table that carries a cost,
// in master order. Free units are emplacements, not purchasables.
func DefaultRoster(units []sim.UnitMaster) []int {
	roster := make([]int, 0, len(units))
	for _, u := range units {
		if u.Cost > 0 {
			roster = append(roster, u.ID)
		}
	}
	return roster
}
