// Package masterdata loads unit and stage master data from YAML files.
// Search order for each file: explicit path -> ./data/<name>.yaml ->
// embedded default. The parsed results feed sim.InitParams unchanged.
package masterdata

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lane-battle/internal/sim"
)

// unitsFile is the YAML structure of a unit master file.
type unitsFile struct {
	Units []unitSpec `yaml:"units"`
}

// unitSpec is one unit stat block on the wire.
type unitSpec struct {
	ID         int                 `yaml:"id"`
	Name       string              `yaml:"name"`
	Cost       float64             `yaml:"cost"`
	MaxHealth  float64             `yaml:"max_health"`
	Attack     float64             `yaml:"attack"`
	Speed      float64             `yaml:"speed"`
	HitFrame   int                 `yaml:"hit_frame"`
	Animations map[string]animSpec `yaml:"animations,omitempty"`
}

// animSpec is per-clip animation timing, carried through untouched.
type animSpec struct {
	Frames        int `yaml:"frames"`
	FrameDuration int `yaml:"frame_duration"`
}

// stageFile is the YAML structure of a stage master file. Wave keys are
// frame numbers written as strings; malformed keys are skipped.
type stageFile struct {
	ID    int                    `yaml:"id"`
	Name  string                 `yaml:"name"`
	Waves map[string][]waveSpawn `yaml:"waves"`
}

// waveSpawn is one scheduled AI spawn inside a wave.
type waveSpawn struct {
	Unit int `yaml:"unit"`
}

// ParseUnits parses a unit master YAML document.
func ParseUnits(data []byte) ([]sim.UnitMaster, error) {
	var uf unitsFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, err
	}

	units := make([]sim.UnitMaster, 0, len(uf.Units))
	for _, u := range uf.Units {
		um := sim.UnitMaster{
			ID:        u.ID,
			Name:      u.Name,
			Cost:      u.Cost,
			MaxHealth: u.MaxHealth,
			Attack:    u.Attack,
			Speed:     u.Speed,
			HitFrame:  u.HitFrame,
		}
		if len(u.Animations) > 0 {
			um.Animations = make(map[string]sim.AnimationTiming, len(u.Animations))
			for name, a := range u.Animations {
				um.Animations[name] = sim.AnimationTiming{
					Frames:        a.Frames,
					FrameDuration: a.FrameDuration,
				}
			}
		}
		units = append(units, um)
	}
	return units, nil
}

// ParseStage parses a stage master YAML document. Wave keys parse as
// integers; a key that is not an integer is dropped, not an error.
func ParseStage(data []byte) (sim.StageMaster, error) {
	var sf stageFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sim.StageMaster{}, err
	}

	stage := sim.StageMaster{
		ID:    sf.ID,
		Name:  sf.Name,
		Waves: make(map[int][]sim.WaveEntry, len(sf.Waves)),
	}
	for key, spawns := range sf.Waves {
		frame, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		wave := make([]sim.WaveEntry, 0, len(spawns))
		for _, s := range spawns {
			wave = append(wave, sim.WaveEntry{UnitID: s.Unit})
		}
		stage.Waves[frame] = wave
	}
	return stage, nil
}
