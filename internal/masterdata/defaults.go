package masterdata

import (
	_ "embed"
)

//go:embed defaults/units.yaml
var defaultUnitsYAML []byte

//go:embed defaults/stage.yaml
var defaultStageYAML []byte

// DefaultUnitsYAML returns the embedded default unit master file,
// useful for writing a starter data/units.yaml.
func DefaultUnitsYAML() []byte {
	return append([]byte(nil), defaultUnitsYAML...)
}

// DefaultStageYAML returns the embedded default stage master file.
func DefaultStageYAML() []byte {
	return append([]byte(nil), defaultStageYAML...)
}
