package vm

import (
	"fmt"
	"strings"
)

// Quirks selects between historically divergent interpretations of the
// instruction set.
type Quirks struct {
	// ShiftUsesVY makes 8xy6 and 8xyE shift Vy into Vx instead of shifting
	// Vx in place, as done by the original COSMAC VIP interpreter.
	ShiftUsesVY bool

	// LoadStoreIncrementsIndex makes Fx55 and Fx65 leave I pointing past
	// the last accessed byte (I = I + x + 1).
	LoadStoreIncrementsIndex bool
}

// String returns the enabled quirks as a comma separated list.
func (q Quirks) String() string {
	var enabled []string
	if q.ShiftUsesVY {
		enabled = append(enabled, "shift-vy")
	}
	if q.LoadStoreIncrementsIndex {
		enabled = append(enabled, "index-increment")
	}
	if len(enabled) == 0 {
		return "none"
	}
	return strings.Join(enabled, ",")
}

// Quirk preset names.
const (
	PresetModern = "modern"
	PresetCOSMAC = "cosmac"
)

// QuirkPresets lists the supported preset names.
var QuirkPresets = []string{PresetModern, PresetCOSMAC}

// QuirksForPreset returns the quirks of a named preset.
func QuirksForPreset(name string) (Quirks, error) {
	switch strings.ToLower(name) {
	case "", PresetModern:
		return Quirks{}, nil
	case PresetCOSMAC:
		return Quirks{
			ShiftUsesVY:              true,
			LoadStoreIncrementsIndex: true,
		}, nil
	default:
		return Quirks{}, fmt.Errorf("unsupported quirk preset '%s'. Valid options: %s",
			name, strings.Join(QuirkPresets, ", "))
	}
}
