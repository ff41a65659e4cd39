package preset

import "strings"

// Preset is a named bundle of encoder parameter defaults. The table is fixed
// at process start; lookups never mutate it.
type Preset struct {
	Name        string
	CRF         int
	Speed       string
	Scale       string
	Description string
}

const (
	NameHigh   = "high"
	NameMedium = "medium"
	NameLow    = "low"
	NameWeb    = "web"
)

// DefaultName is applied when a request names no preset.
const DefaultName = NameMedium

var table = []Preset{
	{Name: NameHigh, CRF: 18, Speed: "slow", Description: "High quality, larger file"},
	{Name: NameMedium, CRF: 23, Speed: "medium", Description: "Balanced quality and size"},
	{Name: NameLow, CRF: 28, Speed: "fast", Description: "Lower quality, smaller file"},
	{Name: NameWeb, CRF: 25, Speed: "medium", Scale: "1280:-2", Description: "Optimized for web (720p)"},
}

// List returns the preset table in its display order.
func List() []Preset {
	out := make([]Preset, len(table))
	copy(out, table)
	return out
}

// Lookup resolves a preset by name, case-insensitively.
func Lookup(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range table {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns the accepted preset names in display order.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, p := range table {
		names = append(names, p.Name)
	}
	return names
}
