package entropy

import (
	"fmt"
	"strconv"
	"strings"
)

// Material is the type tag of a grid cell. Its numeric value is the code
// carried in frames.
type Material uint8

const (
	Empty Material = iota
	Data
	Cache
	Virus
	Process
	Firewall
	AntiData

	// NumMaterials is the size of the enumeration.
	NumMaterials = int(AntiData) + 1
)

var materialNames = [NumMaterials]string{
	Empty:    "empty",
	Data:     "data",
	Cache:    "cache",
	Virus:    "virus",
	Process:  "process",
	Firewall: "firewall",
	AntiData: "antidata",
}

var materialAliases = map[string]Material{
	"erase":     Empty,
	"eraser":    Empty,
	"liquid":    Data,
	"wall":      Cache,
	"acid":      Virus,
	"generator": Process,
	"plasma":    Firewall,
	"fire":      Firewall,
	"glitch":    AntiData,
}

// Materials lists every material in code order.
func Materials() []Material {
	out := make([]Material, NumMaterials)
	for i := range out {
		out[i] = Material(i)
	}
	return out
}

// Valid reports whether m is a member of the enumeration.
func (m Material) Valid() bool { return int(m) < NumMaterials }

func (m Material) String() string {
	if !m.Valid() {
		return "material(" + strconv.Itoa(int(m)) + ")"
	}
	return materialNames[m]
}

// Wall reports whether m resists every paint except an explicit erase.
func (m Material) Wall() bool { return m == Cache }

// Consumable reports whether a virus can eat m.
func (m Material) Consumable() bool { return m == Data || m == Cache }

// Flammable reports whether a firewall can convert m into itself.
func (m Material) Flammable() bool { return m == Data || m == Virus }

// AntiGravity reports whether m is handled by the upward pass.
func (m Material) AntiGravity() bool { return m == Firewall || m == AntiData }

// ParseMaterial accepts a material name, one of its aliases, or its numeric
// code.
func ParseMaterial(s string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range materialNames {
		if name == key {
			return Material(i), nil
		}
	}
	if m, ok := materialAliases[key]; ok {
		return m, nil
	}
	if code, err := strconv.Atoi(key); err == nil && code >= 0 && code < NumMaterials {
		return Material(code), nil
	}
	return Empty, fmt.Errorf("unknown material %q", s)
}
