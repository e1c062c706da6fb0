// Package material holds the static catalog of pixel materials and the
// physical and chemical constants the update engine reads for each of them.
package material

import (
	"fmt"
	"strings"
)

// Material identifies what a pixel is made of.
type Material uint8

const (
	Empty Material = iota
	Sand
	Dirt
	Coal
	Water
	Lava
	Acid
	Rock
	Titanium
	Steam
	Fuse
	Ember
	Oil
	Gunpowder
	Methane

	count
)

// Phase is the coarse state of matter that governs displacement precedence.
type Phase uint8

const (
	Solid Phase = iota
	Liquid
	Gas
)

func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// All returns every catalogued material in declaration order.
func All() []Material {
	out := make([]Material, 0, count)
	for m := Empty; m < count; m++ {
		out = append(out, m)
	}
	return out
}

// Valid reports whether m belongs to the catalog.
func (m Material) Valid() bool { return m < count }

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return table[m].Name
}

// Parse resolves a material by its lower-case name ("sand", "water", ...).
func Parse(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m := Empty; m < count; m++ {
		if table[m].Name == key {
			return m, nil
		}
	}
	return Empty, fmt.Errorf("unknown material %q", name)
}

// Displaces reports whether a mover of phase src may swap into a cell whose
// occupant has phase dst. Solids sink through liquids and gases, liquids
// through gases, and gases displace nothing.
func Displaces(src, dst Phase) bool {
	switch src {
	case Solid:
		return dst == Liquid || dst == Gas
	case Liquid:
		return dst == Gas
	default:
		return false
	}
}
