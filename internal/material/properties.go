package material

import "image/color"

// Properties is the constant record the engine consults for a material.
// Every probability is in [0, 1].
type Properties struct {
	Name string

	// Movement
	Phase              Phase
	Movable            bool
	// GravityFactor scales gravity for this material. It may be negative:
	// the sign gives the direction, so gases with a negative factor rise.
	GravityFactor      float64
	InertialResistance float64
	HorizontalTransfer float64
	DispersionRate     int

	// Water
	CanBoilWater bool

	// Acid
	CorrosionResist   float64
	IsCorrosionSource bool

	// Fire
	Flammability     float64
	PutOut           float64
	PutOutSurrounded float64
	BurnOutChance    float64
	IsBurnSource     bool
	IsEmberSource    bool

	// Rendering
	Color color.RGBA
	Noisy bool
}

// inert is returned for identifiers outside the catalog. It resists corrosion so
// that it cannot be consumed either.
var inert = Properties{Name: "unknown", CorrosionResist: 1}

var table = [count]Properties{
	Empty: {
		Name:            "empty",
		CorrosionResist: 1,
		Color:           hex(0x2C3A47),
	},
	Sand: {
		Name:               "sand",
		Movable:            true,
		GravityFactor:      1,
		InertialResistance: 0.1,
		HorizontalTransfer: 0.3,
		CorrosionResist:    0.3,
		Color:              hex(0xF8EFBA),
		Noisy:              true,
	},
	Dirt: {
		Name:               "dirt",
		Movable:            true,
		GravityFactor:      1,
		InertialResistance: 0.4,
		HorizontalTransfer: 0.2,
		CorrosionResist:    0.5,
		Color:              hex(0x5C1D06),
		Noisy:              true,
	},
	Coal: {
		Name:               "coal",
		Movable:            true,
		GravityFactor:      1,
		InertialResistance: 0.95,
		HorizontalTransfer: 0.1,
		CorrosionResist:    0.8,
		Flammability:       0.02,
		PutOut:             0.02,
		PutOutSurrounded:   0.4,
		BurnOutChance:      0.005,
		Color:              hex(0x1E272E),
		Noisy:              true,
	},
	Water: {
		Name:            "water",
		Phase:           Liquid,
		Movable:         true,
		GravityFactor:   1,
		DispersionRate:  5,
		CorrosionResist: 1,
		Color:           hex(0x1B9CFC),
		Noisy:           true,
	},
	Lava: {
		Name:            "lava",
		Phase:           Liquid,
		Movable:         true,
		GravityFactor:   1,
		DispersionRate:  1,
		CanBoilWater:    true,
		CorrosionResist: 1,
		IsBurnSource:    true,
		IsEmberSource:   true,
		Color:           hex(0xF97F51),
		Noisy:           true,
	},
	Acid: {
		Name:              "acid",
		Phase:             Liquid,
		Movable:           true,
		GravityFactor:     1,
		DispersionRate:    1,
		CorrosionResist:   1,
		IsCorrosionSource: true,
		Color:             hex(0x2ED573),
		Noisy:             true,
	},
	Rock: {
		Name:            "rock",
		CorrosionResist: 0.95,
		Color:           hex(0xC8C8C8),
		Noisy:           true,
	},
	Titanium: {
		Name:            "titanium",
		CorrosionResist: 1,
		Color:           hex(0xDFE4EA),
	},
	Steam: {
		Name:           "steam",
		Phase:          Gas,
		Movable:        true,
		GravityFactor:  -0.3,
		DispersionRate: 9,
		Color:          hex(0x9AECDB),
		Noisy:          true,
	},
	Fuse: {
		Name:            "fuse",
		CorrosionResist: 0.7,
		Flammability:    0.95,
		BurnOutChance:   0.04,
		Color:           hex(0x6D4C41),
		Noisy:           true,
	},
	Ember: {
		Name:             "ember",
		Movable:          true,
		GravityFactor:    1,
		Flammability:     1,
		PutOut:           0.02,
		PutOutSurrounded: 0.1,
		BurnOutChance:    0.08,
		Color:            hex(0xFFB142),
		Noisy:            true,
	},
	Oil: {
		Name:             "oil",
		Phase:            Liquid,
		Movable:          true,
		GravityFactor:    1,
		DispersionRate:   3,
		CorrosionResist:  0.9,
		Flammability:     0.3,
		PutOut:           0.01,
		PutOutSurrounded: 0.05,
		BurnOutChance:    0.02,
		Color:            hex(0x3D2C1E),
		Noisy:            true,
	},
	Gunpowder: {
		Name:               "gunpowder",
		Movable:            true,
		GravityFactor:      1,
		InertialResistance: 0.2,
		HorizontalTransfer: 0.3,
		CorrosionResist:    0.4,
		Flammability:       0.6,
		BurnOutChance:      0.3,
		Color:              hex(0x485460),
		Noisy:              true,
	},
	Methane: {
		Name:           "methane",
		Phase:          Gas,
		Movable:        true,
		GravityFactor:  -0.2,
		DispersionRate: 6,
		Flammability:   0.8,
		BurnOutChance:  0.5,
		Color:          hex(0xC7ECEE),
		Noisy:          true,
	},
}

// Props returns the constant record for m. Identifiers outside the catalog
// yield the inert record, which takes part in no reaction.
func Props(m Material) Properties {
	if !m.Valid() {
		return inert
	}
	return table[m]
}

// Lookup is the pointer form of Props for hot loops; the record must not be modified.
func Lookup(m Material) *Properties {
	if !m.Valid() {
		return &inert
	}
	return &table[m]
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
