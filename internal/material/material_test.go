package material

import "testing"

func TestPropsTotalOverCatalog(t *testing.T) {
	seen := map[string]Material{}
	for _, m := range All() {
		p := Props(m)
		if p.Name == "" || p.Name == inert.Name {
			t.Fatalf("material %d has no record", m)
		}
		if prev, dup := seen[p.Name]; dup {
			t.Fatalf("materials %d and %d share name %q", prev, m, p.Name)
		}
		seen[p.Name] = m
		for _, prob := range []float64{p.InertialResistance, p.HorizontalTransfer, p.CorrosionResist, p.Flammability, p.PutOut, p.PutOutSurrounded, p.BurnOutChance} {
			if prob < 0 || prob > 1 {
				t.Fatalf("%s has probability %f outside [0,1]", p.Name, prob)
			}
		}
		if p.DispersionRate < 0 {
			t.Fatalf("%s has negative dispersion", p.Name)
		}
		if p.DispersionRate > 0 && p.Phase == Solid {
			t.Fatalf("%s is solid but disperses", p.Name)
		}
	}
}

func TestUnknownMaterialIsInert(t *testing.T) {
	p := Props(Material(200))
	if p.Movable || p.GravityFactor != 0 || p.DispersionRate != 0 {
		t.Fatal("unknown material must not move")
	}
	if p.CanBoilWater || p.IsCorrosionSource || p.IsBurnSource || p.IsEmberSource || p.Flammability != 0 {
		t.Fatal("unknown material must not react")
	}
	if Lookup(Material(200)) != &inert {
		t.Fatal("Lookup must fall back to the inert record")
	}
	if got := Material(200).String(); got != "material(200)" {
		t.Fatalf("unexpected String for unknown material: %q", got)
	}
}

func TestDisplacesOrdering(t *testing.T) {
	cases := []struct {
		src, dst Phase
		want     bool
	}{
		{Solid, Solid, false},
		{Solid, Liquid, true},
		{Solid, Gas, true},
		{Liquid, Solid, false},
		{Liquid, Liquid, false},
		{Liquid, Gas, true},
		{Gas, Solid, false},
		{Gas, Liquid, false},
		{Gas, Gas, false},
	}
	for _, c := range cases {
		if got := Displaces(c.src, c.dst); got != c.want {
			t.Fatalf("Displaces(%s, %s) = %v, want %v", c.src, c.dst, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	m, err := Parse(" Water ")
	if err != nil || m != Water {
		t.Fatalf("Parse(Water) = %v, %v", m, err)
	}
	if _, err := Parse("plasma"); err == nil {
		t.Fatal("expected error for unknown material name")
	}
}

func TestGasesRiseOthersFall(t *testing.T) {
	for _, m := range All() {
		p := Props(m)
		if p.GravityFactor == 0 {
			continue
		}
		if p.Phase == Gas && p.GravityFactor > 0 {
			t.Fatalf("%s is a gas but falls", p.Name)
		}
		if p.Phase != Gas && p.GravityFactor < 0 {
			t.Fatalf("%s rises but is not a gas", p.Name)
		}
	}
}

func TestGasesRiseWithNegativeGravityFactor(t *testing.T) {
	for _, m := range All() {
		p := Props(m)
		if p.Phase == Gas && p.Movable && p.GravityFactor >= 0 {
			t.Fatalf("%s is a movable gas but does not rise: gravity factor %v", p.Name, p.GravityFactor)
		}
		if p.Phase != Gas && p.GravityFactor < 0 {
			t.Fatalf("%s is not a gas but has gravity factor %v", p.Name, p.GravityFactor)
		}
	}
}
