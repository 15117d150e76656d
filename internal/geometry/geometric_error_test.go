package geometry

import "testing"

func TestGeometricErrorLeaf(t *testing.T) {
	if e := GeometricError(nil); e != 0 {
		t.Fatalf("leaf error=%v", e)
	}
	if e := GeometricError([]float64{}); e != 0 {
		t.Fatalf("leaf error=%v", e)
	}
}

func TestGeometricErrorUsesFirstChildOnly(t *testing.T) {
	cases := [][]float64{
		{3},
		{3, 100},
		{3, 0, 7, 1e9},
	}
	for _, errs := range cases {
		if e := GeometricError(errs); e != 6 {
			t.Fatalf("GeometricError(%v)=%v, want 6", errs, e)
		}
	}
}

func TestFirstChildDoubledPolicy(t *testing.T) {
	p := FirstChildDoubled{}
	children := []ChildResult{
		{GeometricError: 1.5, BoundingVolume: box(0, 0, 0, 100, 100, 100)},
		{GeometricError: 40},
	}
	if e := p.Compute(children); e != 3 {
		t.Fatalf("error=%v", e)
	}
	if e := p.Compute(nil); e != 0 {
		t.Fatalf("leaf error=%v", e)
	}
}

func TestFirstChildExtentDoubledPolicy(t *testing.T) {
	p := FirstChildExtentDoubled{}
	children := []ChildResult{
		{BoundingVolume: box(0, 0, 0, 40, 10, 20)},
		{BoundingVolume: box(0, 0, 0, 1000, 1000, 1000)},
	}
	if e := p.Compute(children); e != 4 {
		t.Fatalf("error=%v, want 4", e)
	}
}

func TestParseGeometricErrorPolicy(t *testing.T) {
	for name, want := range map[string]string{
		"":                    PolicyFirstChild,
		"first-child":         PolicyFirstChild,
		" FIRST-CHILD-EXTENT": PolicyFirstChildExtent,
	} {
		p, err := ParseGeometricErrorPolicy(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if p.Name() != want {
			t.Fatalf("parse %q=%s, want %s", name, p.Name(), want)
		}
	}
	if _, err := ParseGeometricErrorPolicy("max-child"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
