package geometry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) BoundingVolume {
	return NewBoundingVolume(r3.Vec{X: minX, Y: minY, Z: minZ}, r3.Vec{X: maxX, Y: maxY, Z: maxZ})
}

func TestMergeCommutativeAndIdempotent(t *testing.T) {
	a := box(0, 0, 0, 1, 2, 3)
	b := box(-1, 1, 2, 0.5, 5, 2.5)

	if Merge(a, b) != Merge(b, a) {
		t.Fatalf("merge not commutative: %v vs %v", Merge(a, b), Merge(b, a))
	}
	if Merge(a, a) != a {
		t.Fatalf("merge(a,a)=%v, want %v", Merge(a, a), a)
	}
}

func TestMergeWithEmptyVolume(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	empty := NewEmptyBoundingVolume()

	if got := Merge(a, empty); got != a {
		t.Fatalf("merge(a, empty)=%v, want %v", got, a)
	}
	if got := Merge(empty, a); got != a {
		t.Fatalf("merge(empty, a)=%v, want %v", got, a)
	}
	if got := Merge(empty, empty); !got.IsEmpty() {
		t.Fatalf("merge(empty, empty)=%v, want empty", got)
	}
	if got := MergeAll(a, empty, box(2, 2, 2, 3, 3, 3)); got != box(0, 0, 0, 3, 3, 3) {
		t.Fatalf("merge all=%v", got)
	}
}

func TestMergeIsTight(t *testing.T) {
	a := box(0, 0, 0, 1, 2, 3)
	b := box(-1, 1, 2, 0.5, 5, 2.5)
	m := Merge(a, b)

	if !m.Contains(a) || !m.Contains(b) {
		t.Fatalf("merged box %v does not contain inputs", m)
	}
	want := box(-1, 0, 0, 1, 5, 3)
	if m != want {
		t.Fatalf("merged=%v, want %v", m, want)
	}
}

func TestExtendFromEmpty(t *testing.T) {
	b := NewEmptyBoundingVolume()
	if !b.IsEmpty() {
		t.Fatal("new box should be empty")
	}
	b.Extend(r3.Vec{X: 1, Y: 2, Z: 3})
	if b.IsEmpty() {
		t.Fatal("box with one point should not be empty")
	}
	if b.Min != b.Max || b.Min != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("box=%v", b)
	}
	b.Extend(r3.Vec{X: -1, Y: 4, Z: 0})
	if b != box(-1, 2, 0, 1, 4, 3) {
		t.Fatalf("box=%v", b)
	}
}

func TestMergeAllFoldsInOrder(t *testing.T) {
	m := MergeAll(box(0, 0, 0, 1, 1, 1), box(2, 2, 2, 3, 3, 3), box(-5, 0, 0, -4, 1, 1))
	if m != box(-5, 0, 0, 3, 3, 3) {
		t.Fatalf("merged=%v", m)
	}
}

func TestBoxLayout(t *testing.T) {
	got := box(0, -2, 10, 4, 2, 20).Box()
	want := [12]float64{2, 0, 15, 2, 0, 0, 0, 2, 0, 0, 0, 5}
	if got != want {
		t.Fatalf("box=%v, want %v", got, want)
	}
}
