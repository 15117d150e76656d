package io

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/model"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/internal/tileset"
)

const sourceDir = "/data/Tile"

func box(offset, size float64) []*scene.Geometry {
	return []*scene.Geometry{{
		Positions: []r3.Vec{
			{X: offset, Y: offset, Z: offset},
			{X: offset + size, Y: offset, Z: offset},
			{X: offset, Y: offset + size, Z: offset + size},
		},
	}}
}

func addTile(a *scene.MemoryAdapter, name string, geometries []*scene.Geometry, children ...string) {
	refs := []string{name + ".osgb"}
	for _, child := range children {
		refs = append(refs, child+".osgb")
	}
	a.Add(filepath.Join(sourceDir, name+".osgb"), &scene.MemoryScene{GeometryList: geometries, Children: refs})
}

// Three levels, the second child of the root has no geometry
func sampleAdapter() *scene.MemoryAdapter {
	a := scene.NewMemoryAdapter(".osgb")
	addTile(a, "Tile", box(0, 10), "Tile_L1_0", "Tile_L1_1", "Tile_L1_2")
	addTile(a, "Tile_L1_0", box(0, 5), "Tile_L2_0", "Tile_L2_1")
	addTile(a, "Tile_L1_1", nil, "Tile_L2_2")
	addTile(a, "Tile_L1_2", box(20, 5))
	addTile(a, "Tile_L2_0", box(-4, 2))
	addTile(a, "Tile_L2_1", box(3, 2))
	addTile(a, "Tile_L2_2", box(50, 1))
	return a
}

func build(t *testing.T, a scene.Adapter, workers int) (*tileset.TilesetNode, string, error) {
	t.Helper()
	tree, ok := tileset.Discover(a, filepath.Join(sourceDir, "Tile.osgb"), 100)
	if !ok {
		t.Fatal("root not discovered")
	}
	out := t.TempDir()
	for _, name := range tree.TileBaseNames() {
		if err := os.MkdirAll(filepath.Join(out, name), 0777); err != nil {
			t.Fatal(err)
		}
	}
	builder := NewBuilder(model.NewAssembler(a, 80), geometry.FirstChildDoubled{}, tiler.RefineModeReplace, workers)
	root, err := builder.Build(context.Background(), tree, out)
	return root, out, err
}

func TestBuildDropsFailedSubtree(t *testing.T) {
	root, out, err := build(t, sampleAdapter(), 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(root.Children) != 2 {
		t.Fatalf("root children=%d, want 2", len(root.Children))
	}
	if root.Children[0].ContentURI != "./Tile_L1_0.b3dm" || root.Children[1].ContentURI != "./Tile_L1_2.b3dm" {
		t.Fatalf("children=%s %s", root.Children[0].ContentURI, root.Children[1].ContentURI)
	}
	if root.BoundingVolume != geometry.NewBoundingVolume(r3.Vec{X: -4, Y: -4, Z: -4}, r3.Vec{X: 25, Y: 25, Z: 25}) {
		t.Fatalf("root volume=%v", root.BoundingVolume)
	}
	for _, child := range root.Children {
		if !root.BoundingVolume.Contains(child.BoundingVolume) {
			t.Fatalf("child %s escapes its parent", child.ContentURI)
		}
	}

	// leaves have error 0, so does every ancestor under the first-child rule
	if root.GeometricError != 0 || root.Children[0].GeometricError != 0 {
		t.Fatalf("errors=%v %v", root.GeometricError, root.Children[0].GeometricError)
	}

	for _, name := range []string{"Tile", "Tile_L1_0", "Tile_L1_2", "Tile_L2_0", "Tile_L2_1"} {
		if _, err := os.Stat(filepath.Join(out, "Tile", name+".b3dm")); err != nil {
			t.Fatalf("missing container %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "Tile", "Tile_L1_1.b3dm")); !os.IsNotExist(err) {
		t.Fatal("container written for a tile without geometry")
	}
}

func TestBuildIndependentOfWorkerCount(t *testing.T) {
	a := sampleAdapter()
	sequential, seqOut, err := build(t, a, 1)
	if err != nil {
		t.Fatal(err)
	}
	want, err := tileset.NewTileset(sequential).Marshal()
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{2, 8} {
		parallel, parOut, err := build(t, a, workers)
		if err != nil {
			t.Fatal(err)
		}
		got, err := tileset.NewTileset(parallel).Marshal()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("workers=%d produced a different tileset", workers)
		}

		for _, name := range []string{"Tile", "Tile_L1_0", "Tile_L2_1"} {
			seqData, _ := os.ReadFile(filepath.Join(seqOut, "Tile", name+".b3dm"))
			parData, _ := os.ReadFile(filepath.Join(parOut, "Tile", name+".b3dm"))
			if !bytes.Equal(seqData, parData) {
				t.Fatalf("workers=%d container %s differs", workers, name)
			}
		}
	}
}

func TestBuildRootFailure(t *testing.T) {
	a := scene.NewMemoryAdapter(".osgb")
	addTile(a, "Tile", nil, "Tile_L1_0")
	addTile(a, "Tile_L1_0", box(0, 1))

	_, _, err := build(t, a, 2)
	if !errors.Is(err, tiler.ErrRootTileFailed) {
		t.Fatalf("err=%v, want ErrRootTileFailed", err)
	}
	var emptyErr *tiler.EmptyGeometryError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err=%v does not wrap the cause", err)
	}
}

func TestBuildWriteFailureAborts(t *testing.T) {
	a := sampleAdapter()
	tree, _ := tileset.Discover(a, filepath.Join(sourceDir, "Tile.osgb"), 100)
	builder := NewBuilder(model.NewAssembler(a, 80), geometry.FirstChildDoubled{}, tiler.RefineModeReplace, 3)

	// output subfolders are not created
	_, err := builder.Build(context.Background(), tree, filepath.Join(t.TempDir(), "missing"))
	var writeErr *tiler.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("err=%v, want WriteError", err)
	}
}

func TestJoin(t *testing.T) {
	tree := &tileset.LevelTree{Nodes: []tileset.TileNode{
		{Name: "A", Children: []int{1, 2}},
		{Name: "A_L1_0"},
		{Name: "A_L1_1"},
	}}
	j := NewJoin(tree)

	second := &tileset.TilesetNode{ContentURI: "./A_L1_1.b3dm"}
	if parent, ready := j.Publish(2, second); parent != 0 || ready {
		t.Fatalf("parent=%d ready=%v", parent, ready)
	}
	if parent, ready := j.Publish(1, nil); parent != 0 || !ready {
		t.Fatalf("parent=%d ready=%v", parent, ready)
	}
	children := j.ChildResults(0)
	if len(children) != 1 || children[0] != second {
		t.Fatalf("children=%v", children)
	}
	if parent, _ := j.Publish(0, &tileset.TilesetNode{}); parent != -1 {
		t.Fatalf("root parent=%d", parent)
	}
}
