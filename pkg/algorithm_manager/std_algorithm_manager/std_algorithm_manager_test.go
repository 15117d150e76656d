package std_algorithm_manager

import (
	"testing"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
)

func TestNewAlgorithmManager(t *testing.T) {
	m := NewAlgorithmManager(&tiler.TilerOptions{
		SceneFormat:          tiler.SceneFormatJSON,
		GeometricErrorPolicy: geometry.PolicyFirstChildExtent,
	})
	if m.GetSceneAdapter().Extension() != scene.JSONSceneExtension {
		t.Fatalf("extension=%s", m.GetSceneAdapter().Extension())
	}
	if m.GetGeometricErrorPolicy().Name() != geometry.PolicyFirstChildExtent {
		t.Fatalf("policy=%s", m.GetGeometricErrorPolicy().Name())
	}
}

func TestNewAlgorithmManagerDefaults(t *testing.T) {
	m := NewAlgorithmManager(&tiler.TilerOptions{GeometricErrorPolicy: "bogus"})
	if m.GetGeometricErrorPolicy().Name() != geometry.PolicyFirstChild {
		t.Fatalf("policy=%s", m.GetGeometricErrorPolicy().Name())
	}
	if m.GetSceneAdapter() == nil {
		t.Fatal("no adapter")
	}
}
