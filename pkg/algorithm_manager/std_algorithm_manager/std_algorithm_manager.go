package std_algorithm_manager

import (
	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	adapter scene.Adapter
	policy  geometry.GeometricErrorPolicy
}

func NewAlgorithmManager(opts *tiler.TilerOptions) algorithm_manager.AlgorithmManager {
	policy, err := geometry.ParseGeometricErrorPolicy(opts.GeometricErrorPolicy)
	if err != nil {
		glog.Warningf("%v, falling back to %s", err, geometry.PolicyFirstChild)
		policy = geometry.FirstChildDoubled{}
	}

	return &StandardAlgorithmManager{
		adapter: evaluateSceneAdapter(opts),
		policy:  policy,
	}
}

func (m *StandardAlgorithmManager) GetSceneAdapter() scene.Adapter {
	return m.adapter
}

func (m *StandardAlgorithmManager) GetGeometricErrorPolicy() geometry.GeometricErrorPolicy {
	return m.policy
}

func evaluateSceneAdapter(opts *tiler.TilerOptions) scene.Adapter {
	switch opts.SceneFormat {
	case tiler.SceneFormatJSON, "":
		return scene.NewJSONAdapter()
	}
	glog.Warningf("unknown scene format %q, reading %s files", opts.SceneFormat, scene.JSONSceneExtension)
	return scene.NewJSONAdapter()
}
