package algorithm_manager

import (
	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
)

type AlgorithmManager interface {
	GetSceneAdapter() scene.Adapter
	GetGeometricErrorPolicy() geometry.GeometricErrorPolicy
}
