package io

import (
	"github.com/ecopia-map/osgb_tiler/internal/tileset"
)

// Contains the minimal data needed to produce a single 3d tile, i.e. a binary .b3dm container and the
// published node that its parent folds into its own tile
type WorkUnit struct {
	Index      int               // position of the node in the level tree
	Node       *tileset.TileNode // node to convert
	OutputPath string            // path of the .b3dm file to write
	ContentURI string            // uri of the container, relative to the folder of tileset.json
}
