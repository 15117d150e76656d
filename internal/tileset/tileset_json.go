package tileset

import (
	"path"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/tools"
)

const (
	TilesetVersion        = "1.0"
	GltfUpAxis            = "Y"
	TilesetGeometricError = 2000
	RootGeometricError    = 1000
	boxDecimalPlaces      = 8
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Built tile, immutable once published to its parent
type TilesetNode struct {
	ContentURI     string
	ContentVolume  geometry.BoundingVolume // the tile's own geometry
	BoundingVolume geometry.BoundingVolume // own geometry merged with every surviving child
	GeometricError float64
	Refine         tiler.RefineMode
	Children       []*TilesetNode
}

// Folds a tile's own content box with its already built children, in child order
func ComposeNode(contentURI string, local geometry.BoundingVolume, children []*TilesetNode, refine tiler.RefineMode, policy geometry.GeometricErrorPolicy) *TilesetNode {
	volume := local
	childResults := make([]geometry.ChildResult, len(children))
	for i, child := range children {
		volume = geometry.Merge(volume, child.BoundingVolume)
		childResults[i] = geometry.ChildResult{
			GeometricError: child.GeometricError,
			BoundingVolume: child.BoundingVolume,
		}
	}

	return &TilesetNode{
		ContentURI:     contentURI,
		ContentVolume:  local,
		BoundingVolume: volume,
		GeometricError: policy.Compute(childResults),
		Refine:         refine,
		Children:       children,
	}
}

type Asset struct {
	Version    string `json:"version"`
	GltfUpAxis string `json:"gltfUpAxis"`
}

type BoundingVolume struct {
	Box []float64 `json:"box"`
}

type Content struct {
	Uri            string         `json:"uri"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
}

type Tile struct {
	Content        Content        `json:"content"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Children       []Tile         `json:"children,omitempty"`
}

type Root struct {
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Children       []Tile         `json:"children"`
}

type Tileset struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Root    `json:"root"`
}

// Wraps the built root tile into the tileset descriptor
func NewTileset(root *TilesetNode) *Tileset {
	return &Tileset{
		Asset:          Asset{Version: TilesetVersion, GltfUpAxis: GltfUpAxis},
		GeometricError: TilesetGeometricError,
		Root: Root{
			BoundingVolume: newBoundingVolume(root.BoundingVolume),
			GeometricError: RootGeometricError,
			Refine:         tiler.RefineModeReplace.String(),
			Children:       []Tile{newTile(root)},
		},
	}
}

func newTile(node *TilesetNode) Tile {
	tile := Tile{
		Content: Content{
			Uri:            node.ContentURI,
			BoundingVolume: newBoundingVolume(node.ContentVolume),
		},
		BoundingVolume: newBoundingVolume(node.BoundingVolume),
		GeometricError: node.GeometricError,
		Refine:         node.Refine.String(),
	}
	for _, child := range node.Children {
		tile.Children = append(tile.Children, newTile(child))
	}
	return tile
}

func newBoundingVolume(volume geometry.BoundingVolume) BoundingVolume {
	box := volume.Box()
	rounded := make([]float64, len(box))
	for i, v := range box {
		rounded[i] = decimal.NewFromFloat(v).Round(boxDecimalPlaces).InexactFloat64()
	}
	return BoundingVolume{Box: rounded}
}

// Generates the tileset.json content
func (t *Tileset) Marshal() ([]byte, error) {
	return json.MarshalIndent(t, "", "\t")
}

// Writes the tileset.json file in the given folder
func WriteTilesetJson(folder string, t *Tileset) error {
	jsonData, err := t.Marshal()
	if err != nil {
		return err
	}

	file := path.Join(folder, tools.TilesetFileName)
	if err := tools.WriteFileAtomic(file, jsonData, 0666); err != nil {
		return &tiler.WriteError{Path: file, Err: err}
	}
	return nil
}
