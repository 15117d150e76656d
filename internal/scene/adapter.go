package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ecopia-map/osgb_tiler/internal/texture"
)

// Opens tile files of a scene-graph hierarchy
type Adapter interface {
	// Opens the tile file at the given path
	Open(path string) (Scene, error)
	// File extension of tile files handled by the adapter, dot included
	Extension() string
}

// One opened tile file
type Scene interface {
	// Ordered, immutable list of the geometries of the tile
	Geometries() []*Geometry
	// Ordered file names referenced by the tile's paged LOD node, relative to the tile directory.
	// The first entry references the tile's own current resolution representation.
	ChildTileReferences() []string
}

type Geometry struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	UVs       [][2]float32
	Indices   []uint32
	Texture   *Texture
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// Bound texture, absent when nil
func (g *Geometry) BoundTexture() *Texture {
	return g.Texture
}

// Texture bound to one or more geometries. Key is the identity used to deduplicate textures.
type Texture struct {
	Key   uuid.UUID
	Image *Image
}

// Raw pixel payload of a texture
type Image struct {
	Width     int
	Height    int
	RowStride int
	Encoding  texture.Encoding
	Data      []byte
}

var textureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("osgb_tiler/texture"))

// Derives a stable texture key from the texture content
func NewTextureKey(content []byte) uuid.UUID {
	return uuid.NewSHA1(textureNamespace, content)
}

// Builds a texture whose key is derived from its image
func NewTexture(image *Image) *Texture {
	if image == nil {
		return &Texture{Key: NewTextureKey(nil)}
	}
	header := []byte(string(image.Encoding))
	header = append(header, byte(image.Width), byte(image.Width>>8), byte(image.Width>>16),
		byte(image.Height), byte(image.Height>>8), byte(image.Height>>16))
	return &Texture{Key: NewTextureKey(append(header, image.Data...)), Image: image}
}
