package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ecopia-map/osgb_tiler/internal/b3dm"
	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/gltf"
	"github.com/ecopia-map/osgb_tiler/internal/scene"
	"github.com/ecopia-map/osgb_tiler/internal/texture"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
)

const (
	Generator    = "osgb_tiler"
	GltfVersion  = "2.0"
	MaterialName = "default"
	jpegMimeType = "image/jpeg"
)

// Column major, maps (x, y, z) to (x, z, -y): the Z-up tile content becomes Y-up
var zUpToYUp = []float64{
	1, 0, 0, 0,
	0, 0, -1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// glTF document plus the binary buffer it indexes
type Model struct {
	Document *gltf.Document
	Buffer   []byte
}

func (m *Model) MarshalGLB() ([]byte, error) {
	return m.Document.MarshalGLB(m.Buffer)
}

// Marshals the model and wraps it into a b3dm container
func (m *Model) MarshalB3dm() ([]byte, error) {
	glb, err := m.MarshalGLB()
	if err != nil {
		return nil, err
	}
	return b3dm.Wrap(glb), nil
}

// Converts the geometries of a tile file into a single glTF model
type Assembler struct {
	adapter     scene.Adapter
	jpegQuality int
	encode      textureEncoder
}

type textureEncoder func(r *texture.Raster, quality int) ([]byte, error)

func NewAssembler(adapter scene.Adapter, jpegQuality int) *Assembler {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = texture.DefaultJPEGQuality
	}
	return &Assembler{
		adapter:     adapter,
		jpegQuality: jpegQuality,
		encode:      texture.EncodeJPEG,
	}
}

// Opens the tile file and builds its model. The returned volume encloses every vertex of the model.
func (a *Assembler) Assemble(filePath string) (*Model, geometry.BoundingVolume, error) {
	s, err := a.adapter.Open(filePath)
	if err != nil {
		return nil, geometry.NewEmptyBoundingVolume(), &tiler.SourceReadError{Path: filePath, Err: err}
	}
	return a.AssembleScene(filePath, s)
}

// Builds the model of an already opened tile
func (a *Assembler) AssembleScene(filePath string, s scene.Scene) (*Model, geometry.BoundingVolume, error) {
	b := newBuilder()
	for _, g := range s.Geometries() {
		if g == nil || g.VertexCount() == 0 {
			continue
		}
		b.addGeometry(g)
	}
	if len(b.doc.Meshes[0].Primitives) == 0 {
		return nil, geometry.NewEmptyBoundingVolume(), &tiler.EmptyGeometryError{Path: filePath}
	}

	for _, tex := range b.textures {
		if err := b.addTexture(filePath, tex, a.encode, a.jpegQuality); err != nil {
			return nil, geometry.NewEmptyBoundingVolume(), err
		}
	}
	return b.model(), b.volume, nil
}

type builder struct {
	doc      *gltf.Document
	buffer   []byte
	volume   geometry.BoundingVolume
	textures []*scene.Texture
	seen     map[uuid.UUID]int
}

func newBuilder() *builder {
	mesh := 0
	return &builder{
		doc: &gltf.Document{
			Asset:  gltf.Asset{Version: GltfVersion, Generator: Generator},
			Scene:  0,
			Scenes: []gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []gltf.Node{{Mesh: &mesh, Matrix: zUpToYUp}},
			Meshes: []gltf.Mesh{{Primitives: []gltf.Primitive{}}},
			Samplers: []gltf.Sampler{{
				MagFilter: gltf.FilterLinear,
				MinFilter: gltf.FilterNearestMipmapLinear,
				WrapS:     gltf.WrapRepeat,
				WrapT:     gltf.WrapRepeat,
			}},
			ExtensionsUsed:     []string{gltf.ExtensionMaterialsUnlit},
			ExtensionsRequired: []string{gltf.ExtensionMaterialsUnlit},
		},
		volume: geometry.NewEmptyBoundingVolume(),
		seen:   make(map[uuid.UUID]int),
	}
}

// Returns the material index of the texture, registering it on first sight
func (b *builder) materialIndex(tex *scene.Texture) int {
	if i, ok := b.seen[tex.Key]; ok {
		return i
	}
	i := len(b.textures)
	b.seen[tex.Key] = i
	b.textures = append(b.textures, tex)
	return i
}

func (b *builder) addGeometry(g *scene.Geometry) {
	primitive := gltf.Primitive{
		Attributes: make(map[string]int),
		Mode:       gltf.ModeTriangles,
	}

	indices := g.Indices
	if len(indices) == 0 {
		indices = make([]uint32, g.VertexCount())
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indexData := make([]byte, 0, 4*len(indices))
	for _, index := range indices {
		indexData = binary.LittleEndian.AppendUint32(indexData, index)
	}
	indexAccessor := b.addAccessor(indexData, gltf.TargetElementArrayBuffer, gltf.Accessor{
		ComponentType: gltf.ComponentTypeUnsignedInt,
		Count:         len(indices),
		Type:          gltf.AccessorScalar,
	})
	primitive.Indices = &indexAccessor

	local := geometry.NewEmptyBoundingVolume()
	for _, p := range g.Positions {
		local.Extend(p)
	}
	b.volume = geometry.Merge(b.volume, local)
	primitive.Attributes["POSITION"] = b.addAccessor(vecData(g.Positions), gltf.TargetArrayBuffer, gltf.Accessor{
		ComponentType: gltf.ComponentTypeFloat,
		Count:         len(g.Positions),
		Type:          gltf.AccessorVec3,
		Min:           []float64{local.Min.X, local.Min.Y, local.Min.Z},
		Max:           []float64{local.Max.X, local.Max.Y, local.Max.Z},
	})

	if len(g.Normals) > 0 {
		primitive.Attributes["NORMAL"] = b.addAccessor(vecData(g.Normals), gltf.TargetArrayBuffer, gltf.Accessor{
			ComponentType: gltf.ComponentTypeFloat,
			Count:         len(g.Normals),
			Type:          gltf.AccessorVec3,
		})
	}

	if len(g.UVs) > 0 {
		uvData := make([]byte, 0, 8*len(g.UVs))
		for _, uv := range g.UVs {
			uvData = binary.LittleEndian.AppendUint32(uvData, math.Float32bits(uv[0]))
			uvData = binary.LittleEndian.AppendUint32(uvData, math.Float32bits(uv[1]))
		}
		primitive.Attributes["TEXCOORD_0"] = b.addAccessor(uvData, gltf.TargetArrayBuffer, gltf.Accessor{
			ComponentType: gltf.ComponentTypeFloat,
			Count:         len(g.UVs),
			Type:          gltf.AccessorVec2,
		})
	}

	if tex := g.BoundTexture(); tex != nil {
		material := b.materialIndex(tex)
		primitive.Material = &material
	}

	b.doc.Meshes[0].Primitives = append(b.doc.Meshes[0].Primitives, primitive)
}

func vecData(vecs []r3.Vec) []byte {
	data := make([]byte, 0, 12*len(vecs))
	for _, v := range vecs {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v.X)))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v.Y)))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v.Z)))
	}
	return data
}

// Appends data to the buffer as a new 4 byte aligned buffer view and returns its index
func (b *builder) addBufferView(data []byte, target int) int {
	for len(b.buffer)%4 != 0 {
		b.buffer = append(b.buffer, 0)
	}
	b.doc.BufferViews = append(b.doc.BufferViews, gltf.BufferView{
		Buffer:     0,
		ByteOffset: len(b.buffer),
		ByteLength: len(data),
		Target:     target,
	})
	b.buffer = append(b.buffer, data...)
	return len(b.doc.BufferViews) - 1
}

func (b *builder) addAccessor(data []byte, target int, accessor gltf.Accessor) int {
	accessor.BufferView = b.addBufferView(data, target)
	b.doc.Accessors = append(b.doc.Accessors, accessor)
	return len(b.doc.Accessors) - 1
}

// Decodes the texture image, falling back to the placeholder, and registers the image, texture
// and unlit material that reference it. Fails only when the placeholder cannot be encoded either.
func (b *builder) addTexture(filePath string, tex *scene.Texture, encode textureEncoder, quality int) error {
	raster := decodeTexture(filePath, tex)
	jpegData, err := encode(raster, quality)
	if err != nil {
		glog.Warningf("tile %s: texture %s could not be encoded, using placeholder: %v", filePath, tex.Key, err)
		jpegData, err = encode(texture.Placeholder(), quality)
		if err != nil {
			glog.Errorf("tile %s: placeholder texture could not be encoded: %v", filePath, err)
			return fmt.Errorf("tile %s: encode texture %s: %w", filePath, tex.Key, err)
		}
	}

	view := b.addBufferView(jpegData, 0)
	b.doc.Images = append(b.doc.Images, gltf.Image{BufferView: view, MimeType: jpegMimeType})
	b.doc.Textures = append(b.doc.Textures, gltf.Texture{Source: len(b.doc.Images) - 1, Sampler: 0})
	b.doc.Materials = append(b.doc.Materials, gltf.Material{
		Name: MaterialName,
		PbrMetallicRoughness: gltf.PbrMetallicRoughness{
			BaseColorFactor:  [4]float64{1, 1, 1, 1},
			BaseColorTexture: &gltf.TextureRef{Index: len(b.doc.Textures) - 1},
			MetallicFactor:   0,
			RoughnessFactor:  1,
		},
		Extensions: map[string]interface{}{gltf.ExtensionMaterialsUnlit: map[string]interface{}{}},
	})
	return nil
}

func decodeTexture(filePath string, tex *scene.Texture) *texture.Raster {
	img := tex.Image
	if img == nil {
		glog.Warningf("tile %s: texture %s has no image, using placeholder", filePath, tex.Key)
		return texture.Placeholder()
	}
	raster, err := texture.Decode(img.Data, img.Width, img.Height, img.RowStride, img.Encoding)
	if err != nil {
		glog.Warningf("tile %s: texture %s could not be decoded, using placeholder: %v", filePath, tex.Key, err)
		return texture.Placeholder()
	}
	return raster
}

func (b *builder) model() *Model {
	return &Model{Document: b.doc, Buffer: b.buffer}
}
