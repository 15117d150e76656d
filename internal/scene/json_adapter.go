package scene

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ecopia-map/osgb_tiler/internal/texture"
)

const JSONSceneExtension = ".osgjson"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var gzipMagic = []byte{0x1f, 0x8b}

// On disk layout of a tile exported as JSON from a paged LOD scene graph
type jsonScene struct {
	Children   []string               `json:"children"`
	Geometries []jsonGeometry         `json:"geometries"`
	Textures   map[string]jsonTexture `json:"textures,omitempty"`
}

type jsonGeometry struct {
	Positions []float64 `json:"positions"`
	Normals   []float64 `json:"normals,omitempty"`
	UVs       []float32 `json:"uvs,omitempty"`
	Indices   []uint32  `json:"indices,omitempty"`
	Texture   string    `json:"texture,omitempty"`
}

type jsonTexture struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	RowStride int    `json:"rowStride,omitempty"`
	Encoding  string `json:"encoding"`
	Data      []byte `json:"data,omitempty"`
}

// Reads tiles stored as .osgjson files, plain or gzip compressed
type JSONAdapter struct{}

func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

func (a *JSONAdapter) Extension() string {
	return JSONSceneExtension
}

func (a *JSONAdapter) Open(path string) (Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	buffered := bufio.NewReader(file)
	var reader io.Reader = buffered
	if peek, err := buffered.Peek(2); err == nil && bytes.Equal(peek, gzipMagic) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	var raw jsonScene
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return raw.toScene()
}

func (raw *jsonScene) toScene() (*MemoryScene, error) {
	textures := make(map[string]*Texture, len(raw.Textures))
	for id, t := range raw.Textures {
		var image *Image
		if len(t.Data) > 0 {
			encoding, err := texture.ParseEncoding(t.Encoding)
			if err != nil {
				return nil, fmt.Errorf("texture %s: %w", id, err)
			}
			image = &Image{
				Width:     t.Width,
				Height:    t.Height,
				RowStride: t.RowStride,
				Encoding:  encoding,
				Data:      t.Data,
			}
		}
		textures[id] = NewTexture(image)
	}

	s := &MemoryScene{Children: raw.Children}
	for i, g := range raw.Geometries {
		geometry, err := g.toGeometry()
		if err != nil {
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
		if g.Texture != "" {
			t, ok := textures[g.Texture]
			if !ok {
				return nil, fmt.Errorf("geometry %d: unknown texture %q", i, g.Texture)
			}
			geometry.Texture = t
		}
		s.GeometryList = append(s.GeometryList, geometry)
	}
	return s, nil
}

func (g *jsonGeometry) toGeometry() (*Geometry, error) {
	if len(g.Positions)%3 != 0 {
		return nil, fmt.Errorf("positions length %d is not a multiple of 3", len(g.Positions))
	}
	if len(g.Normals)%3 != 0 {
		return nil, fmt.Errorf("normals length %d is not a multiple of 3", len(g.Normals))
	}
	if len(g.UVs)%2 != 0 {
		return nil, fmt.Errorf("uvs length %d is not a multiple of 2", len(g.UVs))
	}

	geometry := &Geometry{
		Positions: toVectors(g.Positions),
		Normals:   toVectors(g.Normals),
		Indices:   g.Indices,
	}
	if len(g.UVs) > 0 {
		geometry.UVs = make([][2]float32, len(g.UVs)/2)
		for i := range geometry.UVs {
			geometry.UVs[i] = [2]float32{g.UVs[2*i], g.UVs[2*i+1]}
		}
	}
	return geometry, nil
}

func toVectors(values []float64) []r3.Vec {
	if len(values) == 0 {
		return nil
	}
	vectors := make([]r3.Vec, len(values)/3)
	for i := range vectors {
		vectors[i] = r3.Vec{X: values[3*i], Y: values[3*i+1], Z: values[3*i+2]}
	}
	return vectors
}

// Writes a scene in the .osgjson layout, gzip compressed if requested
func WriteJSONScene(w io.Writer, s Scene, compress bool) error {
	raw := jsonScene{Children: s.ChildTileReferences()}
	ids := make(map[*Texture]string)
	for _, g := range s.Geometries() {
		jg := jsonGeometry{
			Positions: fromVectors(g.Positions),
			Normals:   fromVectors(g.Normals),
			Indices:   g.Indices,
		}
		for _, uv := range g.UVs {
			jg.UVs = append(jg.UVs, uv[0], uv[1])
		}
		if t := g.BoundTexture(); t != nil {
			id, ok := ids[t]
			if !ok {
				id = t.Key.String()
				ids[t] = id
				if raw.Textures == nil {
					raw.Textures = make(map[string]jsonTexture)
				}
				jt := jsonTexture{}
				if t.Image != nil {
					jt = jsonTexture{
						Width:     t.Image.Width,
						Height:    t.Image.Height,
						RowStride: t.Image.RowStride,
						Encoding:  string(t.Image.Encoding),
						Data:      t.Image.Data,
					}
				}
				raw.Textures[id] = jt
			}
			jg.Texture = id
		}
		raw.Geometries = append(raw.Geometries, jg)
	}

	if !compress {
		return json.NewEncoder(w).Encode(raw)
	}
	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(raw); err != nil {
		return err
	}
	return gz.Close()
}

func fromVectors(vectors []r3.Vec) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	values := make([]float64, 0, len(vectors)*3)
	for _, v := range vectors {
		values = append(values, v.X, v.Y, v.Z)
	}
	return values
}
