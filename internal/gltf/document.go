package gltf

// Subset of the glTF 2.0 schema written by the tiler

const (
	ComponentTypeUnsignedInt = 5125
	ComponentTypeFloat       = 5126

	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963

	ModeTriangles = 4

	FilterLinear              = 9729
	FilterNearestMipmapLinear = 9986
	WrapRepeat                = 10497

	AccessorScalar = "SCALAR"
	AccessorVec2   = "VEC2"
	AccessorVec3   = "VEC3"

	ExtensionMaterialsUnlit = "KHR_materials_unlit"
)

type Document struct {
	Asset              Asset        `json:"asset"`
	Scene              int          `json:"scene"`
	Scenes             []Scene      `json:"scenes"`
	Nodes              []Node       `json:"nodes"`
	Meshes             []Mesh       `json:"meshes"`
	Accessors          []Accessor   `json:"accessors,omitempty"`
	BufferViews        []BufferView `json:"bufferViews,omitempty"`
	Buffers            []Buffer     `json:"buffers,omitempty"`
	Materials          []Material   `json:"materials,omitempty"`
	Textures           []Texture    `json:"textures,omitempty"`
	Images             []Image      `json:"images,omitempty"`
	Samplers           []Sampler    `json:"samplers,omitempty"`
	ExtensionsUsed     []string     `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string     `json:"extensionsRequired,omitempty"`
}

type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type Scene struct {
	Nodes []int `json:"nodes"`
}

type Node struct {
	Mesh   *int      `json:"mesh,omitempty"`
	Matrix []float64 `json:"matrix,omitempty"`
}

type Mesh struct {
	Primitives []Primitive `json:"primitives"`
}

type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       int            `json:"mode"`
}

type Accessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type Buffer struct {
	ByteLength int `json:"byteLength"`
}

type Material struct {
	Name                 string                 `json:"name,omitempty"`
	PbrMetallicRoughness PbrMetallicRoughness   `json:"pbrMetallicRoughness"`
	Extensions           map[string]interface{} `json:"extensions,omitempty"`
}

type PbrMetallicRoughness struct {
	BaseColorFactor  [4]float64  `json:"baseColorFactor"`
	BaseColorTexture *TextureRef `json:"baseColorTexture,omitempty"`
	MetallicFactor   float64     `json:"metallicFactor"`
	RoughnessFactor  float64     `json:"roughnessFactor"`
}

type TextureRef struct {
	Index int `json:"index"`
}

type Texture struct {
	Source  int `json:"source"`
	Sampler int `json:"sampler"`
}

type Image struct {
	BufferView int    `json:"bufferView"`
	MimeType   string `json:"mimeType"`
}

type Sampler struct {
	MagFilter int `json:"magFilter"`
	MinFilter int `json:"minFilter"`
	WrapS     int `json:"wrapS"`
	WrapT     int `json:"wrapT"`
}
