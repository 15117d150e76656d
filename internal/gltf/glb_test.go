package gltf

import (
	"encoding/binary"
	"testing"
)

func TestMarshalGLBAlignment(t *testing.T) {
	mesh := 0
	doc := &Document{
		Asset:  Asset{Version: "2.0"},
		Scenes: []Scene{{Nodes: []int{0}}},
		Nodes:  []Node{{Mesh: &mesh}},
		Meshes: []Mesh{{Primitives: []Primitive{{Attributes: map[string]int{"POSITION": 0}, Mode: ModeTriangles}}}},
	}
	bin := []byte{1, 2, 3, 4, 5}

	glb, err := doc.MarshalGLB(bin)
	if err != nil {
		t.Fatal(err)
	}
	if len(glb)%4 != 0 {
		t.Fatalf("glb length %d not aligned", len(glb))
	}
	if got := binary.LittleEndian.Uint32(glb[8:12]); int(got) != len(glb) {
		t.Fatalf("header length=%d, actual %d", got, len(glb))
	}
	if len(bin) != 5 {
		t.Fatal("input buffer was modified")
	}

	jsonChunk, binChunk, err := ParseGLB(glb)
	if err != nil {
		t.Fatal(err)
	}
	if len(jsonChunk)%4 != 0 || len(binChunk) != 8 {
		t.Fatalf("json=%d bin=%d", len(jsonChunk), len(binChunk))
	}
	if binChunk[4] != 5 || binChunk[5] != 0 {
		t.Fatalf("bin chunk=%v", binChunk)
	}

	parsed, err := UnmarshalDocument(jsonChunk)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Buffers) != 1 || parsed.Buffers[0].ByteLength != 5 {
		t.Fatalf("buffers=%+v", parsed.Buffers)
	}
	if parsed.Nodes[0].Mesh == nil || *parsed.Nodes[0].Mesh != 0 {
		t.Fatal("node lost its mesh reference")
	}
}

func TestParseGLBRejectsGarbage(t *testing.T) {
	if _, _, err := ParseGLB([]byte("not a glb file at all")); err == nil {
		t.Fatal("expected error")
	}
}
