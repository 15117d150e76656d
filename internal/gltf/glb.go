package gltf

import (
	"encoding/binary"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

const (
	glbMagic         = 0x46546C67 // "glTF"
	glbVersion       = 2
	glbHeaderLength  = 12
	glbChunkHeadSize = 8
	glbJSONChunkType = 0x4E4F534A // "JSON"
	glbBINChunkType  = 0x004E4942 // "BIN\0"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Serializes the document and its binary buffer as a GLB container: header, JSON chunk padded with
// spaces and BIN chunk padded with zeros, both aligned to 4 bytes
func (d *Document) MarshalGLB(bin []byte) ([]byte, error) {
	if len(d.Buffers) > 1 {
		return nil, errors.New("glb can embed a single buffer only")
	}
	d.Buffers = nil
	if len(bin) > 0 {
		d.Buffers = []Buffer{{ByteLength: len(bin)}}
	}

	jsonChunk, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	jsonChunk = pad(jsonChunk, ' ')
	binChunk := pad(bin, 0)

	length := glbHeaderLength + glbChunkHeadSize + len(jsonChunk)
	if len(binChunk) > 0 {
		length += glbChunkHeadSize + len(binChunk)
	}

	out := make([]byte, 0, length)
	out = binary.LittleEndian.AppendUint32(out, glbMagic)
	out = binary.LittleEndian.AppendUint32(out, glbVersion)
	out = binary.LittleEndian.AppendUint32(out, uint32(length))

	out = binary.LittleEndian.AppendUint32(out, uint32(len(jsonChunk)))
	out = binary.LittleEndian.AppendUint32(out, glbJSONChunkType)
	out = append(out, jsonChunk...)

	if len(binChunk) > 0 {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(binChunk)))
		out = binary.LittleEndian.AppendUint32(out, glbBINChunkType)
		out = append(out, binChunk...)
	}
	return out, nil
}

// Splits a GLB container back into its JSON and BIN chunks
func ParseGLB(data []byte) (jsonChunk []byte, binChunk []byte, err error) {
	if len(data) < glbHeaderLength+glbChunkHeadSize {
		return nil, nil, errors.New("glb too short")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != glbMagic {
		return nil, nil, errors.New("invalid glb magic")
	}
	length := int(binary.LittleEndian.Uint32(data[8:12]))
	if length != len(data) {
		return nil, nil, errors.New("glb length mismatch")
	}

	offset := glbHeaderLength
	for offset+glbChunkHeadSize <= len(data) {
		chunkLength := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		start := offset + glbChunkHeadSize
		if start+chunkLength > len(data) {
			return nil, nil, errors.New("glb chunk out of range")
		}
		switch chunkType {
		case glbJSONChunkType:
			jsonChunk = data[start : start+chunkLength]
		case glbBINChunkType:
			binChunk = data[start : start+chunkLength]
		}
		offset = start + chunkLength
	}
	if jsonChunk == nil {
		return nil, nil, errors.New("glb has no JSON chunk")
	}
	return jsonChunk, binChunk, nil
}

// Unmarshals a GLB JSON chunk into a document
func UnmarshalDocument(jsonChunk []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(jsonChunk, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Appends filler bytes until the length is a multiple of 4
func pad(b []byte, filler byte) []byte {
	padded := make([]byte, len(b), (len(b)+3)/4*4)
	copy(padded, b)
	for len(padded)%4 != 0 {
		padded = append(padded, filler)
	}
	return padded
}
