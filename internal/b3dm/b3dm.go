package b3dm

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/ecopia-map/osgb_tiler/tools"
)

const (
	Magic          = "b3dm"
	Version        = 1
	HeaderLength   = 28
	FileExtension  = ".b3dm"
	featureTable   = `{"BATCH_LENGTH":1}`
	payloadAlignTo = 8
)

// Generates the feature table json, space padded so that the payload following it starts on an 8 byte boundary
func generateFeatureTableJsonContent() string {
	sb := featureTable
	if paddingSize := (HeaderLength + len(sb)) % payloadAlignTo; paddingSize != 0 {
		sb += strings.Repeat(" ", payloadAlignTo-paddingSize)
	}
	return sb
}

// Wraps a GLB payload into a batched 3D model container holding a single batch
func Wrap(glb []byte) []byte {
	featureTableBytes := []byte(generateFeatureTableJsonContent())
	byteLength := HeaderLength + len(featureTableBytes) + len(glb)

	outputByte := make([]byte, 0, byteLength)
	outputByte = append(outputByte, []byte(Magic)...)                                       // magic
	outputByte = append(outputByte, tools.ConvertIntToByteArray(Version)...)                // version number
	outputByte = append(outputByte, tools.ConvertIntToByteArray(byteLength)...)             // total length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(len(featureTableBytes))...) // feature table length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)                      // feature table binary length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)                      // batch table length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)                      // batch table binary length
	outputByte = append(outputByte, featureTableBytes...)                                   // feature table
	outputByte = append(outputByte, glb...)                                                 // glb payload

	return outputByte
}

type Header struct {
	Version                      uint32
	ByteLength                   uint32
	FeatureTableJSONByteLength   uint32
	FeatureTableBinaryByteLength uint32
	BatchTableJSONByteLength     uint32
	BatchTableBinaryByteLength   uint32
}

// Reads the container header and returns it along with the embedded GLB payload
func Parse(data []byte) (*Header, []byte, error) {
	if len(data) < HeaderLength {
		return nil, nil, errors.New("b3dm too short")
	}
	if string(data[0:4]) != Magic {
		return nil, nil, errors.New("invalid b3dm magic")
	}

	header := &Header{
		Version:                      binary.LittleEndian.Uint32(data[4:8]),
		ByteLength:                   binary.LittleEndian.Uint32(data[8:12]),
		FeatureTableJSONByteLength:   binary.LittleEndian.Uint32(data[12:16]),
		FeatureTableBinaryByteLength: binary.LittleEndian.Uint32(data[16:20]),
		BatchTableJSONByteLength:     binary.LittleEndian.Uint32(data[20:24]),
		BatchTableBinaryByteLength:   binary.LittleEndian.Uint32(data[24:28]),
	}

	payloadOffset := HeaderLength + int(header.FeatureTableJSONByteLength+header.FeatureTableBinaryByteLength+
		header.BatchTableJSONByteLength+header.BatchTableBinaryByteLength)
	if payloadOffset > len(data) {
		return nil, nil, errors.New("b3dm tables out of range")
	}
	return header, data[payloadOffset:], nil
}
