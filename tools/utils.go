package tools

import (
	"encoding/binary"

	jsoniter "github.com/json-iterator/go"
)

const (
	TilesetFileName = "tileset.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

// Encodes the value as a little endian uint32
func ConvertIntToByteArray(value int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(value))
	return b
}
