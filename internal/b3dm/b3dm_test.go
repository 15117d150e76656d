package b3dm

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrapHeader(t *testing.T) {
	glb := bytes.Repeat([]byte{0xAB}, 36)
	data := Wrap(glb)

	header, payload, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if header.Version != Version {
		t.Fatalf("version=%d", header.Version)
	}
	if int(header.ByteLength) != len(data) {
		t.Fatalf("byteLength=%d, actual %d", header.ByteLength, len(data))
	}
	if header.FeatureTableBinaryByteLength != 0 || header.BatchTableJSONByteLength != 0 || header.BatchTableBinaryByteLength != 0 {
		t.Fatalf("unexpected table lengths %+v", header)
	}
	if !bytes.Equal(payload, glb) {
		t.Fatal("payload differs from wrapped glb")
	}
}

func TestFeatureTableAlignment(t *testing.T) {
	data := Wrap([]byte{1, 2, 3, 4})
	header, _, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	ftLen := int(header.FeatureTableJSONByteLength)
	if (HeaderLength+ftLen)%8 != 0 {
		t.Fatalf("payload offset %d not 8 byte aligned", HeaderLength+ftLen)
	}
	ft := string(data[HeaderLength : HeaderLength+ftLen])
	if strings.TrimRight(ft, " ") != `{"BATCH_LENGTH":1}` {
		t.Fatalf("feature table=%q", ft)
	}
}

func TestParseRejectsOtherMagic(t *testing.T) {
	data := Wrap(nil)
	copy(data, "pnts")
	if _, _, err := Parse(data); err == nil {
		t.Fatal("expected magic error")
	}
}
