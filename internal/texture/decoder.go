package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type Encoding string

const (
	EncodingLuminance8 Encoding = "l8"    // one byte per pixel
	EncodingRGB24      Encoding = "rgb24" // three bytes per pixel
	EncodingDXT1       Encoding = "dxt1"  // packed 4 bit per pixel, 4x4 blocks of 8 bytes
)

const (
	MaxTextureSize    = 2048
	PlaceholderSize   = 256
	dxt1BlockSize     = 8
	dxt1BlockEdgeSize = 4
)

var (
	ErrUnsupportedEncoding = errors.New("unsupported texture encoding")
	ErrShortBuffer         = errors.New("pixel buffer shorter than declared size")
)

func ParseEncoding(value string) (Encoding, error) {
	switch e := Encoding(value); e {
	case EncodingLuminance8, EncodingRGB24, EncodingDXT1:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, value)
}

// Number of channels of the raster produced for the given encoding
func (e Encoding) Channels() int {
	if e == EncodingLuminance8 {
		return 1
	}
	return 3
}

// Tightly packed 8 bit raster, row major, top row first
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

func NewRaster(width, height, channels int) *Raster {
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Returns the channel values of the pixel at (x, y)
func (r *Raster) At(x, y int) []byte {
	offset := (y*r.Width + x) * r.Channels
	return r.Pix[offset : offset+r.Channels]
}

// Flat black RGB raster used whenever a texture carries no image
func Placeholder() *Raster {
	return NewRaster(PlaceholderSize, PlaceholderSize, 3)
}

// Decodes a pixel buffer into a raster, then downsamples it to MaxTextureSize.
// rowStride is the distance in bytes between two rows of plain encodings, 0 means tightly packed.
func Decode(buf []byte, width, height, rowStride int, encoding Encoding) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}

	var raster *Raster
	var err error
	switch encoding {
	case EncodingLuminance8, EncodingRGB24:
		raster, err = decodePlain(buf, width, height, rowStride, encoding.Channels())
	case EncodingDXT1:
		raster = decodeDXT1(buf, width, height)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
	if err != nil {
		return nil, err
	}

	return Downsample(raster, MaxTextureSize), nil
}

func decodePlain(buf []byte, width, height, rowStride, channels int) (*Raster, error) {
	rowSize := width * channels
	if rowStride == 0 {
		rowStride = rowSize
	}
	if rowStride < rowSize {
		return nil, fmt.Errorf("row stride %d smaller than row size %d", rowStride, rowSize)
	}
	if len(buf) < rowStride*(height-1)+rowSize {
		return nil, ErrShortBuffer
	}

	raster := NewRaster(width, height, channels)
	for row := 0; row < height; row++ {
		copy(raster.Pix[row*rowSize:(row+1)*rowSize], buf[row*rowStride:row*rowStride+rowSize])
	}
	return raster, nil
}

// Expands a RGB565 color to 8 bits per channel
func rgb565ToRGB(c uint16) [3]int {
	return [3]int{
		int((c>>11)&0x1F) << 3,
		int((c>>5)&0x3F) << 2,
		int(c&0x1F) << 3,
	}
}

// Four candidate colors of a DXT1 block, selected by the 2 bit pixel indices
func dxt1Palette(color0, color1 uint16) [4][3]byte {
	c0 := rgb565ToRGB(color0)
	c1 := rgb565ToRGB(color1)

	var palette [4][3]byte
	for ch := 0; ch < 3; ch++ {
		palette[0][ch] = byte(c0[ch])
		palette[1][ch] = byte(c1[ch])
		if color0 > color1 {
			palette[2][ch] = byte((2*c0[ch] + c1[ch]) / 3)
			palette[3][ch] = byte((c0[ch] + 2*c1[ch]) / 3)
		} else {
			palette[2][ch] = byte((c0[ch] + c1[ch]) / 2)
			palette[3][ch] = 0
		}
	}
	return palette
}

func decodeDXT1(buf []byte, width, height int) *Raster {
	raster := NewRaster(width, height, 3)

	xPos, yPos := 0, 0
	for offset := 0; offset+dxt1BlockSize <= len(buf) && yPos < height; offset += dxt1BlockSize {
		block := buf[offset : offset+dxt1BlockSize]
		palette := dxt1Palette(binary.LittleEndian.Uint16(block[0:2]), binary.LittleEndian.Uint16(block[2:4]))

		for row := 0; row < dxt1BlockEdgeSize; row++ {
			indices := block[4+row]
			y := yPos + row
			for col := 0; col < dxt1BlockEdgeSize; col++ {
				x := xPos + col
				if x >= width || y >= height {
					continue
				}
				color := palette[(indices>>(2*col))&0x03]
				copy(raster.At(x, y), color[:])
			}
		}

		xPos += dxt1BlockEdgeSize
		if xPos >= width {
			xPos = 0
			yPos += dxt1BlockEdgeSize
		}
	}
	return raster
}

// Halves both dimensions until they fit maxSize, then resamples with a fixed integer stride
// (nearest neighbour, source pixel (col*stride, row*stride)). Rasters already in bound are returned as is.
func Downsample(r *Raster, maxSize int) *Raster {
	newWidth, newHeight := r.Width, r.Height
	for newWidth > maxSize || newHeight > maxSize {
		newWidth /= 2
		newHeight /= 2
	}
	if newWidth == r.Width && newHeight == r.Height {
		return r
	}
	if newWidth == 0 || newHeight == 0 {
		newWidth, newHeight = max(newWidth, 1), max(newHeight, 1)
	}

	stride := r.Width / newWidth
	out := NewRaster(newWidth, newHeight, r.Channels)
	for row := 0; row < newHeight; row++ {
		srcRow := min(row*stride, r.Height-1)
		for col := 0; col < newWidth; col++ {
			copy(out.At(col, row), r.At(col*stride, srcRow))
		}
	}
	return out
}
