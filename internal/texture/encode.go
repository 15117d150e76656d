package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

const DefaultJPEGQuality = 80

// Converts the raster to an image.Image without copying grayscale data
func (r *Raster) Image() (image.Image, error) {
	rect := image.Rect(0, 0, r.Width, r.Height)
	switch r.Channels {
	case 1:
		return &image.Gray{Pix: r.Pix, Stride: r.Width, Rect: rect}, nil
	case 3:
		img := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
			img.Pix[j] = r.Pix[i]
			img.Pix[j+1] = r.Pix[i+1]
			img.Pix[j+2] = r.Pix[i+2]
			img.Pix[j+3] = 0xFF
		}
		return img, nil
	}
	return nil, fmt.Errorf("cannot build image from a %d channel raster", r.Channels)
}

// Encodes the raster as a baseline JPEG at the given quality
func EncodeJPEG(r *Raster, quality int) ([]byte, error) {
	img, err := r.Image()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
