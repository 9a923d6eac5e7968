package ai

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var ErrNoImage = errors.New("no image returned")

// ImageData is what an image backend hands back: either a decoded image or
// the encoded bytes as received.
type ImageData interface {
	isImageData()
}

type DecodedImage struct {
	Image image.Image
}

type EncodedBytes struct {
	Data     []byte
	MIMEType string
}

func (DecodedImage) isImageData() {}
func (EncodedBytes) isImageData() {}

// NormalizeImage returns the canonical in-memory image for d.
func NormalizeImage(d ImageData) (image.Image, error) {
	switch v := d.(type) {
	case DecodedImage:
		if v.Image == nil {
			return nil, ErrNoImage
		}
		return v.Image, nil
	case *DecodedImage:
		if v == nil {
			return nil, ErrNoImage
		}
		return NormalizeImage(*v)
	case EncodedBytes:
		if len(v.Data) == 0 {
			return nil, ErrNoImage
		}
		img, _, err := image.Decode(bytes.NewReader(v.Data))
		if err != nil {
			return nil, fmt.Errorf("decode %s image (%d bytes): %w", mimeOrUnknown(v.MIMEType), len(v.Data), err)
		}
		return img, nil
	case *EncodedBytes:
		if v == nil {
			return nil, ErrNoImage
		}
		return NormalizeImage(*v)
	case nil:
		return nil, ErrNoImage
	default:
		return nil, fmt.Errorf("unsupported image data %T", d)
	}
}

func mimeOrUnknown(mt string) string {
	if mt == "" {
		return "unknown"
	}
	return mt
}
