package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	// Registered image decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// InspectImage parses the image header of u. Pixel data is never decoded.
func InspectImage(u Upload) (ImageInfo, error) {
	if u.Size() == 0 {
		return ImageInfo{}, fmt.Errorf("%w %q", ErrEmptyUpload, u.Filename)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(u.Data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return ImageInfo{}, fmt.Errorf("%w %q", ErrUnsupportedImage, u.Filename)
		}
		return ImageInfo{}, fmt.Errorf("decode %s header: %w", format, err)
	}
	return ImageInfo{
		Filename: u.Filename,
		Format:   strings.ToUpper(format),
		Mode:     colorMode(cfg.ColorModel),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// colorMode maps a Go color model to the Pillow mode name clients expect.
func colorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "L"
	default:
		// RGBA, RGBA64 and YCbCr come from opaque truecolor sources.
		return "RGB"
	}
}
