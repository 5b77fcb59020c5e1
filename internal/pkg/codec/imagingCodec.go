package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imagetools/internal/entity"
)

const (
	defaultJPEGQuality = 75
	defaultWEBPQuality = 80
	gifColors          = 256
)

type imagingCodec struct{}

// NewImagingCodec returns a Codec backed by disintegration/imaging, with WEBP
// handled by chai2010/webp. Importing webp registers its decoder with package image.
func NewImagingCodec() Codec {
	return &imagingCodec{}
}

func (c *imagingCodec) Verify(data []byte) (h Header, err error) {
	if len(data) == 0 {
		return Header{}, ErrEmptyInput
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, err
	}
	return Header{Format: entity.ParseFormat(name), Width: cfg.Width, Height: cfg.Height}, nil
}

func (c *imagingCodec) Decode(data []byte) (img *entity.DecodedImage, err error) {
	h, err := c.Verify(data)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()

	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &entity.DecodedImage{Image: decoded, Format: h.Format, Mode: modeOf(decoded)}, nil
}

func (c *imagingCodec) Encode(img *entity.DecodedImage, format entity.Format, opts ...EncodeOption) (out []byte, err error) {
	cfg := encodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("encoder panic: %v", r)
		}
	}()

	var buf bytes.Buffer
	switch format {
	case entity.FormatPNG:
		level := png.DefaultCompression
		if cfg.optimize {
			level = png.BestCompression
		}
		err = imaging.Encode(&buf, img.Image, imaging.PNG, imaging.PNGCompressionLevel(level))
	case entity.FormatJPEG:
		err = imaging.Encode(&buf, img.Image, imaging.JPEG, imaging.JPEGQuality(cfg.qualityOr(defaultJPEGQuality)))
	case entity.FormatGIF:
		err = imaging.Encode(&buf, img.Image, imaging.GIF, imaging.GIFNumColors(gifColors))
	case entity.FormatBMP:
		err = imaging.Encode(&buf, img.Image, imaging.BMP)
	case entity.FormatTIFF:
		err = imaging.Encode(&buf, img.Image, imaging.TIFF)
	case entity.FormatWEBP:
		err = webp.Encode(&buf, img.Image, &webp.Options{Quality: float32(clamp(cfg.qualityOr(defaultWEBPQuality), 0, 100))})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *imagingCodec) Resize(img *entity.DecodedImage, width, height int) (*entity.DecodedImage, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return derive(img, imaging.Resize(img.Image, width, height, imaging.Lanczos)), nil
}

// Fit scales img down so it fits in maxWidth x maxHeight, keeping the aspect
// ratio. Images already inside the bound are returned as is.
func (c *imagingCodec) Fit(img *entity.DecodedImage, maxWidth, maxHeight int) *entity.DecodedImage {
	if img.Width() <= maxWidth && img.Height() <= maxHeight {
		return img
	}
	return derive(img, imaging.Fit(img.Image, maxWidth, maxHeight, imaging.Lanczos))
}

// Rotate turns the image counter-clockwise. For 90 and 270 the canvas grows to
// the rotated bounds, so width and height swap.
func (c *imagingCodec) Rotate(img *entity.DecodedImage, degrees int) (*entity.DecodedImage, error) {
	switch degrees {
	case 90:
		return derive(img, imaging.Rotate90(img.Image)), nil
	case 180:
		return derive(img, imaging.Rotate180(img.Image)), nil
	case 270:
		return derive(img, imaging.Rotate270(img.Image)), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidAngle, degrees)
}

func (c *imagingCodec) Flip(img *entity.DecodedImage, axis Axis) (*entity.DecodedImage, error) {
	switch axis {
	case Horizontal:
		return derive(img, imaging.FlipH(img.Image)), nil
	case Vertical:
		return derive(img, imaging.FlipV(img.Image)), nil
	}
	return nil, fmt.Errorf("unknown flip axis %d", axis)
}

func (c *imagingCodec) Convert(img *entity.DecodedImage, mode entity.ColorMode) (*entity.DecodedImage, error) {
	switch mode {
	case entity.ModeRGB:
		return &entity.DecodedImage{Image: flatten(img.Image), Format: img.Format, Mode: entity.ModeRGB}, nil
	case entity.ModeRGBA:
		return &entity.DecodedImage{Image: imaging.Clone(img.Image), Format: img.Format, Mode: entity.ModeRGBA}, nil
	case entity.ModeL:
		return &entity.DecodedImage{Image: luminance(img.Image), Format: img.Format, Mode: entity.ModeL}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
}

func (c encodeConfig) qualityOr(def int) int {
	if c.hasQuality {
		return c.quality
	}
	return def
}

// flatten drops the alpha channel and keeps the color channels as stored.
func flatten(src image.Image) *image.NRGBA {
	dst := imaging.Clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

func luminance(src image.Image) *image.Gray {
	gray := imaging.Grayscale(src)
	b := gray.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = row[x*4]
		}
	}
	return dst
}

// derive wraps the result of a geometric transform. The channel layout of
// the source is kept, except palettes which the resampler expands.
func derive(src *entity.DecodedImage, img image.Image) *entity.DecodedImage {
	mode := src.Mode
	if mode == entity.ModeP {
		mode = entity.ModeRGB
		if src.HasAlpha() {
			mode = entity.ModeRGBA
		}
	}
	return &entity.DecodedImage{Image: img, Format: src.Format, Mode: mode}
}

func modeOf(img image.Image) entity.ColorMode {
	switch img.(type) {
	case *image.Gray:
		return entity.ModeL
	case *image.Gray16:
		return entity.ModeI16
	case *image.Paletted:
		return entity.ModeP
	case *image.CMYK:
		return entity.ModeCMYK
	case *image.YCbCr, *image.RGBA, *image.RGBA64:
		return entity.ModeRGB
	case *image.NYCbCrA, *image.NRGBA, *image.NRGBA64:
		return entity.ModeRGBA
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return entity.ModeRGB
	}
	return entity.ModeRGBA
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
