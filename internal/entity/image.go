package entity

import (
	"image"
	"mime/multipart"
	"strings"
	"time"
)

type Format string

const (
	FormatPNG     Format = "PNG"
	FormatJPEG    Format = "JPEG"
	FormatGIF     Format = "GIF"
	FormatWEBP    Format = "WEBP"
	FormatBMP     Format = "BMP"
	FormatTIFF    Format = "TIFF"
	FormatUnknown Format = ""
)

// ParseFormat maps a decoder or user supplied name to a Format. JPG is an alias of JPEG.
func ParseFormat(name string) Format {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PNG":
		return FormatPNG
	case "JPEG", "JPG":
		return FormatJPEG
	case "GIF":
		return FormatGIF
	case "WEBP":
		return FormatWEBP
	case "BMP":
		return FormatBMP
	case "TIFF":
		return FormatTIFF
	}
	return FormatUnknown
}

func (f Format) ContentType() string {
	if f == FormatUnknown {
		return "application/octet-stream"
	}
	return "image/" + strings.ToLower(string(f))
}

// ColorMode is the per-pixel channel layout, named the way image tooling usually reports it.
type ColorMode string

const (
	ModeL    ColorMode = "L"
	ModeLA   ColorMode = "LA"
	ModeP    ColorMode = "P"
	ModeRGB  ColorMode = "RGB"
	ModeRGBA ColorMode = "RGBA"
	ModeCMYK ColorMode = "CMYK"
	ModeI16  ColorMode = "I;16"
)

func (m ColorMode) HasAlpha() bool {
	return m == ModeRGBA || m == ModeLA
}

// DecodedImage is a request-local pixel buffer. Transforms never mutate it,
// they return a new value.
type DecodedImage struct {
	Image  image.Image
	Format Format
	Mode   ColorMode
}

func (d *DecodedImage) Width() int {
	return d.Image.Bounds().Dx()
}

func (d *DecodedImage) Height() int {
	return d.Image.Bounds().Dy()
}

// HasAlpha reports whether flattening is needed before encoding to a format
// without transparency. Palettes with a transparent entry count.
func (d *DecodedImage) HasAlpha() bool {
	if d.Mode.HasAlpha() {
		return true
	}
	if p, ok := d.Image.(*image.Paletted); ok {
		return !p.Opaque()
	}
	return false
}

// EncodedImage is the successful outcome of an operation.
type EncodedImage struct {
	Data     []byte
	Format   Format
	Filename string
	Width    int
	Height   int
}

func (e *EncodedImage) ContentType() string {
	return e.Format.ContentType()
}

// Optional form values bind as *string: nil means the field was not sent,
// "" means it was sent blank. Defaults apply only to the first case.

type InspectRequest struct {
	Image *multipart.FileHeader `form:"image"`
}

type ResizeRequest struct {
	Image  *multipart.FileHeader `form:"image"`
	Width  *string               `form:"width"`
	Height *string               `form:"height"`
}

type ConvertRequest struct {
	Image  *multipart.FileHeader `form:"image"`
	Format *string               `form:"format"`
}

type CompressRequest struct {
	File    *multipart.FileHeader `form:"file"`
	Quality *string               `form:"quality"`
}

type FilterRequest struct {
	Image  *multipart.FileHeader `form:"image"`
	Filter *string               `form:"filter"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ImageInfo struct {
	Format Format    `json:"format"`
	Mode   ColorMode `json:"mode"`
	Size   Size      `json:"size"`
}

type InspectResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ImageInfo ImageInfo `json:"image_info"`
}

type ResizeResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	NewSize Size   `json:"new_size"`
}

type ConvertResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Format  string `json:"format"`
}

type FilterResponse struct {
	Success       bool   `json:"success"`
	Image         string `json:"image"`
	FilterApplied string `json:"filter_applied"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// OperationEvent describes one finished operation. It never carries pixel data.
type OperationEvent struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Operation   string    `json:"operation"`
	Filename    string    `json:"filename,omitempty"`
	Format      Format    `json:"format,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	OutputBytes int       `json:"output_bytes,omitempty"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	Time        time.Time `json:"time"`
}
