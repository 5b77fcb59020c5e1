package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure; the transport layer maps kinds to status codes.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindCorrupted
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindCorrupted:
		return "corrupted"
	case KindProcessing:
		return "processing"
	}
	return "unknown"
}

// ImageError carries a message that is safe to show the caller. The wrapped
// error holds internal detail and is only logged.
type ImageError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func NewInvalidInput(format string, args ...any) *ImageError {
	return &ImageError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NewCorrupted(err error) *ImageError {
	return &ImageError{Kind: KindCorrupted, Message: MsgCorruptedImage, Err: err}
}

func NewProcessing(message string, err error) *ImageError {
	return &ImageError{Kind: KindProcessing, Message: message, Err: err}
}

// KindOf returns the kind of err, KindProcessing for anything untyped.
func KindOf(err error) Kind {
	var ie *ImageError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindProcessing
}

const (
	MsgNoImageProvided   = "No image file provided"
	MsgNoFilePart        = "No file part"
	MsgNoFileSelected    = "No file selected"
	MsgCorruptedImage    = "Invalid or corrupted image file"
	MsgDimensionsMissing = "Width and height are required"
	MsgQualityNotInteger = "Quality must be an integer"

	MsgProcessFailed  = "Failed to process image"
	MsgResizeFailed   = "Failed to resize image"
	MsgConvertFailed  = "Failed to convert image"
	MsgCompressFailed = "Failed to compress image"
	MsgFilterFailed   = "Failed to apply filter"
)

func ErrInvalidFileType(allowed []string) *ImageError {
	return NewInvalidInput("Invalid file type. Allowed: %s", strings.Join(allowed, ", "))
}

func ErrFileTooLarge(maxBytes int64) *ImageError {
	return NewInvalidInput("File too large. Maximum size: %dMB", maxBytes/(1024*1024))
}

func ErrDimensionsTooLarge(maxDimension int) *ImageError {
	return NewInvalidInput("Image dimensions too large. Maximum: %dx%d", maxDimension, maxDimension)
}

func ErrInvalidDimensions(maxDimension int) *ImageError {
	return NewInvalidInput("Invalid dimensions. Range: 1-%d", maxDimension)
}

func ErrInvalidFormat(supported []string) *ImageError {
	return NewInvalidInput("Invalid format. Supported: %s", strings.Join(supported, ", "))
}

func ErrInvalidQuality() *ImageError {
	return NewInvalidInput("Invalid quality. Range: 0-100")
}

func ErrUnknownFilter(available []string) *ImageError {
	return NewInvalidInput("Unknown filter. Available: %s", strings.Join(available, ", "))
}
