package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/codec"
	"github.com/stretchr/testify/require"
)

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxFileSize:       10 * 1024 * 1024,
		MaxImageDimension: 4096,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "webp", "bmp"},
	}
}

// recordingProducer keeps published events in memory.
type recordingProducer struct {
	mu     sync.Mutex
	events []entity.OperationEvent
}

func (p *recordingProducer) Publish(_ context.Context, event entity.OperationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) last(t *testing.T) entity.OperationEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.events)
	return p.events[len(p.events)-1]
}

// spyCodec counts how often the decoder is reached.
type spyCodec struct {
	codec.Codec
	verifyCalls int
	decodeCalls int
}

func (s *spyCodec) Verify(data []byte) (codec.Header, error) {
	s.verifyCalls++
	return s.Codec.Verify(data)
}

func (s *spyCodec) Decode(data []byte) (*entity.DecodedImage, error) {
	s.decodeCalls++
	return s.Codec.Decode(data)
}

// newFileHeader builds a real multipart upload the way a form post produces it.
func newFileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func gradientRGBA(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 3), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeWith(t *testing.T, img image.Image, format entity.Format) []byte {
	t.Helper()
	data, err := codec.NewImagingCodec().Encode(&entity.DecodedImage{Image: img, Mode: entity.ModeRGB}, format)
	require.NoError(t, err)
	return data
}

// pngWithDeclaredSize returns a PNG whose header claims width x height while
// the pixel data stays tiny.
func pngWithDeclaredSize(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))

	// signature(8) + length(4) + "IHDR"(4), then width and height
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func strPtr(v string) *string {
	return &v
}
