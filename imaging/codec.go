package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

var (
	jpegHeader   = []byte{0xFF, 0xD8, 0xFF}
	pngHeader    = []byte{0x89, 0x50, 0x4E, 0x47}
	gifHeader    = []byte{0x47, 0x49, 0x46}
	riffHeader   = []byte{0x52, 0x49, 0x46, 0x46}
	webpHeader   = []byte{0x57, 0x45, 0x42, 0x50}
	tiffLEHeader = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBEHeader = []byte{0x4D, 0x4D, 0x00, 0x2A}
	bmpHeader    = []byte{0x42, 0x4D}
)

var pngEncoder = &png.Encoder{
	CompressionLevel: png.BestCompression,
	BufferPool:       &encoderBufferPool{},
}

// encoderBufferPool lets concurrent encodes reuse zlib and row buffers.
type encoderBufferPool struct {
	pool sync.Pool
}

func (p *encoderBufferPool) Get() *png.EncoderBuffer {
	buf, _ := p.pool.Get().(*png.EncoderBuffer)
	return buf
}

func (p *encoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

func DetectImageFormat(data []byte) (string, error) {
	if len(data) < 12 {
		return "", fmt.Errorf("%w: file header too short: %d bytes", ErrImageDecode, len(data))
	}
	header := data[:12]

	switch {
	case bytes.HasPrefix(header, jpegHeader):
		return "jpeg", nil
	case bytes.HasPrefix(header, pngHeader):
		return "png", nil
	case bytes.HasPrefix(header, gifHeader):
		return "gif", nil
	case bytes.HasPrefix(header, tiffLEHeader), bytes.HasPrefix(header, tiffBEHeader):
		return "tiff", nil
	case bytes.HasPrefix(header, riffHeader):
		if bytes.Equal(header[8:12], webpHeader) {
			return "webp", nil
		}
		return "", fmt.Errorf("%w: %w", ErrImageDecode, ErrUnknownRIFF)
	case bytes.HasPrefix(header, bmpHeader):
		return "bmp", nil
	}
	return "", fmt.Errorf("%w: %w", ErrImageDecode, ErrUnsupportedImageFormat)
}

func DecodeImage(data []byte) (image.Image, error) {
	format, err := DetectImageFormat(data)
	if err != nil {
		return nil, err
	}
	zap.S().Debugf("detected image format: %s", format)

	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	if decoded != format {
		zap.S().Debugf("image decoded as %s, header said %s", decoded, format)
	}
	return img, nil
}

// EncodePNG writes img losslessly at the best compression level.
// The encoder picks a filter per row on its own at this level.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageEncode, err)
	}
	return buf.Bytes(), nil
}

// newCanvas allocates a zeroed buffer in the source color model when
// the PNG encoder can store it as is, RGBA otherwise.
func newCanvas(src image.Image, r image.Rectangle) draw.Image {
	switch img := src.(type) {
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.Paletted:
		palette := make([]color.Color, len(img.Palette))
		copy(palette, img.Palette)
		return image.NewPaletted(r, palette)
	default:
		return image.NewRGBA(r)
	}
}
