package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func padHeader(header ...byte) []byte {
	data := make([]byte, 16)
	copy(data, header)
	return data
}

func TestDetectImageFormat(t *testing.T) {
	cases := map[string][]byte{
		"jpeg": padHeader(0xFF, 0xD8, 0xFF, 0xE0),
		"png":  padHeader(0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A),
		"gif":  padHeader('G', 'I', 'F', '8', '9', 'a'),
		"tiff": padHeader('I', 'I', 0x2A, 0x00),
		"webp": padHeader('R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'E', 'B', 'P'),
		"bmp":  padHeader('B', 'M'),
	}
	for want, data := range cases {
		got, err := DetectImageFormat(data)
		require.NoError(t, err, want)
		assert.Equal(t, want, got)
	}

	got, err := DetectImageFormat(padHeader('M', 'M', 0x00, 0x2A))
	require.NoError(t, err)
	assert.Equal(t, "tiff", got)
}

func TestDetectImageFormatErrors(t *testing.T) {
	_, err := DetectImageFormat([]byte{0xFF, 0xD8})
	assert.ErrorIs(t, err, ErrImageDecode)

	_, err = DetectImageFormat(padHeader('R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'A', 'V', 'E'))
	assert.ErrorIs(t, err, ErrUnknownRIFF)

	_, err = DetectImageFormat(padHeader('%', 'P', 'D', 'F'))
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
}

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	fillRect(src, src.Bounds(), color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, src, nil))
	img, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())

	buf.Reset()
	require.NoError(t, bmp.Encode(&buf, src))
	img, err = DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())

	buf.Reset()
	require.NoError(t, jpeg.Encode(&buf, src, nil))
	img, err = DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
}

func TestDecodeImageCorrupt(t *testing.T) {
	data := padHeader(0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A)
	_, err := DecodeImage(data)
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestEncodePNGLossless(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 37, 23))
	for y := 0; y < 23; y++ {
		for x := 0; x < 37; x++ {
			src.SetGray16(x, y, color.Gray16{Y: uint16(x*1771 + y*311)})
		}
	}

	data, err := EncodePNG(src)
	require.NoError(t, err)

	img := decodePNG(t, data)
	out, ok := img.(*image.Gray16)
	require.True(t, ok, "got %T", img)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestNewCanvas(t *testing.T) {
	r := image.Rect(0, 0, 3, 3)
	palette := color.Palette{color.Black, color.White}

	assert.IsType(t, &image.Gray{}, newCanvas(image.NewGray(r), r))
	assert.IsType(t, &image.Gray16{}, newCanvas(image.NewGray16(r), r))
	assert.IsType(t, &image.NRGBA{}, newCanvas(image.NewNRGBA(r), r))
	assert.IsType(t, &image.NRGBA64{}, newCanvas(image.NewNRGBA64(r), r))
	assert.IsType(t, &image.RGBA64{}, newCanvas(image.NewRGBA64(r), r))
	assert.IsType(t, &image.RGBA{}, newCanvas(image.NewRGBA(r), r))
	assert.IsType(t, &image.RGBA{}, newCanvas(image.NewCMYK(r), r))

	canvas := newCanvas(image.NewPaletted(r, palette), r)
	require.IsType(t, &image.Paletted{}, canvas)
	assert.Equal(t, palette, canvas.(*image.Paletted).Palette)
}
