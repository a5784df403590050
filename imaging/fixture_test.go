package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"testing"

	"unscramble/internal/testutil"

	"github.com/stretchr/testify/require"
)

var (
	gutterColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	topColor    = color.NRGBA{R: 255, A: 255}
	leftColor   = color.NRGBA{G: 255, A: 255}
	bottomColor = color.NRGBA{B: 255, A: 255}
	rightColor  = color.NRGBA{R: 255, G: 255, A: 255}
	emptyColor  = color.NRGBA{}
)

// cellColor is the color of the unscrambled grid cell n.
func cellColor(n uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(n*2 + 1),
		G: uint8(255 - n),
		B: uint8(n * 7),
		A: 255,
	}
}

// page describes the layout of a scrambled image of a given size,
// computed independently from Geometry.
type page struct {
	w, h         int
	cropW, cropH int
	cellW, cellH int
}

func newPage(w, h int) page {
	return page{
		w: w, h: h,
		cropW: w - 90, cropH: h - 140,
		cellW: (w - 90) / 10, cellH: (h - 140) / 15,
	}
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// scramble paints a scrambled image: solid border strips, and for every
// source position i the tile that belongs in cell keys[i].
func (p page) scramble(keys KeySequence) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.w, p.h))
	fillRect(img, img.Bounds(), gutterColor)

	side := p.cropH - 2*p.cellH
	rightW := p.cellW + (p.cropW - 10*p.cellW)
	fillRect(img, image.Rect(0, 0, p.cropW, p.cellH), topColor)
	fillRect(img, image.Rect(0, p.cellH+10, p.cellW, p.cellH+10+side), leftColor)
	fillRect(img, image.Rect(0, 14*(p.cellH+10), p.cropW, p.h), bottomColor)
	fillRect(img, image.Rect(9*(p.cellW+10), p.cellH+10, 9*(p.cellW+10)+rightW, p.cellH+10+side), rightColor)

	for i, key := range keys {
		x := (i%8 + 1) * (p.cellW + 10)
		y := (i/8 + 1) * (p.cellH + 10)
		fillRect(img, image.Rect(x, y, x+p.cellW, y+p.cellH), cellColor(key))
	}
	return img
}

// expected returns the color the unscrambled page must have at (x, y).
func (p page) expected(x, y int, placed map[int]bool) color.NRGBA {
	switch {
	case y < p.cellH:
		return topColor
	case x >= 9*p.cellW && y < p.cropH-p.cellH:
		return rightColor
	case y >= 14*p.cellH:
		return bottomColor
	case x < p.cellW:
		return leftColor
	}
	cell := (y/p.cellH-1)*8 + (x/p.cellW - 1)
	if !placed[cell] {
		return emptyColor
	}
	return cellColor(uint32(cell))
}

func (p page) requireUnscrambled(t *testing.T, img image.Image, keys KeySequence) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, p.cropW, p.cropH), img.Bounds())

	placed := make(map[int]bool, len(keys))
	for _, key := range keys {
		placed[int(key)] = true
	}
	for y := 0; y < p.cropH; y++ {
		for x := 0; x < p.cropW; x++ {
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			want := p.expected(x, y, placed)
			if got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func identityKeys(n int) KeySequence {
	keys := make(KeySequence, n)
	for i := range keys {
		keys[i] = uint32(i)
	}
	return keys
}

func formatKeys(keys KeySequence) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = strconv.FormatUint(uint64(key), 16)
	}
	return strings.Join(parts, ":")
}

func encodeWithUniqueID(t *testing.T, img image.Image, value string) []byte {
	t.Helper()
	data, err := testutil.EncodeWithUniqueID(img, value)
	require.NoError(t, err)
	return data
}

func encodeJPEGWithUniqueID(t *testing.T, img image.Image, value string) []byte {
	t.Helper()
	data, err := testutil.EncodeJPEGWithUniqueID(img, value)
	require.NoError(t, err)
	return data
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}
