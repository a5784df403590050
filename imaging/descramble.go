// Package imaging reassembles page images that were shuffled into a
// gutter-separated tile grid before delivery.
//
// The shuffle key lives in the EXIF ImageUniqueID field as colon separated
// hexadecimal values, one per interior tile. The output is always PNG and
// is 90 pixels narrower and 140 pixels shorter than the input.
package imaging

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Descramble decodes a scrambled page, restores the original tile order
// and returns the page encoded as PNG. It is safe for concurrent use.
func Descramble(data []byte) ([]byte, error) {
	keys, err := ExtractKeys(data)
	if err != nil {
		return nil, err
	}
	zap.S().Debugf("read %d scramble keys", len(keys))

	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	geo, err := NewGeometry(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	canvas, err := Reconstruct(img, keys, geo)
	if err != nil {
		return nil, err
	}

	out, err := EncodePNG(canvas)
	if err != nil {
		return nil, err
	}
	zap.S().Debugf(
		"descrambled %dx%d page: %s -> %s",
		geo.Width, geo.Height,
		humanize.Bytes(uint64(len(data))),
		humanize.Bytes(uint64(len(out))),
	)
	return out, nil
}
