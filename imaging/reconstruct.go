package imaging

import (
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Reconstruct builds the unscrambled canvas: borders first, then every
// keyed tile. Cells without a key keep their zero value.
func Reconstruct(
	src image.Image,
	keys KeySequence,
	geo Geometry,
) (draw.Image, error) {
	canvas := newCanvas(src, geo.Canvas())

	for _, target := range geo.Borders() {
		if err := drawImage(canvas, src, target); err != nil {
			return nil, err
		}
	}

	interior := geo.InteriorBounds()
	srcInterior := geo.SourceInteriorBounds()
	for index, key := range keys {
		target := geo.Tile(index, key)
		if !target.Dst.In(interior) {
			return nil, newTileCopyError(target, interior)
		}
		// more keys than the 8x13 source grid holds would read from the
		// bottom or right border strips.
		if !target.Src.In(srcInterior) {
			return nil, newTileCopyError(target, srcInterior)
		}
		if err := drawImage(canvas, src, target); err != nil {
			return nil, err
		}
	}
	zap.S().Debugf("placed %d tiles on %dx%d canvas", len(keys), geo.CroppedWidth, geo.CroppedHeight)

	return canvas, nil
}

// drawImage crops target.Src out of src and places it at target.Dst,
// resampling only when the two sizes differ.
func drawImage(dst draw.Image, src image.Image, target CopyTarget) error {
	srcBounds := src.Bounds()
	srcRect := target.Src.Add(srcBounds.Min)
	if !srcRect.In(srcBounds) {
		return newTileCopyError(target, srcBounds)
	}
	if !target.Dst.In(dst.Bounds()) {
		return newTileCopyError(target, dst.Bounds())
	}
	if target.Dst.Empty() {
		return nil
	}

	if target.Dst.Size() == srcRect.Size() {
		draw.Draw(dst, target.Dst, src, srcRect.Min, draw.Src)
		return nil
	}
	zap.S().Debugf("resampling %s %v to %v", target.Region, srcRect, target.Dst)
	draw.CatmullRom.Scale(dst, target.Dst, src, srcRect, draw.Src, nil)
	return nil
}

func newTileCopyError(target CopyTarget, bounds image.Rectangle) *TileCopyError {
	return &TileCopyError{
		Region: target.Region,
		Src:    target.Src,
		Dst:    target.Dst,
		Bounds: bounds,
	}
}
