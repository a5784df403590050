package imaging

import (
	"fmt"
	"image"
)

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrMetadataMissing        = &Error{Message: "image unique id not found in exif metadata"}
	ErrKeyParse               = &Error{Message: "failed to parse scramble keys"}
	ErrInvalidImageDimensions = &Error{Message: "image is smaller than the scramble margins"}
	ErrImageDecode            = &Error{Message: "failed to decode image"}
	ErrImageEncode            = &Error{Message: "failed to encode image"}
	ErrTileCopy               = &Error{Message: "tile copy out of bounds"}
	ErrUnknownRIFF            = &Error{Message: "unknown RIFF format"}
	ErrUnsupportedImageFormat = &Error{Message: "unsupported image format"}
)

// KeyParseError reports a key token that is not valid hexadecimal.
type KeyParseError struct {
	Token string
	Raw   string
	Err   error
}

func (err *KeyParseError) Error() string {
	return fmt.Sprintf("failed to parse image unique id: %s (%q)", err.Raw, err.Token)
}

func (err *KeyParseError) Unwrap() error { return err.Err }

func (err *KeyParseError) Is(target error) bool { return target == ErrKeyParse }

type DimensionsError struct {
	Width  int
	Height int
}

func (err *DimensionsError) Error() string {
	return fmt.Sprintf(
		"invalid image dimensions %dx%d: need more than %dx%d with at least one pixel per cell",
		err.Width, err.Height,
		CutWidth+CellColumns-1, CutHeight+CellRows-1,
	)
}

func (err *DimensionsError) Is(target error) bool { return target == ErrInvalidImageDimensions }

// TileCopyError carries both rectangles of a rejected copy.
type TileCopyError struct {
	Region string
	Src    image.Rectangle
	Dst    image.Rectangle
	Bounds image.Rectangle
}

func (err *TileCopyError) Error() string {
	return fmt.Sprintf(
		"failed to copy %s from source to canvas: source_x: %d, source_y: %d, source_w: %d, source_h: %d, "+
			"dest_x: %d, dest_y: %d, dest_w: %d, dest_h: %d (allowed %v)",
		err.Region,
		err.Src.Min.X, err.Src.Min.Y, err.Src.Dx(), err.Src.Dy(),
		err.Dst.Min.X, err.Dst.Min.Y, err.Dst.Dx(), err.Dst.Dy(),
		err.Bounds,
	)
}

func (err *TileCopyError) Is(target error) bool { return target == ErrTileCopy }
