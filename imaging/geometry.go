package imaging

import "image"

const (
	CutWidth    = 90
	CutHeight   = 140
	CellColumns = 10
	CellRows    = 15
	Gutter      = 10

	// the scrambler always lays interior tiles out in 8 columns,
	// whatever CellColumns says.
	GridColumns = 8
	GridRows    = CellRows - 2
)

const (
	RegionTop    = "top border"
	RegionLeft   = "left border"
	RegionBottom = "bottom border"
	RegionRight  = "right border"
	RegionTile   = "tile"
)

// Geometry holds every size derived from the scrambled image dimensions.
// Columns and rows are 1-indexed in the interior grid, index 0 belongs to
// the borders.
type Geometry struct {
	Width         int
	Height        int
	CroppedWidth  int
	CroppedHeight int
	CellWidth     int
	CellHeight    int
}

// CopyTarget is one crop-then-place operation from source to canvas.
type CopyTarget struct {
	Region string
	Index  int
	Src    image.Rectangle
	Dst    image.Rectangle
}

func NewGeometry(width, height int) (Geometry, error) {
	if width <= CutWidth || height <= CutHeight {
		return Geometry{}, &DimensionsError{Width: width, Height: height}
	}
	croppedWidth := width - CutWidth
	croppedHeight := height - CutHeight
	geo := Geometry{
		Width:         width,
		Height:        height,
		CroppedWidth:  croppedWidth,
		CroppedHeight: croppedHeight,
		CellWidth:     croppedWidth / CellColumns,
		CellHeight:    croppedHeight / CellRows,
	}
	if geo.CellWidth == 0 || geo.CellHeight == 0 {
		return Geometry{}, &DimensionsError{Width: width, Height: height}
	}
	return geo, nil
}

// Remainder is the extra width absorbed by the rightmost column.
func (g Geometry) Remainder() int {
	return g.CroppedWidth - CellColumns*g.CellWidth
}

func (g Geometry) Canvas() image.Rectangle {
	return image.Rect(0, 0, g.CroppedWidth, g.CroppedHeight)
}

func (g Geometry) Source() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// InteriorBounds is the area of the canvas that permuted tiles may cover.
func (g Geometry) InteriorBounds() image.Rectangle {
	return image.Rect(
		g.CellWidth,
		g.CellHeight,
		(GridColumns+1)*g.CellWidth,
		(GridRows+1)*g.CellHeight,
	)
}

// SourceInteriorBounds is the gutter-padded tile area of the scrambled image.
func (g Geometry) SourceInteriorBounds() image.Rectangle {
	return image.Rect(
		g.CellWidth+Gutter,
		g.CellHeight+Gutter,
		(GridColumns+1)*(g.CellWidth+Gutter),
		(GridRows+1)*(g.CellHeight+Gutter),
	)
}

// Borders returns the four unpermuted strips in copy order.
// The bottom strip overlaps the tail of the left one and must come after it.
func (g Geometry) Borders() []CopyTarget {
	sideHeight := g.CroppedHeight - 2*g.CellHeight
	bottomHeight := g.Height - (GridRows+1)*(g.CellHeight+Gutter)
	rightWidth := g.CellWidth + g.Remainder()

	return []CopyTarget{
		{
			Region: RegionTop,
			Dst:    rect(0, 0, g.CroppedWidth, g.CellHeight),
			Src:    rect(0, 0, g.CroppedWidth, g.CellHeight),
		},
		{
			Region: RegionLeft,
			Dst:    rect(0, g.CellHeight, g.CellWidth, sideHeight),
			Src:    rect(0, g.CellHeight+Gutter, g.CellWidth, sideHeight),
		},
		{
			Region: RegionBottom,
			Dst:    rect(0, (GridRows+1)*g.CellHeight, g.CroppedWidth, bottomHeight),
			Src:    rect(0, (GridRows+1)*(g.CellHeight+Gutter), g.CroppedWidth, bottomHeight),
		},
		{
			Region: RegionRight,
			Dst:    rect((GridColumns+1)*g.CellWidth, g.CellHeight, rightWidth, sideHeight),
			Src:    rect((GridColumns+1)*(g.CellWidth+Gutter), g.CellHeight+Gutter, rightWidth, sideHeight),
		},
	}
}

// Tile maps the source tile at raster position index to the grid cell named by key.
func (g Geometry) Tile(index int, key uint32) CopyTarget {
	dstCol := int(key%GridColumns) + 1
	dstRow := int(key/GridColumns) + 1
	srcCol := index%GridColumns + 1
	srcRow := index/GridColumns + 1

	return CopyTarget{
		Region: RegionTile,
		Index:  index,
		Dst:    rect(dstCol*g.CellWidth, dstRow*g.CellHeight, g.CellWidth, g.CellHeight),
		Src: rect(
			srcCol*(g.CellWidth+Gutter),
			srcRow*(g.CellHeight+Gutter),
			g.CellWidth, g.CellHeight,
		),
	}
}

func rect(x, y, width, height int) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: x, Y: y},
		Max: image.Point{X: x + width, Y: y + height},
	}
}
