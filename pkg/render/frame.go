package render

import (
	"github.com/matzehuels/collage/pkg/scatter"
)

// Frame defaults.
const (
	DefaultWidth   = 1200.0
	DefaultGap     = 16.0
	DefaultPadding = 32.0
)

// Frame describes the canvas a layout is drawn on. Zero fields take the
// package defaults; a zero CellHeight makes cells square.
type Frame struct {
	Width      float64 `json:"width"`
	CellHeight float64 `json:"cell_height,omitempty"`
	Gap        float64 `json:"gap"`
	Padding    float64 `json:"padding"`
}

// WithDefaults returns f with unset fields filled in.
func (f Frame) WithDefaults() Frame {
	if f.Width <= 0 {
		f.Width = DefaultWidth
	}
	if f.Gap < 0 {
		f.Gap = 0
	} else if f.Gap == 0 {
		f.Gap = DefaultGap
	}
	if f.Padding < 0 {
		f.Padding = 0
	} else if f.Padding == 0 {
		f.Padding = DefaultPadding
	}
	return f
}

// Rect is an item's pixel box before rotation. Y grows downwards.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center, the rotation origin.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center, the rotation origin.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Cell is a zero-based grid position with an extent, after flow resolution.
type Cell struct {
	Col, Row   int
	Cols, Rows int
}

// Layout is the pixel geometry of a set of placements.
type Layout struct {
	Frame   Frame   `json:"frame"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Cells   []Cell  `json:"-"`
	Rects   []Rect  `json:"rects"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Geometry resolves placements to grid cells according to cfg's flow and maps
// the cells to pixels in frame. Offsets are applied after grid placement and
// do not change the frame size.
func Geometry(cfg scatter.Config, placements []scatter.Placement, frame Frame) Layout {
	frame = frame.WithDefaults()

	var cells []Cell
	var cols int
	if cfg.FlowOrDefault() == scatter.FlowDense {
		cols = max(cfg.GridColumns(), 1)
		cells = packDense(placements, cols)
	} else {
		extentCols, _ := cfg.Extent()
		cols = max(cfg.GridColumns(), extentCols, 1)
		cells = placeFixed(cfg, placements)
	}

	rows := 0
	for _, c := range cells {
		rows = max(rows, c.Row+c.Rows)
	}

	inner := frame.Width - 2*frame.Padding - float64(cols-1)*frame.Gap
	cellW := max(inner/float64(cols), 1)
	cellH := frame.CellHeight
	if cellH <= 0 {
		cellH = cellW
	}

	rects := make([]Rect, len(cells))
	for i, c := range cells {
		r := Rect{
			X: frame.Padding + float64(c.Col)*(cellW+frame.Gap),
			Y: frame.Padding + float64(c.Row)*(cellH+frame.Gap),
			W: float64(c.Cols)*cellW + float64(c.Cols-1)*frame.Gap,
			H: float64(c.Rows)*cellH + float64(c.Rows-1)*frame.Gap,
		}
		r.X += placements[i].Nudge.X
		r.Y += placements[i].Nudge.Y
		rects[i] = r
	}

	height := 2 * frame.Padding
	if rows > 0 {
		height += float64(rows)*cellH + float64(rows-1)*frame.Gap
	}

	return Layout{
		Frame:   frame,
		Columns: cols,
		Rows:    rows,
		Cells:   cells,
		Rects:   rects,
		Width:   frame.Width,
		Height:  height,
	}
}

// placeFixed reads spans as absolute lines, shifting each wrap down by the
// table's row extent.
func placeFixed(cfg scatter.Config, placements []scatter.Placement) []Cell {
	_, extentRows := cfg.Extent()
	cells := make([]Cell, len(placements))
	for i, p := range placements {
		cells[i] = Cell{
			Col:  p.Span.ColumnStart - 1,
			Row:  p.Span.RowStart - 1 + p.Cycle*extentRows,
			Cols: p.Span.Columns(),
			Rows: p.Span.Rows(),
		}
	}
	return cells
}

// packDense places each span at the first free position scanning rows top to
// bottom and columns left to right, restarting from the top for every item.
func packDense(placements []scatter.Placement, cols int) []Cell {
	var grid occupancy
	cells := make([]Cell, len(placements))
	for i, p := range placements {
		w := min(max(p.Span.Columns(), 1), cols)
		h := max(p.Span.Rows(), 1)
		for row := 0; ; row++ {
			col, ok := grid.firstFit(row, w, h, cols)
			if !ok {
				continue
			}
			grid.fill(col, row, w, h, cols)
			cells[i] = Cell{Col: col, Row: row, Cols: w, Rows: h}
			break
		}
	}
	return cells
}

type occupancy [][]bool

func (o occupancy) taken(col, row int) bool {
	return row < len(o) && o[row][col]
}

func (o occupancy) firstFit(row, w, h, cols int) (int, bool) {
	for col := 0; col+w <= cols; col++ {
		if o.free(col, row, w, h) {
			return col, true
		}
	}
	return 0, false
}

func (o occupancy) free(col, row, w, h int) bool {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			if o.taken(c, r) {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) fill(col, row, w, h, cols int) {
	for len(*o) < row+h {
		*o = append(*o, make([]bool, cols))
	}
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			(*o)[r][c] = true
		}
	}
}
