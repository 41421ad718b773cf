package layout

// Box is the rectangle occupied by one node. Coordinates follow SVG
// conventions: Y grows downwards, so Top < Bottom.
type Box struct {
	NodeID      string
	Column, Row int
	Left, Right float64
	Top, Bottom float64
	Lines       []string // Wrapped title lines
	Detail      []string // Wrapped detail lines, empty unless expanded
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Header is the title band above a column.
type Header struct {
	Column      int
	Title       string
	Left, Right float64
	Baseline    float64
}
