package layout

import "fmt"

// Point is a position in layout coordinates.
type Point struct {
	X, Y float64
}

// Curve is a cubic bezier from Start to End.
type Curve struct {
	Start, C1, C2, End Point
}

// Path returns the curve as SVG path data.
func (c Curve) Path() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

// Connector returns the curve drawn for the edge from -> to, or false if
// either node has no box.
//
// A connector into a later column leaves the right side of the source and
// enters the left side of the target. Any other connector (same column or
// backward) leaves the left side and enters the right side. The control
// points sit half the horizontal distance away from each end, pointing
// outwards, which gives the usual horizontal S-shape.
func (l Layout) Connector(from, to string) (Curve, bool) {
	src, ok := l.Boxes[from]
	if !ok {
		return Curve{}, false
	}
	dst, ok := l.Boxes[to]
	if !ok {
		return Curve{}, false
	}

	forward := src.Column < dst.Column
	startX, endX, sign := src.Left, dst.Right, -1.0
	if forward {
		startX, endX, sign = src.Right, dst.Left, 1.0
	}
	startY, endY := src.CenterY(), dst.CenterY()

	off := endX - startX
	if off < 0 {
		off = -off
	}
	off /= 2

	return Curve{
		Start: Point{startX, startY},
		C1:    Point{startX + off*sign, startY},
		C2:    Point{endX - off*sign, endY},
		End:   Point{endX, endY},
	}, true
}
