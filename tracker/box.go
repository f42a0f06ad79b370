package tracker

// BoundingBox represents an axis aligned rectangle in integer pixel
// coordinates using corner format, where (X1,Y1) is the top left corner
// and (X2,Y2) the bottom right corner
type BoundingBox struct {
	X1, Y1, X2, Y2 int
}

// NewBoundingBox creates a new BoundingBox with given corner coordinates
func NewBoundingBox(x1, y1, x2, y2 int) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() int {
	return b.Y2 - b.Y1
}

// CenterX returns the center X coordinate of the bounding box
func (b BoundingBox) CenterX() int {
	return (b.X1 + b.X2) / 2
}

// CenterY returns the center Y coordinate of the bounding box
func (b BoundingBox) CenterY() int {
	return (b.Y1 + b.Y2) / 2
}

// Area returns the area of the bounding box in pixels
func (b BoundingBox) Area() int {
	return b.Width() * b.Height()
}

// IntersectsX checks if the bounding box spans the vertical line at x
func (b BoundingBox) IntersectsX(x int) bool {
	return b.X1 <= x && x <= b.X2
}

// IoU calculates the Intersection over Union with another bounding box.
// Disjoint and degenerate zero area boxes give 0, identical boxes give 1.
func (b BoundingBox) IoU(other BoundingBox) float64 {

	// intersection rectangle
	x1 := max(b.X1, other.X1)
	y1 := max(b.Y1, other.Y1)
	x2 := min(b.X2, other.X2)
	y2 := min(b.Y2, other.Y2)

	if x2 <= x1 || y2 <= y1 {
		return 0.0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := b.Area() + other.Area() - intersection

	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}
