// Package geo maps coordinates onto a flat map image.
package geo

// Bounds is a latitude/longitude rectangle.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Projection linearly maps Bounds onto a Width x Height pixel canvas.
// Y grows downward, so MaxLat is row 0.
type Projection struct {
	Bounds Bounds
	Width  float64
	Height float64
}

// DefaultProjection covers India on an 800x600 canvas.
var DefaultProjection = Projection{
	Bounds: Bounds{MinLat: 8, MaxLat: 37, MinLng: 68, MaxLng: 97},
	Width:  800,
	Height: 600,
}

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToPixel converts lat/lng to a pixel position. The result may lie outside the canvas.
func (p Projection) ToPixel(lat, lng float64) Point {
	b := p.Bounds
	return Point{
		X: (lng - b.MinLng) / (b.MaxLng - b.MinLng) * p.Width,
		Y: (b.MaxLat - lat) / (b.MaxLat - b.MinLat) * p.Height,
	}
}

// Contains reports whether pt lies on the canvas, edges included.
func (p Projection) Contains(pt Point) bool {
	return pt.X >= 0 && pt.X <= p.Width && pt.Y >= 0 && pt.Y <= p.Height
}

// Valid reports whether the projection has a non-degenerate area.
func (p Projection) Valid() bool {
	return p.Width > 0 && p.Height > 0 &&
		p.Bounds.MaxLat > p.Bounds.MinLat && p.Bounds.MaxLng > p.Bounds.MinLng
}
