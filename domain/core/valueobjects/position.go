package valueobjects

import "math"

// positionEpsilon is the tolerance used when comparing coordinates.
const positionEpsilon = 1e-9

// Position is a value object representing a point in canvas (world) space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition creates a position from x/y coordinates
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// ZeroPosition returns the origin
func ZeroPosition() Position {
	return Position{}
}

// IsValid reports whether both coordinates are finite numbers
func (p Position) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Translate returns a position moved by the given offsets
func (p Position) Translate(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the component-wise difference p - other
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the position with both coordinates multiplied by f
func (p Position) Scale(f float64) Position {
	return Position{X: p.X * f, Y: p.Y * f}
}

// DistanceTo calculates the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between p and other by t
func (p Position) Lerp(other Position, t float64) Position {
	return Position{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Midpoint calculates the midpoint between two positions
func (p Position) Midpoint(other Position) Position {
	return Position{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Equals checks if two positions are equal within floating tolerance
func (p Position) Equals(other Position) bool {
	return math.Abs(p.X-other.X) < positionEpsilon &&
		math.Abs(p.Y-other.Y) < positionEpsilon
}

// Dimensions is a width/height pair
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewDimensions creates dimensions from width/height
func NewDimensions(width, height float64) Dimensions {
	return Dimensions{Width: width, Height: height}
}

// Square creates dimensions with equal sides
func Square(size float64) Dimensions {
	return Dimensions{Width: size, Height: size}
}

// IsZero reports whether both sides are zero
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// Rect is an axis-aligned rectangle in world space
type Rect struct {
	Position   Position   `json:"position"`
	Dimensions Dimensions `json:"dimensions"`
}

// NewRect creates a rectangle from origin and size
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Position:   Position{X: x, Y: y},
		Dimensions: Dimensions{Width: width, Height: height},
	}
}

// RectFromCenter creates a rectangle centered on the given point
func RectFromCenter(center Position, dims Dimensions) Rect {
	return Rect{
		Position: Position{
			X: center.X - dims.Width/2,
			Y: center.Y - dims.Height/2,
		},
		Dimensions: dims,
	}
}

// Center returns the center point of the rectangle
func (r Rect) Center() Position {
	return Position{
		X: r.Position.X + r.Dimensions.Width/2,
		Y: r.Position.Y + r.Dimensions.Height/2,
	}
}

// Contains checks whether the point lies inside the rectangle (inclusive)
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Position.X &&
		p.X <= r.Position.X+r.Dimensions.Width &&
		p.Y >= r.Position.Y &&
		p.Y <= r.Position.Y+r.Dimensions.Height
}

// Intersects checks whether two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return r.Position.X < other.Position.X+other.Dimensions.Width &&
		r.Position.X+r.Dimensions.Width > other.Position.X &&
		r.Position.Y < other.Position.Y+other.Dimensions.Height &&
		r.Position.Y+r.Dimensions.Height > other.Position.Y
}

// Pad grows the rectangle by the given amount on every side
func (r Rect) Pad(amount float64) Rect {
	return Rect{
		Position: Position{
			X: r.Position.X - amount,
			Y: r.Position.Y - amount,
		},
		Dimensions: Dimensions{
			Width:  r.Dimensions.Width + amount*2,
			Height: r.Dimensions.Height + amount*2,
		},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
