// Package services holds the stateless canvas algorithms: edge routing,
// keyboard navigation, minimap projection and automatic layout.
package services

import (
	"fmt"
	"math"
	"strconv"

	"flowcanvas-backend/domain/core/valueobjects"
)

const (
	// minBezierOffset keeps short edges from collapsing into straight lines
	minBezierOffset = 30.0
	// arrowSize is the length of the arrowhead triangle
	arrowSize = 8.0
)

// BezierPath computes a cubic bezier path command string from source to
// target: "M sx sy C c1x c1y, c2x c2y, tx ty". The path starts and ends
// exactly at the given points.
func BezierPath(source, target valueobjects.Position) string {
	c1, c2 := bezierControlPoints(source, target)
	return fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
		coord(source.X), coord(source.Y),
		coord(c1.X), coord(c1.Y),
		coord(c2.X), coord(c2.Y),
		coord(target.X), coord(target.Y),
	)
}

// bezierControlPoints returns the two inner control points of the edge curve.
// Downward edges get a vertical S-curve; upward edges (back-references) dip
// sideways first so the curve avoids intervening nodes in the common case.
func bezierControlPoints(source, target valueobjects.Position) (valueobjects.Position, valueobjects.Position) {
	dx := target.X - source.X
	dy := target.Y - source.Y
	offset := math.Max(0.3*(math.Abs(dx)+math.Abs(dy)), minBezierOffset)

	if target.Y >= source.Y {
		return valueobjects.NewPosition(source.X, source.Y+offset),
			valueobjects.NewPosition(target.X, target.Y-offset)
	}

	side := math.Max(offset, 0.5*math.Abs(dx))
	if dx < 0 {
		side = -side
	}
	return valueobjects.NewPosition(source.X+side, source.Y+offset),
		valueobjects.NewPosition(target.X-side, target.Y-offset)
}

// ArrowHead computes a small isosceles triangle path with its tip at target
// and its base perpendicular to the curve tangent at the target end.
func ArrowHead(source, target valueobjects.Position) string {
	_, c2 := bezierControlPoints(source, target)

	// Unit tangent at the target end points from the second control point
	// toward the target.
	tx := target.X - c2.X
	ty := target.Y - c2.Y
	length := math.Sqrt(tx*tx + ty*ty)
	if length == 0 {
		tx, ty = 0, 1
	} else {
		tx /= length
		ty /= length
	}

	baseX := target.X - tx*arrowSize
	baseY := target.Y - ty*arrowSize
	halfWidth := arrowSize * 0.5

	// Perpendicular to the tangent
	px, py := -ty, tx

	left := valueobjects.NewPosition(baseX+px*halfWidth, baseY+py*halfWidth)
	right := valueobjects.NewPosition(baseX-px*halfWidth, baseY-py*halfWidth)

	return fmt.Sprintf("M %s %s L %s %s L %s %s Z",
		coord(target.X), coord(target.Y),
		coord(left.X), coord(left.Y),
		coord(right.X), coord(right.Y),
	)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
