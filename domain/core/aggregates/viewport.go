package aggregates

import (
	"math"

	"flowcanvas-backend/domain/core/valueobjects"
)

const (
	// DefaultMinZoom is the lowest zoom level allowed by default
	DefaultMinZoom = 0.1
	// DefaultMaxZoom is the highest zoom level allowed by default
	DefaultMaxZoom = 4.0

	// zoomEpsilon skips zoom updates too small to be visible, which keeps
	// rapid wheel events from jittering the transform.
	zoomEpsilon = 1e-4
)

// Viewport owns the pan/zoom transform of a canvas and its bounds.
// ScreenToWorld and WorldToScreen are the only places the transform math
// lives; every drag, connection and minimap computation is built on them so
// the focal-point zoom contract holds everywhere consistently.
type Viewport struct {
	Transform   valueobjects.Transform `json:"transform"`
	MinZoom     float64                `json:"minZoom"`
	MaxZoom     float64                `json:"maxZoom"`
	PanEnabled  bool                   `json:"panEnabled"`
	ZoomEnabled bool                   `json:"zoomEnabled"`
}

// NewViewport creates a viewport with default zoom bounds
func NewViewport() *Viewport {
	return &Viewport{
		Transform:   valueobjects.IdentityTransform(),
		MinZoom:     DefaultMinZoom,
		MaxZoom:     DefaultMaxZoom,
		PanEnabled:  true,
		ZoomEnabled: true,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (v *Viewport) ScreenToWorld(p valueobjects.Position) valueobjects.Position {
	return valueobjects.Position{
		X: (p.X - v.Transform.X) / v.Transform.Zoom,
		Y: (p.Y - v.Transform.Y) / v.Transform.Zoom,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (v *Viewport) WorldToScreen(p valueobjects.Position) valueobjects.Position {
	return valueobjects.Position{
		X: p.X*v.Transform.Zoom + v.Transform.X,
		Y: p.Y*v.Transform.Zoom + v.Transform.Y,
	}
}

// Pan adds a screen-space delta to the transform. No-op when panning is
// disabled.
func (v *Viewport) Pan(dx, dy float64) {
	if !v.PanEnabled {
		return
	}
	v.Transform.X += dx
	v.Transform.Y += dy
}

// ZoomToward zooms by deltaFactor keeping the world point under screenPoint
// fixed on screen. Updates below zoomEpsilon are skipped. No-op when zooming
// is disabled.
func (v *Viewport) ZoomToward(screenPoint valueobjects.Position, deltaFactor float64) {
	if !v.ZoomEnabled {
		return
	}

	newZoom := v.clampZoom(v.Transform.Zoom * (1 + deltaFactor))
	if math.Abs(newZoom-v.Transform.Zoom) < zoomEpsilon {
		return
	}

	focal := v.ScreenToWorld(screenPoint)
	v.Transform.Zoom = newZoom
	v.Transform.X = screenPoint.X - focal.X*newZoom
	v.Transform.Y = screenPoint.Y - focal.Y*newZoom
}

// ZoomIn zooms in by a factor, centered at the transform origin
func (v *Viewport) ZoomIn(factor float64) {
	if !v.ZoomEnabled {
		return
	}
	v.Transform.Zoom = v.clampZoom(v.Transform.Zoom * factor)
}

// ZoomOut zooms out by a factor, centered at the transform origin
func (v *Viewport) ZoomOut(factor float64) {
	if !v.ZoomEnabled {
		return
	}
	v.Transform.Zoom = v.clampZoom(v.Transform.Zoom / factor)
}

// Reset restores the identity transform
func (v *Viewport) Reset() {
	v.Transform = valueobjects.IdentityTransform()
}

// CenterOn pans the viewport so worldPoint maps to the visual center of a
// canvas of the given size
func (v *Viewport) CenterOn(worldPoint valueobjects.Position, canvasSize valueobjects.Dimensions) {
	v.Transform.X = canvasSize.Width/2 - worldPoint.X*v.Transform.Zoom
	v.Transform.Y = canvasSize.Height/2 - worldPoint.Y*v.Transform.Zoom
}

// FitToBounds adjusts the transform so the given world bounds fill the canvas
// with the requested padding, clamped to the zoom range
func (v *Viewport) FitToBounds(bounds valueobjects.Rect, padding float64, canvasSize valueobjects.Dimensions) {
	if bounds.Dimensions.Width <= 0 || bounds.Dimensions.Height <= 0 {
		return
	}

	scaleX := (canvasSize.Width - padding*2) / bounds.Dimensions.Width
	scaleY := (canvasSize.Height - padding*2) / bounds.Dimensions.Height
	zoom := v.clampZoom(math.Min(scaleX, scaleY))

	center := bounds.Center()
	v.Transform = valueobjects.Transform{
		X:    canvasSize.Width/2 - center.X*zoom,
		Y:    canvasSize.Height/2 - center.Y*zoom,
		Zoom: zoom,
	}
}

// VisibleWorldRect returns the world-space rectangle currently visible on a
// canvas of the given size
func (v *Viewport) VisibleWorldRect(canvasSize valueobjects.Dimensions) valueobjects.Rect {
	origin := v.ScreenToWorld(valueobjects.ZeroPosition())
	return valueobjects.Rect{
		Position: origin,
		Dimensions: valueobjects.Dimensions{
			Width:  canvasSize.Width / v.Transform.Zoom,
			Height: canvasSize.Height / v.Transform.Zoom,
		},
	}
}

func (v *Viewport) clampZoom(zoom float64) float64 {
	return math.Max(v.MinZoom, math.Min(v.MaxZoom, zoom))
}
