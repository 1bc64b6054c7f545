package valueobjects

// Transform is a screen-space translation plus uniform scale applied to
// world space.
type Transform struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// NewTransform creates a transform from translation and zoom
func NewTransform(x, y, zoom float64) Transform {
	return Transform{X: x, Y: y, Zoom: zoom}
}

// IdentityTransform returns the default transform (no pan, zoom 1)
func IdentityTransform() Transform {
	return Transform{X: 0, Y: 0, Zoom: 1}
}
