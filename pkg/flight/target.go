package flight

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTargetGeometry is returned when a target face cannot be placed.
var ErrInvalidTargetGeometry = errors.New("invalid target geometry")

// TargetGeometry places the tilted target face relative to the launch point.
// Tilt is measured from vertical and leans the face away from the shooter, so
// the face x at height y is Distance + tan(Tilt)·(y − BaseOffset). Height runs
// along the tilted face, not the vertical.
type TargetGeometry struct {
	Distance   float64 `json:"distance"`   // m to the face base
	BaseOffset float64 `json:"baseOffset"` // m, face base height relative to launch ground
	Width      float64 `json:"width"`      // m
	Height     float64 `json:"height"`     // m along the face
	Tilt       float64 `json:"tilt"`       // rad from vertical
}

// NewTargetGeometry validates the placement and face extents.
func NewTargetGeometry(distance, baseOffset, width, height, tilt float64) (TargetGeometry, error) {
	if distance <= 0 {
		return TargetGeometry{}, fmt.Errorf("%w: distance %.3f m must be positive", ErrInvalidTargetGeometry, distance)
	}
	if width <= 0 || height <= 0 {
		return TargetGeometry{}, fmt.Errorf("%w: face extents %.3fx%.3f m must be positive", ErrInvalidTargetGeometry, width, height)
	}
	if math.Abs(tilt) >= math.Pi/2 {
		return TargetGeometry{}, fmt.Errorf("%w: tilt must stay below 90 degrees from vertical", ErrInvalidTargetGeometry)
	}
	return TargetGeometry{
		Distance:   distance,
		BaseOffset: baseOffset,
		Width:      width,
		Height:     height,
		Tilt:       tilt,
	}, nil
}

// ArcTargetGeometry places the face on a circular arc of the given radius, the
// traditional way range markers are laid out: the horizontal distance follows
// from the base offset. Offsets at or beyond the radius have no horizontal
// solution and are rejected before any simulation runs.
func ArcTargetGeometry(radius, baseOffset, width, height, tilt float64) (TargetGeometry, error) {
	if math.Abs(baseOffset) >= radius {
		return TargetGeometry{}, fmt.Errorf("%w: base offset %.3f m outside arc radius %.3f m", ErrInvalidTargetGeometry, baseOffset, radius)
	}
	return NewTargetGeometry(math.Sqrt(radius*radius-baseOffset*baseOffset), baseOffset, width, height, tilt)
}

// SignedDistance is negative while the point is short of the face plane and
// positive once past it.
func (t TargetGeometry) SignedDistance(x, y float64) float64 {
	return x - (t.Distance + math.Tan(t.Tilt)*(y-t.BaseOffset))
}

// FaceOffset returns the height of a point along the tilted face, measured
// from the face base.
func (t TargetGeometry) FaceOffset(y float64) float64 {
	return (y - t.BaseOffset) / math.Cos(t.Tilt)
}

// defined reports whether the face has real extents; the zero geometry
// disables hit detection.
func (t TargetGeometry) defined() bool {
	return t.Width > 0 && t.Height > 0
}
