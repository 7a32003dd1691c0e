package flight

import "math"

// HitRecord is the interpolated first crossing of the target face plane.
type HitRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Time       float64 `json:"time"`       // s since release
	FaceOffset float64 `json:"faceOffset"` // m along the face from its base
	Lateral    float64 `json:"lateral"`    // m, equals Z
	Inside     bool    `json:"inside"`     // within the face extents
}

// DetectHit scans consecutive samples for the first sign change of the
// face-plane signed distance and linearly interpolates the crossing. A sample
// sitting exactly on the plane does not count as a crossing; the strict sign
// change on a later pair catches it. No sign change anywhere means the arrow
// never reached the plane and ok is false.
func DetectHit(tr Trajectory, target TargetGeometry) (HitRecord, bool) {
	for i := 0; i+1 < len(tr.Samples); i++ {
		a, b := tr.Samples[i], tr.Samples[i+1]
		fa := target.SignedDistance(a.X, a.Y)
		fb := target.SignedDistance(b.X, b.Y)
		if fa*fb >= 0 {
			continue
		}
		r := math.Abs(fa) / (math.Abs(fa) + math.Abs(fb))
		hit := HitRecord{
			X:    a.X + r*(b.X-a.X),
			Y:    a.Y + r*(b.Y-a.Y),
			Z:    a.Z + r*(b.Z-a.Z),
			Time: (float64(i) + r) * tr.Dt,
		}
		hit.FaceOffset = target.FaceOffset(hit.Y)
		hit.Lateral = hit.Z
		hit.Inside = hit.FaceOffset >= 0 && hit.FaceOffset <= target.Height &&
			math.Abs(hit.Z) <= target.Width/2
		return hit, true
	}
	return HitRecord{}, false
}
