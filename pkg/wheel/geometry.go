package wheel

import "math"

// roundHalfUp rounds to the nearest integer with halves rounded toward
// positive infinity, so -2.5 rounds to -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// normalize maps a to [0, 360).
func normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Geometry holds the angular layout of a wheel with n segments drawn by a
// painter whose pointer sits at origin degrees in its own frame.
type Geometry struct {
	N      int
	Origin float64
}

// Sector is the angle spanned by one segment.
func (g Geometry) Sector() float64 { return 360 / float64(g.N) }

// HalfSector is half of Sector.
func (g Geometry) HalfSector() float64 { return 180 / float64(g.N) }

// StartAngle is the rotation applied when a cycle starts.
func (g Geometry) StartAngle() float64 { return g.Origin - g.HalfSector() }

// PrizeAngle is the raw landing angle for index before full turns and the
// half-sector centering are added. Negative indexes land on the boundary
// between the last and first segments.
func (g Geometry) PrizeAngle(index int) float64 {
	if index < 0 {
		return 360 + g.Origin + g.HalfSector()
	}
	return 360 - float64(index)*g.Sector() + g.Origin
}

// Target is the absolute rotation at which a wheel currently at angle
// comes to rest on index, after the half-sector centering is applied.
// At least two full turns separate angle from the result.
func (g Geometry) Target(angle float64, index int) float64 {
	turn := 360 - math.Mod(angle, 360) + angle
	return g.PrizeAngle(index) + turn + 720
}

// RestAngle is the angle at which the wheel rests after stopping on index,
// reduced to [0, 360).
func (g Geometry) RestAngle(index int) float64 {
	return normalize(g.PrizeAngle(index) - g.HalfSector())
}

// SegmentAt returns the index of the segment under the pointer when the
// wheel is rotated by angle.
func (g Geometry) SegmentAt(angle float64) int {
	if g.N <= 0 {
		return -1
	}
	// Segment i spans [i*sector, (i+1)*sector) in the painter's frame;
	// rotating by angle moves the pointer to origin - angle.
	rel := normalize(g.Origin - angle)
	i := int(math.Floor(rel/g.Sector() + 1e-9))
	return i % g.N
}
