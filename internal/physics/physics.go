// Package physics provides distance and movement helpers shared by the core and its frontends.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// HorizontalLength returns the length of (x, z), the distance to the vertical axis.
func HorizontalLength(x, z float64) float64 {
	return math.Hypot(x, z)
}

// MoveTowardsOrigin moves (x, z) straight toward (0, 0) by at most step.
// When step covers the remaining distance the result is exactly the origin,
// so the point never overshoots.
func MoveTowardsOrigin(x, z, step float64) (float64, float64) {
	if step <= 0 {
		return x, z
	}
	dist := HorizontalLength(x, z)
	if dist <= step {
		return 0, 0
	}
	scale := (dist - step) / dist
	return x * scale, z * scale
}
