package occlusion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Alpha returns the occlusion alpha for a world position: 1 is fully opaque,
// p.MinAlpha is the most transparent value reachable. Geometry at or below the
// height threshold above the player is never faded, and a MinAlpha outside
// [0,1] or a negative softness disables the fade.
func Alpha(worldPos mgl32.Vec3, p *Params) float32 {
	threshold := p.PlayerPosition.Y() + p.HeightThreshold
	if worldPos.Y() <= threshold {
		return 1
	}
	// Malformed tuning turns the fade off rather than being clamped into range.
	if p.FalloffSoftness < 0 || !(p.MinAlpha >= 0 && p.MinAlpha <= 1) {
		return 1
	}

	dist := SightlineDistance(worldPos, p.PlayerPosition, p.CameraPosition)
	// A non-positive radius can never be reached, which disables the fade.
	if !(dist < p.OcclusionRadius) {
		return 1
	}

	soft := smoothstep(p.OcclusionRadius-EdgeSoftness, p.OcclusionRadius, dist)
	height := smoothstep(threshold, threshold+p.FalloffSoftness, worldPos.Y())

	base := mix(p.MinAlpha, 1, soft)
	return mix(1, base, height)
}

// SightlineDistance is the ground-plane distance from pos to the infinite line
// through camera along the horizontal part of the camera->player direction.
// When that direction is (nearly) vertical the planar distance to the camera
// is returned instead.
func SightlineDistance(pos, player, camera mgl32.Vec3) float32 {
	rx := pos.X() - camera.X()
	rz := pos.Z() - camera.Z()

	d := player.Sub(camera)
	l := d.Len()
	if l < VerticalEpsilon {
		return hypot(rx, rz)
	}
	hx, hz := d.X()/l, d.Z()/l
	hl := hypot(hx, hz)
	if hl < VerticalEpsilon {
		return hypot(rx, rz)
	}
	hx, hz = hx/hl, hz/hl

	// |r x h| in 2D with h unit length
	return float32(math.Abs(float64(rx*hz - rz*hx)))
}

func hypot(x, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + z*z)))
}

// smoothstep is the cubic Hermite ease between e0 and e1. An empty or
// inverted interval collapses to a step at e0.
func smoothstep(e0, e1, x float32) float32 {
	if !(e1 > e0) {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := mgl32.Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}
