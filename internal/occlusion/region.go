package occlusion

import "github.com/go-gl/mathgl/mgl32"

// Contains reports whether worldPos is inside the region's horizontal
// footprint and above its floor. There is no upper bound: everything above
// the floor of an interior, roof included, counts as inside.
func (r Region) Contains(worldPos mgl32.Vec3) bool {
	if !r.Active {
		return false
	}
	x, y, z := worldPos.X(), worldPos.Y(), worldPos.Z()
	return x > r.Min.X()+RegionEpsilon && x < r.Max.X()-RegionEpsilon &&
		z > r.Min.Z()+RegionEpsilon && z < r.Max.Z()-RegionEpsilon &&
		y > r.Min.Y()+RegionEpsilon
}

// RegionDiscard is the discard predicate shared by the prepass and the color
// pass. Both passes must call it before doing anything else with a fragment,
// otherwise depth and color disagree about which fragments exist.
func RegionDiscard(worldPos mgl32.Vec3, p *Params) bool {
	return p.Mode.UsesRegion() && p.Region.Contains(worldPos)
}
