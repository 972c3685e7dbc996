package world

import "math"

// SplitMix64 style lattice hash, stable across runs for the same inputs
func hash2(x, z, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func lattice(x, z, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// quintic fade 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// valueNoise2D returns smooth value noise in [0,1]
func valueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	fx, fz := fade(x-x0), fade(z-z0)
	ix, iz := int64(x0), int64(z0)

	i0 := lerp(lattice(ix, iz, seed), lattice(ix+1, iz, seed), fx)
	i1 := lerp(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), fx)
	return lerp(i0, i1, fz)
}

// octaveNoise2D sums octaves of value noise, normalized back to [0,1]
func octaveNoise2D(x, z float64, seed int64, octaves int) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := range octaves {
		sum += valueNoise2D(x*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// NewHillScene returns rolling terrain with the demo house placed on a
// levelled pad at the origin. The same seed always produces the same world.
func NewHillScene(seed int64) Scene {
	const half = 24
	const maxHill = 6

	w := New(-half, -2, -half, 2*half, 32, 2*half)
	for z := -half; z < half; z++ {
		for x := -half; x < half; x++ {
			h := 0
			// Keep the pad around the house flat
			if x < -7 || x > 7 || z < -7 || z > 7 {
				n := octaveNoise2D(float64(x)*0.06, float64(z)*0.06, seed, 4)
				h = int(n * maxHill)
			}
			w.Fill(x, -2, z, x, h-1, z, BlockTypeDirt)
			top := BlockTypeGrass
			if h >= maxHill-1 {
				top = BlockTypeStone
			}
			w.Set(x, h, z, top)
		}
	}
	placeHouse(w)
	return Scene{World: w, Spawn: houseSpawn}
}
