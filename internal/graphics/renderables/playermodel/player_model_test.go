package playermodel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoxVerticesWinding(t *testing.T) {
	lo := mgl32.Vec3{-0.3, 0, -0.3}
	hi := mgl32.Vec3{0.3, 1.8, 0.3}
	v := BoxVertices(lo, hi)
	if len(v) != 36*6 {
		t.Fatalf("Expected %d floats, got %d", 36*6, len(v))
	}
	center := lo.Add(hi).Mul(0.5)
	for tri := 0; tri < 12; tri++ {
		var p [3]mgl32.Vec3
		for k := 0; k < 3; k++ {
			o := (tri*3 + k) * 6
			p[k] = mgl32.Vec3{v[o], v[o+1], v[o+2]}
		}
		o := tri * 3 * 6
		n := mgl32.Vec3{v[o+3], v[o+4], v[o+5]}
		cross := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		if cross.Dot(n) <= 0 {
			t.Errorf("Triangle %d is not counter-clockwise around %v", tri, n)
		}
		if p[0].Sub(center).Dot(n) <= 0 {
			t.Errorf("Triangle %d normal %v points inward", tri, n)
		}
		for _, q := range p {
			for a := 0; a < 3; a++ {
				if q[a] < lo[a] || q[a] > hi[a] {
					t.Errorf("Vertex %v outside the box", q)
				}
			}
		}
	}
}
