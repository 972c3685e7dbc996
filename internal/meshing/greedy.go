package meshing

import (
	"voxfade/internal/profiling"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz + rgba + cutoff)
const VertexStride = 11

// OpaqueCutoff marks a vertex whose surface has no alpha test
const OpaqueCutoff float32 = -1

// Quad is an axis-aligned rectangle of merged block faces sharing one block
// type and facing. Min and Max agree on the normal axis.
type Quad struct {
	Min, Max mgl32.Vec3
	Face     world.BlockFace
	Type     world.BlockType
}

// Normal returns the outward normal of the quad
func (q Quad) Normal() mgl32.Vec3 {
	return q.Face.Normal()
}

// Corners returns the four corners counter-clockwise as seen from the side
// the normal points to.
func (q Quad) Corners() [4]mgl32.Vec3 {
	a, u, v := faceAxes(q.Face)
	corner := func(cu, cv float32) mgl32.Vec3 {
		var p mgl32.Vec3
		p[a] = q.Min[a]
		p[u] = cu
		p[v] = cv
		return p
	}
	u0, u1 := q.Min[u], q.Max[u]
	v0, v1 := q.Min[v], q.Max[v]
	c := [4]mgl32.Vec3{corner(u0, v0), corner(u1, v0), corner(u1, v1), corner(u0, v1)}
	if world.FaceNormals[q.Face][a] < 0 {
		c[1], c[3] = c[3], c[1]
	}
	return c
}

// faceAxes returns the normal axis and the two in-plane axes, ordered so that
// u x v points along +a.
func faceAxes(f world.BlockFace) (a, u, v int) {
	n := world.FaceNormals[f]
	for i := 0; i < 3; i++ {
		if n[i] != 0 {
			a = i
		}
	}
	return a, (a + 1) % 3, (a + 2) % 3
}

// FaceVisible reports whether the face of the block at (x,y,z) pointing along
// face can be seen. Faces against air are visible, and so are faces against a
// cutout block of a different type.
func FaceVisible(w *world.World, x, y, z int, face world.BlockFace) bool {
	b := w.Get(x, y, z)
	if b == world.BlockTypeAir {
		return false
	}
	n := world.FaceNormals[face]
	nb := w.Get(x+n[0], y+n[1], z+n[2])
	if nb == world.BlockTypeAir {
		return true
	}
	return nb != b && world.GetSurface(nb).Cutout
}

// BuildQuads greedy-meshes every visible face of the world. The six face
// directions are meshed concurrently.
func BuildQuads(w *world.World) []Quad {
	defer profiling.Track("meshing.BuildQuads")()

	var perFace [6][]Quad
	var g errgroup.Group
	for f := range perFace {
		face := world.BlockFace(f)
		g.Go(func() error {
			perFace[face] = buildGreedyForDirection(w, face)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, qs := range perFace {
		total += len(qs)
	}
	quads := make([]Quad, 0, total)
	for _, qs := range perFace {
		quads = append(quads, qs...)
	}
	return quads
}

// buildGreedyForDirection performs 2D greedy meshing for one face direction,
// layer by layer along the normal axis. Adjacent faces merge only when their
// block types match.
func buildGreedyForDirection(w *world.World, face world.BlockFace) []Quad {
	a, u, v := faceAxes(face)
	n := world.FaceNormals[face]
	lo, hi := w.Bounds()
	su, sv := hi[u]-lo[u], hi[v]-lo[v]

	var quads []Quad
	mask := make([]world.BlockType, su*sv)
	var pos [3]int

	for layer := lo[a]; layer < hi[a]; layer++ {
		pos[a] = layer
		for j := 0; j < sv; j++ {
			for i := 0; i < su; i++ {
				pos[u], pos[v] = lo[u]+i, lo[v]+j
				mask[j*su+i] = world.BlockTypeAir
				if FaceVisible(w, pos[0], pos[1], pos[2], face) {
					mask[j*su+i] = w.Get(pos[0], pos[1], pos[2])
				}
			}
		}

		plane := float32(layer)
		if n[a] > 0 {
			plane = float32(layer + 1)
		}

		for j := 0; j < sv; j++ {
			for i := 0; i < su; {
				bt := mask[j*su+i]
				if bt == world.BlockTypeAir {
					i++
					continue
				}
				// width along u
				width := 1
				for i+width < su && mask[j*su+i+width] == bt {
					width++
				}
				// height along v
				height := 1
			grow:
				for j+height < sv {
					for k := i; k < i+width; k++ {
						if mask[(j+height)*su+k] != bt {
							break grow
						}
					}
					height++
				}

				var q Quad
				q.Face, q.Type = face, bt
				q.Min[a], q.Max[a] = plane, plane
				q.Min[u], q.Max[u] = float32(lo[u]+i), float32(lo[u]+i+width)
				q.Min[v], q.Max[v] = float32(lo[v]+j), float32(lo[v]+j+height)
				quads = append(quads, q)

				for jj := j; jj < j+height; jj++ {
					for ii := i; ii < i+width; ii++ {
						mask[jj*su+ii] = world.BlockTypeAir
					}
				}
				i += width
			}
		}
	}
	return quads
}

// Vertices expands quads into an interleaved triangle list (pos, normal, rgba,
// cutoff), two counter-clockwise triangles per quad.
func Vertices(quads []Quad) []float32 {
	out := make([]float32, 0, len(quads)*6*VertexStride)
	for _, q := range quads {
		c := q.Corners()
		nrm := q.Normal()
		surf := world.GetSurface(q.Type)
		col := surf.Color
		cutoff := OpaqueCutoff
		if surf.Cutout {
			cutoff = surf.Cutoff
		}
		for _, idx := range [6]int{0, 1, 2, 2, 3, 0} {
			p := c[idx]
			out = append(out,
				p[0], p[1], p[2],
				nrm[0], nrm[1], nrm[2],
				col[0], col[1], col[2], col[3],
				cutoff,
			)
		}
	}
	return out
}
