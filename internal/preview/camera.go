package preview

import (
	"math"

	"github.com/marciocamello/game-engine-ai-sub001/internal/mathutil"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
)

// Camera orients the fixed turntable view. Yaw spins the model around
// the vertical axis, pitch tilts it toward the viewer. A positive FOV
// switches from orthographic to perspective projection.
type Camera struct {
	Yaw   float64 // degrees
	Pitch float64 // degrees
	FOV   float64 // degrees, 0 renders orthographic
}

// DefaultCamera is the three-quarter view used for thumbnails.
func DefaultCamera() Camera {
	return Camera{Yaw: 30, Pitch: -20}
}

func (c Camera) rotation() mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(c.Pitch)),
		mathutil.RotY(mathutil.Deg2Rad(c.Yaw)),
	)
}

// project transforms vertices to screen coordinates. Returns px, py, pz
// slices (screen X, screen Y, depth); depth grows toward the viewer.
func (c Camera) project(verts []mesh.Vertex, rot mathutil.Mat3, center mathutil.Vec3, scale float64, renderSize int) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)

	half := float64(renderSize) / 2

	// Perspective setup: place the camera so the model's XY extent fills
	// the field of view, then scale X and Y by distance.
	usePersp := c.FOV > 0
	var camDist, zCenter float64
	if usePersp {
		halfFOV := mathutil.Deg2Rad(c.FOV / 2)

		zMin, zMax := math.Inf(1), math.Inf(-1)
		var xyMax float64
		for i := range verts {
			t := rot.MulVec3(vecOf(verts[i].Position))
			if t[2] < zMin {
				zMin = t[2]
			}
			if t[2] > zMax {
				zMax = t[2]
			}
			for k := 0; k < 2; k++ {
				if d := math.Abs(t[k] - center[k]); d > xyMax {
					xyMax = d
				}
			}
		}
		zCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		camDist = xyMax / math.Tan(halfFOV)
	}

	for i := range verts {
		t := rot.MulVec3(vecOf(verts[i].Position))

		if usePersp {
			depth := math.Max(camDist-(t[2]-zCenter), 0.1)
			factor := camDist / depth
			t[0] *= factor
			t[1] *= factor
		}

		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
