package game

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// CellsBetween walks the grid cells of size cellSize crossed by the segment start..end, in order.
// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L67
func CellsBetween(start, end mgl32.Vec3, cellSize float32) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		if cellSize <= 0 {
			return
		}
		start, end = start.Mul(1/cellSize), end.Mul(1/cellSize)

		current := cube.PosFromVec3(start)
		dirVec, ok := SafeNormalize(end.Sub(start))
		if !ok {
			yield(current)
			return
		}

		radius := start.Sub(end).Len()
		stepX := PHPSpaceshipOp(dirVec.X(), 0)
		stepY := PHPSpaceshipOp(dirVec.Y(), 0)
		stepZ := PHPSpaceshipOp(dirVec.Z(), 0)

		tMaxX := rayTraceDistanceToBoundary(start.X(), dirVec.X())
		tMaxY := rayTraceDistanceToBoundary(start.Y(), dirVec.Y())
		tMaxZ := rayTraceDistanceToBoundary(start.Z(), dirVec.Z())

		tDeltaX := float32(0)
		if dirVec.X() != 0 {
			tDeltaX = stepX / dirVec.X()
		}

		tDeltaY := float32(0)
		if dirVec.Y() != 0 {
			tDeltaY = stepY / dirVec.Y()
		}

		tDeltaZ := float32(0)
		if dirVec.Z() != 0 {
			tDeltaZ = stepZ / dirVec.Z()
		}

		for {
			if !yield(current) {
				return
			}

			if tMaxX < tMaxY && tMaxX < tMaxZ {
				if tMaxX > radius {
					return
				}
				current[0] += int(stepX)
				tMaxX += tDeltaX
			} else if tMaxY < tMaxZ {
				if tMaxY > radius {
					return
				}
				current[1] += int(stepY)
				tMaxY += tDeltaY
			} else {
				if tMaxZ > radius {
					return
				}
				current[2] += int(stepZ)
				tMaxZ += tDeltaZ
			}
		}
	}
}

// CellsWithin yields every cell of size cellSize overlapped by the box.
func CellsWithin(bb cube.BBox, cellSize float32) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		if cellSize <= 0 {
			return
		}
		min := cube.PosFromVec3(bb.Min().Mul(1 / cellSize))
		max := cube.PosFromVec3(bb.Max().Mul(1 / cellSize))
		for x := min[0]; x <= max[0]; x++ {
			for y := min[1]; y <= max[1]; y++ {
				for z := min[2]; z <= max[2]; z++ {
					if !yield(cube.Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// https://github.com/pmmp/Math/blob/stable/src/VoxelRayTrace.php#L134
func rayTraceDistanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}

	if ds < 0 {
		s = -s
		ds = -ds

		if math32.Floor(s) == s {
			return 0
		}
	}

	return (1 - (s - math32.Floor(s))) / ds
}
