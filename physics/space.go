package physics

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/game"
	"github.com/sasha-s/go-deadlock"
)

// Provider answers the spatial queries movement states rely on. Degenerate inputs such as a zero
// direction yield a negative result, never a panic.
type Provider interface {
	Raycast(origin, dir mgl32.Vec3, maxDist float32, f Filter) (Hit, bool)
	SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32, f Filter) (Hit, bool)
	OverlapSphere(center mgl32.Vec3, radius float32, f Filter) []*Collider
}

// DefaultCellSize is the broadphase grid cell size used when none is configured.
const DefaultCellSize = float32(8)

// maxCellsPerCollider bounds how many grid cells one collider may occupy. Bigger colliders, such
// as level floors, are kept in a separate list that every query scans.
const maxCellsPerCollider = 512

// Space is an in-memory collider set with a uniform grid broadphase. It is safe for concurrent
// queries; mutations take the write lock.
type Space struct {
	cellSize float32

	colliders map[uuid.UUID]*Collider
	cells     map[cube.Pos][]*Collider
	large     map[uuid.UUID]*Collider

	deadlock.RWMutex
}

// NewSpace returns an empty space using the given broadphase cell size.
func NewSpace(cellSize float32) *Space {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Space{
		cellSize:  cellSize,
		colliders: make(map[uuid.UUID]*Collider),
		cells:     make(map[cube.Pos][]*Collider),
		large:     make(map[uuid.UUID]*Collider),
	}
}

// Add registers a collider. Adding a collider twice replaces its previous registration.
func (s *Space) Add(c *Collider) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.colliders[c.ID]; ok {
		s.unlink(c)
	}
	s.colliders[c.ID] = c
	s.link(c)
}

// Remove unregisters the collider with the given id.
func (s *Space) Remove(id uuid.UUID) {
	s.Lock()
	defer s.Unlock()

	if c, ok := s.colliders[id]; ok {
		s.unlink(c)
		delete(s.colliders, id)
	}
}

// MoveSphere moves a sphere collider to a new center.
func (s *Space) MoveSphere(c *Collider, center mgl32.Vec3) {
	s.Lock()
	defer s.Unlock()

	s.unlink(c)
	c.Center = center
	s.link(c)
}

// Collider returns the collider registered under id.
func (s *Space) Collider(id uuid.UUID) (*Collider, bool) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.colliders[id]
	return c, ok
}

// Len returns the number of registered colliders.
func (s *Space) Len() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.colliders)
}

func (s *Space) cellCount(bb cube.BBox) int {
	min := cube.PosFromVec3(bb.Min().Mul(1 / s.cellSize))
	max := cube.PosFromVec3(bb.Max().Mul(1 / s.cellSize))
	return (max[0] - min[0] + 1) * (max[1] - min[1] + 1) * (max[2] - min[2] + 1)
}

func (s *Space) link(c *Collider) {
	bb := c.Bounds()
	if s.cellCount(bb) > maxCellsPerCollider {
		s.large[c.ID] = c
		return
	}
	for pos := range game.CellsWithin(bb, s.cellSize) {
		s.cells[pos] = append(s.cells[pos], c)
	}
}

func (s *Space) unlink(c *Collider) {
	if _, ok := s.large[c.ID]; ok {
		delete(s.large, c.ID)
		return
	}
	for pos := range game.CellsWithin(c.Bounds(), s.cellSize) {
		list := s.cells[pos]
		for i, other := range list {
			if other.ID == c.ID {
				list[i] = list[len(list)-1]
				list = list[:len(list)-1]
				break
			}
		}
		if len(list) == 0 {
			delete(s.cells, pos)
		} else {
			s.cells[pos] = list
		}
	}
}

// candidatesAlongRay collects colliders in the cells crossed by the segment. Callers hold the read lock.
func (s *Space) candidatesAlongRay(q *query, start, end mgl32.Vec3) {
	for pos := range game.CellsBetween(start, end, s.cellSize) {
		q.addAll(s.cells[pos])
	}
	q.addLarge(s.large)
}

// candidatesWithin collects colliders in the cells overlapped by bb. Callers hold the read lock.
func (s *Space) candidatesWithin(q *query, bb cube.BBox) {
	if s.cellCount(bb) > maxCellsPerCollider {
		for _, c := range s.colliders {
			q.add(c)
		}
		return
	}
	for pos := range game.CellsWithin(bb, s.cellSize) {
		q.addAll(s.cells[pos])
	}
	q.addLarge(s.large)
}
