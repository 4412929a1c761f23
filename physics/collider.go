package physics

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
)

// Layer is a single collision layer bit.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerWall
	LayerEntity
	LayerEnemy
	LayerRail
	LayerWater
	LayerHazard
)

var layerNames = map[string]Layer{
	"default": LayerDefault,
	"ground":  LayerGround,
	"wall":    LayerWall,
	"entity":  LayerEntity,
	"enemy":   LayerEnemy,
	"rail":    LayerRail,
	"water":   LayerWater,
	"hazard":  LayerHazard,
}

// ParseLayer returns the layer with the given level file name. An empty name is LayerDefault.
func ParseLayer(name string) (Layer, bool) {
	if name == "" {
		return LayerDefault, true
	}
	l, ok := layerNames[name]
	return l, ok
}

// LayerMask selects layers in a query. The zero mask selects every layer.
type LayerMask uint32

// AllLayers selects every layer.
const AllLayers = ^LayerMask(0)

// Mask builds a mask from layers.
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= LayerMask(l)
	}
	return m
}

// Has reports whether l is part of m.
func (m LayerMask) Has(l Layer) bool {
	return m == 0 || m&LayerMask(l) != 0
}

// Without removes the layers in o from m.
func (m LayerMask) Without(o LayerMask) LayerMask {
	if m == 0 {
		m = AllLayers
	}
	return m &^ o
}

// Tag classifies what a collider represents for contact handling.
type Tag string

const (
	TagNone         Tag = ""
	TagPlayer       Tag = "player"
	TagEnemy        Tag = "enemy"
	TagRail         Tag = "rail"
	TagSpring       Tag = "spring"
	TagWater        Tag = "water"
	TagPole         Tag = "pole"
	TagHazard       Tag = "hazard"
	TagBooster      Tag = "booster"
	TagGravityField Tag = "gravity-field"
)

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	// ShapeVolume colliders are oriented trigger regions such as water.
	ShapeVolume
)

// Collider is a static or kinematic shape registered in a Space.
type Collider struct {
	ID   uuid.UUID
	Name string
	Kind ShapeKind

	// Box is the world box of ShapeBox colliders.
	Box cube.BBox
	// Center and Radius describe ShapeSphere colliders.
	Center mgl32.Vec3
	Radius float32
	// Volume describes ShapeVolume colliders.
	Volume geometry.Volume

	Layer   Layer
	Tag     Tag
	Trigger bool
	// Owner points back at whatever the collider belongs to, an entity or a pole for example.
	Owner any
}

// NewBox returns a solid box collider.
func NewBox(name string, bb cube.BBox, layer Layer, tag Tag) *Collider {
	return &Collider{ID: uuid.New(), Name: name, Kind: ShapeBox, Box: bb, Layer: layer, Tag: tag}
}

// NewSphere returns a solid sphere collider.
func NewSphere(name string, center mgl32.Vec3, radius float32, layer Layer, tag Tag) *Collider {
	return &Collider{ID: uuid.New(), Name: name, Kind: ShapeSphere, Center: center, Radius: radius, Layer: layer, Tag: tag}
}

// NewVolume returns a trigger collider shaped by v.
func NewVolume(name string, v geometry.Volume, layer Layer, tag Tag) *Collider {
	return &Collider{ID: uuid.New(), Name: name, Kind: ShapeVolume, Volume: v, Layer: layer, Tag: tag, Trigger: true}
}

// Bounds returns the world AABB of the collider.
func (c *Collider) Bounds() cube.BBox {
	switch c.Kind {
	case ShapeSphere:
		return game.AABBAround(c.Center, mgl32.Vec3{c.Radius, c.Radius, c.Radius})
	case ShapeVolume:
		return c.Volume.Bounds()
	}
	return c.Box
}

// Position returns the collider's center.
func (c *Collider) Position() mgl32.Vec3 {
	switch c.Kind {
	case ShapeSphere:
		return c.Center
	case ShapeVolume:
		return c.Volume.WorldCenter()
	}
	return game.AABBCenter(c.Box)
}

// BoundsRadius is the length of the collider's bounds extents.
func (c *Collider) BoundsRadius() float32 {
	return game.AABBExtents(c.Bounds()).Len()
}

// Contains reports whether p is inside the collider.
func (c *Collider) Contains(p mgl32.Vec3) bool {
	switch c.Kind {
	case ShapeSphere:
		return p.Sub(c.Center).Len() <= c.Radius
	case ShapeVolume:
		return c.Volume.Contains(p)
	}
	return game.AABBContains(c.Box, p)
}

// ClosestPoint returns the point of the collider closest to p.
func (c *Collider) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	switch c.Kind {
	case ShapeSphere:
		d, ok := game.SafeNormalize(p.Sub(c.Center))
		if !ok || p.Sub(c.Center).Len() <= c.Radius {
			return p
		}
		return c.Center.Add(d.Mul(c.Radius))
	case ShapeVolume:
		if c.Volume.Contains(p) {
			return p
		}
		return game.AABBClosestPoint(c.Volume.Bounds(), p)
	}
	return game.AABBClosestPoint(c.Box, p)
}

// Hit is the result of a ray or sphere cast.
type Hit struct {
	Collider *Collider
	// Point is the contact point on the hit collider.
	Point mgl32.Vec3
	// Normal is the surface normal at Point.
	Normal mgl32.Vec3
	// Distance is how far the ray or sphere travelled before touching.
	Distance float32
}

// Layer returns the hit collider's layer.
func (h Hit) Layer() Layer {
	if h.Collider == nil {
		return 0
	}
	return h.Collider.Layer
}

// Tag returns the hit collider's tag.
func (h Hit) Tag() Tag {
	if h.Collider == nil {
		return TagNone
	}
	return h.Collider.Tag
}

// Filter narrows a query down to certain colliders.
type Filter struct {
	Layers         LayerMask
	IgnoreTriggers bool
	// Ignore excludes one collider, usually the querying entity's own.
	Ignore uuid.UUID
}

func (f Filter) accepts(c *Collider) bool {
	if f.IgnoreTriggers && c.Trigger {
		return false
	}
	if f.Ignore != uuid.Nil && c.ID == f.Ignore {
		return false
	}
	return f.Layers.Has(c.Layer)
}
