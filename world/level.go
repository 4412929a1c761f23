package world

import (
	"fmt"
	"os"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/enemy"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
	"github.com/oomph-ac/motion/gravity"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/spline"
	"gopkg.in/yaml.v3"
)

// defaultRailSegments is how many collider boxes approximate each span between two rail knots.
const defaultRailSegments = 8

// Level describes the static content of a world and where players spawn.
type Level struct {
	Name  string `yaml:"name"`
	Spawn Spawn  `yaml:"spawn"`
	// KillHeight kills players falling below it when set.
	KillHeight *float32 `yaml:"kill_height"`

	Colliders []ColliderDef `yaml:"colliders"`
	Rails     []RailDef     `yaml:"rails"`
	Fields    []FieldDef    `yaml:"fields"`
	Poles     []PoleDef     `yaml:"poles"`
	Water     []WaterDef    `yaml:"water"`
	Enemies   []EnemyDef    `yaml:"enemies"`
	Boosters  []BoosterDef  `yaml:"boosters"`
}

// Spawn is the respawn point of the players of a level.
type Spawn struct {
	Position mgl32.Vec3 `yaml:"position"`
	// Yaw is the heading in degrees around world up. Zero faces +Z.
	Yaw float32 `yaml:"yaw"`
}

// Rotation returns the spawn orientation.
func (s Spawn) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(s.Yaw), game.WorldUp)
}

type ColliderDef struct {
	Name string `yaml:"name"`
	// Shape is box or sphere.
	Shape   string     `yaml:"shape"`
	Min     mgl32.Vec3 `yaml:"min"`
	Max     mgl32.Vec3 `yaml:"max"`
	Center  mgl32.Vec3 `yaml:"center"`
	Radius  float32    `yaml:"radius"`
	Layer   string     `yaml:"layer"`
	Tag     string     `yaml:"tag"`
	Trigger bool       `yaml:"trigger"`
}

type KnotDef struct {
	Position mgl32.Vec3 `yaml:"position"`
	Up       mgl32.Vec3 `yaml:"up"`
}

type RailDef struct {
	Name   string  `yaml:"name"`
	Closed bool    `yaml:"closed"`
	Radius float32 `yaml:"radius"`
	// Segments is the number of collider boxes per knot span.
	Segments int       `yaml:"segments"`
	Knots    []KnotDef `yaml:"knots"`
}

// VolumeDef is a trigger volume placed by the frame of its owner.
type VolumeDef struct {
	Kind   string     `yaml:"kind"`
	Center mgl32.Vec3 `yaml:"center"`
	Size   mgl32.Vec3 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	Height float32    `yaml:"height"`
}

type FieldDef struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"`
	// Rail names the rail followed by spline fields.
	Rail string `yaml:"rail"`

	Position mgl32.Vec3 `yaml:"position"`
	// Rotation is in degrees around X, Y and Z.
	Rotation mgl32.Vec3 `yaml:"rotation"`
	Scale    mgl32.Vec3 `yaml:"scale"`

	Center mgl32.Vec3 `yaml:"center"`
	Size   mgl32.Vec3 `yaml:"size"`
	Height float32    `yaml:"height"`
	Radius float32    `yaml:"radius"`

	Priority              int   `yaml:"priority"`
	Capped                bool  `yaml:"capped"`
	Inverted              bool  `yaml:"inverted"`
	RotateVelocity        *bool `yaml:"rotate_velocity"`
	DetachOnExit          bool  `yaml:"detach_on_exit"`
	ResetRotationOnDetach bool  `yaml:"reset_rotation_on_detach"`
	InvertXAxis           bool  `yaml:"invert_x_axis"`
	InvertZAxis           bool  `yaml:"invert_z_axis"`

	Trigger VolumeDef `yaml:"trigger"`
}

type PoleDef struct {
	Name   string     `yaml:"name"`
	Base   mgl32.Vec3 `yaml:"base"`
	Height float32    `yaml:"height"`
	Radius float32    `yaml:"radius"`
}

type WaterDef struct {
	Name   string     `yaml:"name"`
	Center mgl32.Vec3 `yaml:"center"`
	Size   mgl32.Vec3 `yaml:"size"`
}

type EnemyDef struct {
	Name     string     `yaml:"name"`
	Position mgl32.Vec3 `yaml:"position"`
	Health   int        `yaml:"health"`
	Damage   int        `yaml:"damage"`
}

// BoosterDef is a trigger box launching players that enter it.
type BoosterDef struct {
	Name   string     `yaml:"name"`
	Center mgl32.Vec3 `yaml:"center"`
	Size   mgl32.Vec3 `yaml:"size"`

	Forward mgl32.Vec3 `yaml:"forward"`
	Up      mgl32.Vec3 `yaml:"up"`
	Upward  bool       `yaml:"upward"`
	// Angle tilts a forward boost up, in degrees.
	Angle float32 `yaml:"angle"`

	Force       float32 `yaml:"force"`
	InputLock   float32 `yaml:"input_lock"`
	CountAsJump bool    `yaml:"count_as_jump"`
	BoostState  bool    `yaml:"boost_state"`
	// Reposition moves players to Center plus Offset before launching them.
	Reposition bool       `yaml:"reposition"`
	Offset     mgl32.Vec3 `yaml:"offset"`
}

// LoadLevel reads a YAML level from path.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading level: %w", err)
	}
	return DecodeLevel(data)
}

// DecodeLevel decodes a YAML level.
func DecodeLevel(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("error decoding level: %w", err)
	}
	return &l, nil
}

// built is what a level adds to a world.
type built struct {
	colliders []*physics.Collider
	rails     map[string]*spline.Container
	railOf    map[*physics.Collider]*spline.Container
	fields    []*gravity.Field
	enemies   []enemy.Config
}

// build turns l into colliders, rails, fields and enemy configs without touching any world.
func (l *Level) build() (*built, error) {
	b := &built{
		rails:  make(map[string]*spline.Container),
		railOf: make(map[*physics.Collider]*spline.Container),
	}
	for i, def := range l.Colliders {
		c, err := def.collider()
		if err != nil {
			return nil, fmt.Errorf("collider %d (%q): %w", i, def.Name, err)
		}
		b.colliders = append(b.colliders, c)
	}
	for i, def := range l.Rails {
		container, colliders, err := def.rail()
		if err != nil {
			return nil, fmt.Errorf("rail %d (%q): %w", i, def.Name, err)
		}
		b.rails[def.Name] = container
		for _, c := range colliders {
			b.railOf[c] = container
		}
		b.colliders = append(b.colliders, colliders...)
	}
	for i, def := range l.Fields {
		f, err := def.field(b.rails)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, def.Name, err)
		}
		b.fields = append(b.fields, f)
	}
	for _, def := range l.Poles {
		b.colliders = append(b.colliders, def.collider())
	}
	for _, def := range l.Water {
		b.colliders = append(b.colliders, physics.NewVolume(def.Name, geometry.Volume{
			Kind:  geometry.VolumeBox,
			Frame: geometry.At(def.Center),
			Size:  def.Size,
		}, physics.LayerWater, physics.TagWater))
	}
	for i, def := range l.Boosters {
		c, err := def.collider()
		if err != nil {
			return nil, fmt.Errorf("booster %d (%q): %w", i, def.Name, err)
		}
		b.colliders = append(b.colliders, c)
	}
	for _, def := range l.Enemies {
		conf := enemy.DefaultConfig()
		if def.Name != "" {
			conf.Entity.Name = def.Name
		}
		conf.Entity.Position = def.Position
		if def.Health > 0 {
			conf.Health = def.Health
		}
		if def.Damage > 0 {
			conf.Damage = def.Damage
		}
		b.enemies = append(b.enemies, conf)
	}
	return b, nil
}

func (s ColliderDef) collider() (*physics.Collider, error) {
	layer, ok := physics.ParseLayer(s.Layer)
	if !ok {
		return nil, oerror.New("unknown layer %q", s.Layer)
	}
	var c *physics.Collider
	switch s.Shape {
	case "box", "":
		c = physics.NewBox(s.Name, cube.Box(s.Min[0], s.Min[1], s.Min[2], s.Max[0], s.Max[1], s.Max[2]), layer, physics.Tag(s.Tag))
	case "sphere":
		c = physics.NewSphere(s.Name, s.Center, s.Radius, layer, physics.Tag(s.Tag))
	default:
		return nil, fmt.Errorf("%w: %q", oerror.ErrUnknownTrigger, s.Shape)
	}
	c.Trigger = s.Trigger
	return c, nil
}

// rail builds the spline of s and the boxes that let the ground sweep find it.
func (s RailDef) rail() (*spline.Container, []*physics.Collider, error) {
	knots := make([]spline.Knot, len(s.Knots))
	for i, k := range s.Knots {
		knots[i] = spline.Knot{Position: k.Position, Up: k.Up}
	}
	sp, err := spline.New(s.Closed, knots...)
	if err != nil {
		return nil, nil, err
	}
	container := spline.NewContainer(s.Name, geometry.IdentityFrame(), sp)

	radius := s.Radius
	if radius <= 0 {
		radius = 0.1
	}
	per := s.Segments
	if per <= 0 {
		per = defaultRailSegments
	}
	spans := len(knots) - 1
	if s.Closed {
		spans = len(knots)
	}
	n := spans * per
	colliders := make([]*physics.Collider, 0, n)
	for i := range n {
		a := container.EvaluatePosition(float32(i) / float32(n))
		b := container.EvaluatePosition(float32(i+1) / float32(n))
		bb := game.AABBSwept(a, b, radius)
		colliders = append(colliders, physics.NewBox(fmt.Sprintf("%s#%d", s.Name, i), bb, physics.LayerRail, physics.TagRail))
	}
	return container, colliders, nil
}

func (s FieldDef) field(rails map[string]*spline.Container) (*gravity.Field, error) {
	shape, err := gravity.ParseShape(s.Shape)
	if err != nil {
		return nil, err
	}
	frame := geometry.At(s.Position)
	frame.Rotation = mgl32.AnglesToQuat(
		mgl32.DegToRad(s.Rotation[0]),
		mgl32.DegToRad(s.Rotation[1]),
		mgl32.DegToRad(s.Rotation[2]),
		mgl32.XYZ,
	)
	if s.Scale != (mgl32.Vec3{}) {
		frame.Scale = s.Scale
	}

	f := gravity.NewField(s.Name, shape, frame)
	f.LocalCenter = s.Center
	if s.Size != (mgl32.Vec3{}) {
		f.LocalSize = s.Size
	}
	if s.Height > 0 {
		f.LocalHeight = s.Height
	}
	if s.Radius > 0 {
		f.LocalRadius = s.Radius
	}
	f.Priority = s.Priority
	f.Capped = s.Capped
	f.Inverted = s.Inverted
	if s.RotateVelocity != nil {
		f.RotateVelocity = *s.RotateVelocity
	}
	f.DetachOnExit = s.DetachOnExit
	f.ResetRotationOnDetach = s.ResetRotationOnDetach
	f.InvertXAxis = s.InvertXAxis
	f.InvertZAxis = s.InvertZAxis

	if shape == gravity.Spline {
		rail, ok := rails[s.Rail]
		if !ok {
			return nil, oerror.New("spline field needs a known rail, got %q", s.Rail)
		}
		f.Rail = rail
	}

	kind, ok := geometry.ParseVolumeKind(s.Trigger.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", oerror.ErrUnknownTrigger, s.Trigger.Kind)
	}
	f.Trigger = geometry.Volume{
		Kind:   kind,
		Frame:  frame,
		Center: s.Trigger.Center,
		Size:   s.Trigger.Size,
		Radius: s.Trigger.Radius,
		Height: s.Trigger.Height,
	}
	return f, nil
}

// collider returns the trigger box around the pole that lets players grab it.
func (s PoleDef) collider() *physics.Collider {
	radius := s.Radius
	if radius <= 0 {
		radius = 0.1
	}
	pole := player.NewPole(s.Base, s.Height, radius)
	top := pole.Top()
	bb := cube.Box(s.Base[0]-radius, s.Base[1], s.Base[2]-radius, top[0]+radius, top[1], top[2]+radius)
	c := physics.NewBox(s.Name, bb, physics.LayerDefault, physics.TagPole)
	c.Trigger = true
	c.Owner = pole
	return c
}

// collider returns the trigger box of the booster.
func (d BoosterDef) collider() (*physics.Collider, error) {
	forward := d.Forward
	if forward == (mgl32.Vec3{}) {
		forward = game.WorldForward
	}
	if _, ok := game.SafeNormalize(forward); !ok {
		return nil, oerror.New("booster needs a forward direction")
	}
	booster := player.NewBooster(forward)
	if d.Up != (mgl32.Vec3{}) {
		booster.Up = d.Up
	}
	booster.Upward = d.Upward
	booster.Angle = mgl32.Clamp(d.Angle, 0, 90)
	if d.Force > 0 {
		booster.Force = d.Force
	}
	if d.InputLock > 0 {
		booster.InputLock = d.InputLock
	}
	booster.CountAsJump = d.CountAsJump
	booster.BoostState = d.BoostState
	booster.Reposition = d.Reposition
	booster.Position = d.Center.Add(d.Offset)

	size := d.Size
	if size == (mgl32.Vec3{}) {
		size = mgl32.Vec3{1, 1, 1}
	}
	c := physics.NewBox(d.Name, game.AABBAround(d.Center, size.Mul(0.5)), physics.LayerDefault, physics.TagBooster)
	c.Trigger = true
	c.Owner = booster
	return c, nil
}
