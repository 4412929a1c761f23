// Package state holds the movement states of the player. Every state reads its tunables from the
// player's stats profile and its intent from the player's input source.
package state

import (
	"fmt"

	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
)

type base struct {
	fsm.Base
}

func (*base) Enter(*player.Player)                        {}
func (*base) Exit(*player.Player)                         {}
func (*base) OnContact(*player.Player, *physics.Collider) {}

// left reports whether an ability already moved p out of s during this step.
func left(p *player.Player, s fsm.State[*player.Player]) bool {
	return p.States().Current() != s
}

// land picks the grounded state that follows a fall.
func land(p *player.Player) {
	dir, _ := p.InputDirection()
	if dir.LenSqr() > 0 || p.Lateral().LenSqr() > 0 {
		p.States().ChangeTo(player.Walk)
		return
	}
	p.States().ChangeTo(player.Idle)
}

// constructors builds a fresh instance of every state.
var constructors = map[fsm.Variant]func() fsm.State[*player.Player]{
	player.Idle:            func() fsm.State[*player.Player] { return &Idle{} },
	player.Walk:            func() fsm.State[*player.Player] { return &Walk{} },
	player.Brake:           func() fsm.State[*player.Player] { return &Brake{} },
	player.Fall:            func() fsm.State[*player.Player] { return &Fall{} },
	player.Spin:            func() fsm.State[*player.Player] { return &Spin{} },
	player.Hurt:            func() fsm.State[*player.Player] { return &Hurt{} },
	player.Die:             func() fsm.State[*player.Player] { return &Die{} },
	player.Crouch:          func() fsm.State[*player.Player] { return &Crouch{} },
	player.Crawling:        func() fsm.State[*player.Player] { return &Crawling{} },
	player.Rolling:         func() fsm.State[*player.Player] { return &Rolling{} },
	player.RollCharge:      func() fsm.State[*player.Player] { return &RollCharge{} },
	player.Dash:            func() fsm.State[*player.Player] { return &Dash{} },
	player.Boosting:        func() fsm.State[*player.Player] { return &Boosting{} },
	player.WallDrag:        func() fsm.State[*player.Player] { return &WallDrag{} },
	player.WallRun:         func() fsm.State[*player.Player] { return &WallRun{} },
	player.PoleClimbing:    func() fsm.State[*player.Player] { return &PoleClimbing{} },
	player.LedgeHanging:    func() fsm.State[*player.Player] { return &LedgeHanging{} },
	player.LedgeClimbing:   func() fsm.State[*player.Player] { return &LedgeClimbing{} },
	player.Swim:            func() fsm.State[*player.Player] { return &Swim{} },
	player.AirDive:         func() fsm.State[*player.Player] { return &AirDive{} },
	player.Stomp:           func() fsm.State[*player.Player] { return &Stomp{} },
	player.Backflip:        func() fsm.State[*player.Player] { return &Backflip{} },
	player.Gliding:         func() fsm.State[*player.Player] { return &Gliding{} },
	player.RailGrind:       func() fsm.State[*player.Player] { return &RailGrind{} },
	player.HomingDash:      func() fsm.State[*player.Player] { return &HomingDash{} },
	player.HomingDashTrick: func() fsm.State[*player.Player] { return &HomingDashTrick{} },
}

// defaultOrder is the catalog of Default, Idle first.
var defaultOrder = []fsm.Variant{
	player.Idle, player.Walk, player.Brake, player.Fall, player.Spin, player.Hurt, player.Die,
	player.Crouch, player.Crawling, player.Rolling, player.RollCharge, player.Dash, player.Boosting,
	player.WallDrag, player.WallRun, player.PoleClimbing, player.LedgeHanging, player.LedgeClimbing,
	player.Swim, player.AirDive, player.Stomp, player.Backflip, player.Gliding, player.RailGrind,
	player.HomingDash, player.HomingDashTrick,
}

// Default returns a new catalog with every state, starting in Idle.
func Default() []fsm.State[*player.Player] {
	states := make([]fsm.State[*player.Player], 0, len(defaultOrder))
	for _, v := range defaultOrder {
		states = append(states, constructors[v]())
	}
	return states
}

// FromNames builds the catalog listed by names, in order. The first name is the initial state.
func FromNames(names ...string) ([]fsm.State[*player.Player], error) {
	states := make([]fsm.State[*player.Player], 0, len(names))
	for _, name := range names {
		v, err := player.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		ctor, ok := constructors[v]
		if !ok {
			return nil, fmt.Errorf("no state for variant %q", name)
		}
		states = append(states, ctor())
	}
	return states, nil
}
