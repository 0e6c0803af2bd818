// internal/spectator/frame.go
package spectator

import (
	"github.com/vmihailenco/msgpack/v5"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

const (
	KindEvent    = "event"
	KindSnapshot = "snapshot"
)

// Frame is one message pushed to spectators.
type Frame struct {
	Kind     string         `msgpack:"kind"`
	GameTime float64        `msgpack:"t"`
	Event    string         `msgpack:"event,omitempty"`
	Data     interface{}    `msgpack:"data,omitempty"`
	Units    []UnitView     `msgpack:"units,omitempty"`
	Shots    []ShotView     `msgpack:"shots,omitempty"`
	Players  [2]*PlayerView `msgpack:"players,omitempty"`
}

type UnitView struct {
	ID      types.EntityID `msgpack:"id"`
	Type    string         `msgpack:"type"`
	Faction types.Faction  `msgpack:"f"`
	X       float64        `msgpack:"x"`
	Health  float64        `msgpack:"hp"`
	State   string         `msgpack:"state"`
}

type ShotView struct {
	Faction types.Faction `msgpack:"f"`
	X       float64       `msgpack:"x"`
	Y       float64       `msgpack:"y"`
}

type PlayerView struct {
	Money float64 `msgpack:"money"`
	Level int     `msgpack:"level"`
	Queue int     `msgpack:"queue"`
}

// EventFrame wraps a dispatched event.
func EventFrame(gameTime float64, e event.Event) Frame {
	return Frame{Kind: KindEvent, GameTime: gameTime, Event: string(e.Type), Data: e.Data}
}

// Snapshot captures every live unit, base and projectile.
func Snapshot(ecs *entity.ECS) Frame {
	f := Frame{Kind: KindSnapshot, GameTime: ecs.GameTime}
	addUnit := func(u *component.Unit) {
		if u == nil || !u.Active {
			return
		}
		f.Units = append(f.Units, UnitView{
			ID:      u.ID,
			Type:    u.Type,
			Faction: u.Faction,
			X:       u.Pos.X,
			Health:  u.Health,
			State:   u.State.String(),
		})
	}
	for _, b := range ecs.Bases {
		addUnit(b)
	}
	ecs.EachUnit(addUnit)
	ecs.EachProjectile(func(p *component.Projectile) {
		if p.Alive() {
			f.Shots = append(f.Shots, ShotView{Faction: p.Faction, X: p.Pos.X, Y: p.Pos.Y})
		}
	})
	for _, fac := range types.Factions {
		if p := ecs.Players[fac]; p != nil {
			f.Players[fac] = &PlayerView{Money: p.Money, Level: p.Level, Queue: p.Queue.Len()}
		}
	}
	return f
}

func Encode(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

func Decode(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
