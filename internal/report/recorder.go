// internal/report/recorder.go
package report

import (
	"sort"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

// Side is what one faction did over a match.
type Side struct {
	Faction    string             `yaml:"faction"`
	Spawned    map[string]int     `yaml:"spawned"`
	Lost       int                `yaml:"lost"`
	Kills      int                `yaml:"kills"`
	Level      int                `yaml:"level"`
	Money      float64            `yaml:"money"`
	BaseHealth float64            `yaml:"baseHealth"`
	PolicyTime map[string]float64 `yaml:"policyTime,omitempty"` // ms spent in each policy
	FirstSpawn float64            `yaml:"firstSpawn"`           // ms, -1 if nothing spawned
}

// Summary is the outcome of one match.
type Summary struct {
	MatchID  string  `yaml:"match"`
	Seed     int64   `yaml:"seed"`
	Ticks    int     `yaml:"ticks"`
	Finished bool    `yaml:"finished"`
	Winner   string  `yaml:"winner,omitempty"`
	Duration float64 `yaml:"duration"` // ms of game time
	Sides    [2]Side `yaml:"sides"`
}

// Recorder collects per-side tallies while a match runs.
type Recorder struct {
	game    *app.Game
	seed    int64
	ticks   int
	sides   [2]Side
	elapsed float64
}

func NewRecorder(g *app.Game, seed int64) *Recorder {
	r := &Recorder{game: g, seed: seed}
	for _, f := range types.Factions {
		r.sides[f] = Side{
			Faction:    f.String(),
			Spawned:    make(map[string]int),
			PolicyTime: make(map[string]float64),
			FirstSpawn: -1,
		}
	}
	g.EventDispatcher.Subscribe(event.UnitSpawned, r)
	g.EventDispatcher.Subscribe(event.UnitDied, r)
	return r
}

func (r *Recorder) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.UnitSpawnedData:
		s := &r.sides[data.Faction]
		s.Spawned[data.Type]++
		if s.FirstSpawn < 0 {
			s.FirstSpawn = r.game.GameTime()
		}
	case event.UnitDiedData:
		r.sides[data.Faction].Lost++
	}
}

// Step advances the match one frame of wall time and attributes the game
// time it took to the policy each computer side held.
func (r *Recorder) Step(deltaTime float64) {
	before := r.game.GameTime()
	r.game.Update(deltaTime)
	r.ticks++
	spent := r.game.GameTime() - before
	for _, f := range types.Factions {
		if c := r.game.Controllers[f]; c != nil {
			r.sides[f].PolicyTime[c.Policy().String()] += spent
		}
	}
}

// Run steps until the match ends or maxTicks frames have passed.
func (r *Recorder) Run(maxTicks int, deltaTime float64) Summary {
	for i := 0; i < maxTicks && !r.game.Over(); i++ {
		r.Step(deltaTime)
	}
	return r.Summary()
}

func (r *Recorder) Summary() Summary {
	g := r.game
	s := Summary{
		MatchID:  g.MatchID,
		Seed:     r.seed,
		Ticks:    r.ticks,
		Finished: g.Over(),
		Duration: g.GameTime(),
	}
	if s.Finished {
		s.Winner = g.Winner().String()
	}
	for _, f := range types.Factions {
		side := r.sides[f]
		side.Spawned = copyMap(side.Spawned)
		side.PolicyTime = copyMap(side.PolicyTime)
		if p := g.Player(f); p != nil {
			side.Kills = p.Kills
			side.Level = p.Level
			side.Money = p.Money
		}
		if b := g.ECS.Bases[f]; b != nil {
			side.BaseHealth = b.Health
		}
		if len(side.PolicyTime) == 0 {
			side.PolicyTime = nil
		}
		s.Sides[f] = side
	}
	return s
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
