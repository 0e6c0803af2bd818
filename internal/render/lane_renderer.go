// internal/render/lane_renderer.go
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/types"
)

const (
	healthBarHeight = 4
	groundMargin    = 60
)

var (
	flashHitColor  = color.RGBA{255, 255, 255, 255}
	flashHealColor = color.RGBA{120, 255, 140, 255}
)

// LaneRenderer draws the lane, both bases, every unit and every projectile.
type LaneRenderer struct {
	ecs      *entity.ECS
	clips    *AnimationTracker
	flashes  *FlashTracker
	camera   Camera
	fontFace font.Face
}

func NewLaneRenderer(ecs *entity.ECS, clips *AnimationTracker, fontFace font.Face) *LaneRenderer {
	return &LaneRenderer{
		ecs:      ecs,
		clips:    clips,
		camera:   NewCamera(config.LaneLength, config.ScreenWidth, config.ScreenHeight, groundMargin),
		fontFace: fontFace,
	}
}

// SetFlashes makes struck bodies blink. Nil disables it.
func (r *LaneRenderer) SetFlashes(f *FlashTracker) {
	r.flashes = f
}

func (r *LaneRenderer) Camera() Camera {
	return r.camera
}

func (r *LaneRenderer) Draw(screen *ebiten.Image, gameTime float64) {
	screen.Fill(config.BackgroundColor)
	_, groundY := r.camera.ToScreen(0, config.GroundY)
	vector.DrawFilledRect(screen, 0, groundY, float32(config.ScreenWidth), groundMargin, config.GroundColor, false)

	for _, b := range r.ecs.Bases {
		if b != nil {
			r.drawBody(screen, b, gameTime)
		}
	}
	r.ecs.EachUnit(func(u *component.Unit) {
		r.drawBody(screen, u, gameTime)
	})
	r.ecs.EachProjectile(func(p *component.Projectile) {
		r.drawProjectile(screen, p, gameTime)
	})

	r.clips.Sweep(r.live)
	if r.flashes != nil {
		r.flashes.Sweep()
	}
}

func (r *LaneRenderer) live(id types.EntityID) bool {
	if u, ok := r.ecs.Unit(id); ok {
		return u.Active
	}
	alive := false
	r.ecs.EachProjectile(func(p *component.Projectile) {
		if p.ID == id {
			alive = true
		}
	})
	return alive
}

func (r *LaneRenderer) drawBody(screen *ebiten.Image, u *component.Unit, gameTime float64) {
	if !u.Active {
		return
	}
	bounds := u.Bounds()
	x, y := r.camera.ToScreen(bounds.X, bounds.Y)
	w, h := r.camera.Length(bounds.W), r.camera.Length(bounds.H)

	fill := config.FactionColors[u.Faction]
	if clip, ok := r.clips.Clip(u.ID); ok {
		switch clip.State {
		case component.StateAttacking.String(), component.StateShooting.String(), component.StateSupporting.String():
			// Pulse while acting.
			pulse := 0.75 + 0.25*math.Sin((gameTime-clip.Since)/120)
			fill = Fade(fill, pulse)
		case component.StateIdle.String():
			if !u.IsBase() {
				fill = DarkenColor(fill)
			}
		}
	}
	if _, slowed := u.Buff(component.BuffSlow); slowed {
		fill = DarkenColor(fill)
	}
	if r.flashes != nil {
		if f, ok := r.flashes.Flash(u.ID); ok {
			tint := flashHitColor
			if f.Heal {
				tint = flashHealColor
			}
			fill = Blend(fill, tint, f.Intensity(gameTime)*0.8)
		}
	}

	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	vector.StrokeRect(screen, x, y, w, h, float32(config.StrokeWidth), color.White, false)
	r.drawHealthBar(screen, x, y-healthBarHeight-2, w, u.HealthFraction())

	if u.IsBase() && r.fontFace != nil {
		label := u.Faction.String()
		bound := text.BoundString(r.fontFace, label)
		text.Draw(screen, label, r.fontFace, int(x+w/2)-bound.Dx()/2, int(y+h/2), config.TextLightColor)
	}
}

func (r *LaneRenderer) drawHealthBar(screen *ebiten.Image, x, y, w float32, fraction float64) {
	vector.DrawFilledRect(screen, x, y, w, healthBarHeight, config.HealthBackColor, false)
	if fraction > 0 {
		vector.DrawFilledRect(screen, x, y, w*float32(math.Min(fraction, 1)), healthBarHeight, config.HealthBarColor, false)
	}
}

func (r *LaneRenderer) drawProjectile(screen *ebiten.Image, p *component.Projectile, gameTime float64) {
	if !p.Active {
		return
	}
	x, y := r.camera.ToScreen(p.Pos.X, p.Pos.Y)
	radius := r.camera.Length(config.ProjectileRadius)
	c := config.ProjectileColor
	if clip, ok := r.clips.Clip(p.ID); ok && clip.State == "impact" {
		// Burst grows while the impact plays out.
		t := (gameTime - clip.Since) / config.ImpactDelay
		radius *= float32(1 + 2*math.Min(t, 1))
		c = Fade(c, 1-math.Min(t, 1)*0.7)
	}
	vector.DrawFilledCircle(screen, x, y, radius, c, true)
}
