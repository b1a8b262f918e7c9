package scene

import (
	"time"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
)

// prop pairs a renderer handle with the position and opacity last sent to it.
// The scene never reads state back from the renderer, so tweens start from here.
type prop struct {
	handle  render.Handle
	pos     core.Vec3
	opacity float64
	removed bool
	fader   *anim.Tween // Opacity tween in flight, if any
}

func newProp(r render.Renderer, spec render.Spec, pos core.Vec3, opacity float64) *prop {
	return &prop{
		handle:  r.Create(spec, pos, opacity),
		pos:     pos,
		opacity: opacity,
	}
}

func (p *prop) setX(x float64) {
	p.pos.X = x
	p.sync()
}

func (p *prop) setY(y float64) {
	p.pos.Y = y
	p.sync()
}

func (p *prop) setZ(z float64) {
	p.pos.Z = z
	p.sync()
}

func (p *prop) sync() {
	if !p.removed {
		p.handle.Move(p.pos)
	}
}

func (p *prop) fade(opacity float64) {
	p.opacity = opacity
	if !p.removed {
		p.handle.Fade(opacity)
	}
}

// fadeTo replaces any fade in flight with a tween from the current opacity.
func (p *prop) fadeTo(sched *anim.Scheduler, opacity float64, d time.Duration) *anim.Tween {
	p.stopFade()
	p.fader = sched.Create(p.opacity, opacity, d, 0).Tick(p.fade)
	return p.fader
}

func (p *prop) stopFade() {
	if p.fader != nil {
		p.fader.Stop()
		p.fader = nil
	}
}

func (p *prop) remove() {
	if p.removed {
		return
	}
	p.stopFade()
	p.removed = true
	p.handle.Remove()
}
