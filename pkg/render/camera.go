package render

import (
	"math"
	"time"
)

// Camera tracks the view center. An AnimateTo call starts a one-shot eased
// move; a second call before the first finishes retargets from wherever the
// camera currently is, so rapid re-selection never snaps or queues.
type Camera struct {
	x, y float64

	anim *cameraAnimation
	now  func() time.Time
}

type cameraAnimation struct {
	fromX, fromY float64
	toX, toY     float64
	start        time.Time
	duration     time.Duration
}

// NewCamera returns a camera centered on the origin.
func NewCamera() Camera {
	return Camera{now: time.Now}
}

// SetClock overrides the camera's clock. Tests use it to step through an
// animation deterministically.
func (c *Camera) SetClock(now func() time.Time) {
	c.now = now
}

// Center returns the current view center, advancing any in-flight animation.
func (c *Camera) Center() (float64, float64) {
	c.step()
	return c.x, c.y
}

// Animating reports whether a camera move is still in flight.
func (c *Camera) Animating() bool {
	c.step()
	return c.anim != nil
}

// JumpTo recenters immediately and cancels any in-flight animation.
func (c *Camera) JumpTo(x, y float64) {
	c.anim = nil
	c.x, c.y = x, y
}

// AnimateTo starts a move toward (x, y) over d. Non-positive durations jump.
func (c *Camera) AnimateTo(x, y float64, d time.Duration) {
	if d <= 0 {
		c.JumpTo(x, y)
		return
	}
	c.step()
	c.anim = &cameraAnimation{
		fromX: c.x, fromY: c.y,
		toX: x, toY: y,
		start:    c.now(),
		duration: d,
	}
}

// step advances the camera along the active animation, clearing it once the
// duration has elapsed.
func (c *Camera) step() {
	if c.anim == nil {
		return
	}
	elapsed := c.now().Sub(c.anim.start)
	if elapsed >= c.anim.duration {
		c.x, c.y = c.anim.toX, c.anim.toY
		c.anim = nil
		return
	}
	t := easeInOut(float64(elapsed) / float64(c.anim.duration))
	c.x = c.anim.fromX + (c.anim.toX-c.anim.fromX)*t
	c.y = c.anim.fromY + (c.anim.toY-c.anim.fromY)*t
}

// easeInOut is a cosine ease: slow start, slow finish.
func easeInOut(t float64) float64 {
	return (1 - math.Cos(t*math.Pi)) / 2
}
