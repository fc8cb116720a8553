package tower

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the vertical window onto the tower. It only ever moves up.
// When the player climbs past the follow line the camera eases toward its
// new position instead of snapping.
type Camera struct {
	top        float64
	anchor     float64 // Where the camera settles once the catch-up ends
	viewHeight float64
	offset     float64
	catchUp    float32

	lag *gween.Tween
}

// NewCamera creates a camera with its top edge at top.
func NewCamera(top, viewHeight, followOffset, catchUpSecs float64) *Camera {
	return &Camera{
		top:        top,
		anchor:     top,
		viewHeight: viewHeight,
		offset:     followOffset,
		catchUp:    float32(catchUpSecs),
	}
}

// Top returns the world y of the top edge.
func (c *Camera) Top() float64 {
	return c.top
}

// Bottom returns the world y of the bottom edge.
func (c *Camera) Bottom() float64 {
	return c.top + c.viewHeight
}

// ViewHeight returns the visible height in world units.
func (c *Camera) ViewHeight() float64 {
	return c.viewHeight
}

// Follow moves the camera toward playerY and reports whether the top edge
// changed.
func (c *Camera) Follow(dt, playerY float64) bool {
	if target := playerY - c.offset; target < c.anchor {
		c.anchor = target
		if c.catchUp > 0 {
			c.lag = gween.New(float32(c.top-c.anchor), 0, c.catchUp, ease.OutQuad)
		} else {
			c.lag = nil
		}
	}

	next := c.anchor
	if c.lag != nil {
		v, done := c.lag.Update(float32(dt))
		next = c.anchor + float64(v)
		if done {
			c.lag = nil
			next = c.anchor
		}
	}

	if next >= c.top {
		return false
	}
	c.top = next
	return true
}
