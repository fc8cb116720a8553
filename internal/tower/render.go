package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/crazy-tower/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlatformChar = '▬'
	PowerUpChar  = '★'
)

const (
	minScreenW = 30
	minScreenH = 12
)

// view maps world coordinates into the bordered playfield.
type view struct {
	x0, y0 int // Top-left inner cell
	w, h   int // Inner size in cells
	top    float64
	worldW float64
	viewH  float64
}

func (v view) col(x float64) int {
	return v.x0 + int(math.Floor(x/v.worldW*float64(v.w)))
}

func (v view) row(y float64) int {
	return v.y0 + int(math.Floor((y-v.top)/v.viewH*float64(v.h)))
}

func (v view) inside(col, row int) bool {
	return col >= v.x0 && col < v.x0+v.w && row >= v.y0 && row < v.y0+v.h
}

// span returns the cell range covered by [lo, hi) world x, at least one cell.
func (v view) span(lo, hi float64) (int, int) {
	a, b := v.col(lo), v.col(hi)
	if b <= a {
		b = a + 1
	}
	return a, b
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.screenTooSmall = dst.Width() < minScreenW || dst.Height() < minScreenH
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}
	if g.run == nil {
		return
	}

	dst.DrawBox(core.NewRect(0, 1, dst.Width(), dst.Height()-1), core.ColorGray)
	v := view{
		x0:     1,
		y0:     2,
		w:      dst.Width() - 2,
		h:      dst.Height() - 3,
		top:    g.camera.Top(),
		worldW: g.cfg.Camera.WorldWidth,
		viewH:  g.camera.ViewHeight(),
	}

	g.renderPlatforms(dst, v)
	g.renderPowerUps(dst, v)
	g.renderPlayer(dst, v)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD draws score, height and best on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := g.run.HUD()

	middle := fmt.Sprintf("Height: %d", int(math.Round(g.maxHeight)))
	if g.boostLeft > 0 {
		middle += fmt.Sprintf(" %c%.1fs", PowerUpChar, g.boostLeft)
	}
	dst.DrawTextCentered(0, middle, core.ColorDefault)

	dst.DrawTextColored(1, 0, hud.Score, core.ColorWhite)
	dst.DrawTextColored(dst.Width()-len(hud.HighScore)-1, 0, hud.HighScore, core.ColorYellow)
}

func (g *Game) renderPlatforms(dst *core.Screen, v view) {
	half := g.cfg.Field.PlatformWidth / 2
	for _, p := range g.field.Platforms() {
		row := v.row(p.Y)
		from, to := v.span(p.X-half, p.X+half)
		for col := from; col < to; col++ {
			if v.inside(col, row) {
				dst.SetColored(col, row, PlatformChar, core.ColorBrown)
			}
		}
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, v view) {
	for _, id := range g.world.PowerUps() {
		box, ok := g.world.PowerUpBox(id)
		if !ok {
			continue
		}
		cx, cy := box.Center()
		col, row := v.col(cx), v.row(cy)
		if v.inside(col, row) {
			dst.SetColored(col, row, PowerUpChar, core.ColorBrightYellow)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v view) {
	box := g.world.PlayerBox()
	color := core.ColorCyan
	if g.boostLeft > 0 {
		color = core.ColorOrange
	}
	if g.run.IsOver() {
		color = core.ColorRed
	}

	from, to := v.span(box.X, box.Right())
	top, bottom := v.row(box.Y), v.row(box.Bottom())
	if bottom <= top {
		bottom = top + 1
	}
	for row := top; row < bottom; row++ {
		for col := from; col < to; col++ {
			if v.inside(col, row) {
				dst.SetColored(col, row, PlayerChar, color)
			}
		}
	}
}

// renderOverlay draws the pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.run.IsOver():
		hud := g.run.HUD()
		color := core.ColorWhite
		if hud.NewHighScore {
			color = core.ColorBrightYellow
		}
		boxH := len(hud.GameOver) + 2
		rest := (dst.Height() - boxH) / 2
		y := int(math.Round(float64(-boxH) + float64(g.bannerPos)*float64(rest+boxH)))
		drawCenteredBox(dst, y, hud.GameOver, color)

	case g.paused:
		lines := []string{"PAUSED", "Press P to resume"}
		drawCenteredBox(dst, (dst.Height()-len(lines)-2)/2, lines, core.ColorWhite)
	}
}

// drawCenteredBox draws a horizontally centered message box with its top
// edge at row y.
func drawCenteredBox(dst *core.Screen, y int, lines []string, color core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2

	r := core.NewRect(boxX, y, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, color)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, y+1+i, l, color)
	}
}
