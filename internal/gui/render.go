package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) drawGrid() {
	slices := 100
	half := float32(slices) / 2

	for i := 0; i <= slices; i++ {
		pos := -half + float32(i)
		rl.DrawLine3D(rl.NewVector3(pos, 0, -half), rl.NewVector3(pos, 0, half), colGrid)
		rl.DrawLine3D(rl.NewVector3(-half, 0, pos), rl.NewVector3(half, 0, pos), colGrid)
	}
}

func (a *App) drawCharges() {
	for i := 0; i < a.sess.Charges.Len(); i++ {
		c, _ := a.sess.Charges.At(i)

		col := colPositive
		if c.Value < 0 {
			col = colNegative
		}
		if i == a.sess.Selected {
			col = colSelected
		}

		pos := toRl(c.Position)
		rl.DrawSphere(pos, 0.25, col)
		rl.DrawSphereWires(pos, 0.35, 8, 8, rl.Fade(col, 0.5))
	}
}

// drawFieldLines renders the traced segments with additive blending;
// overlapping lines brighten instead of occluding.
func (a *App) drawFieldLines() {
	if a.frame == nil {
		return
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, seg := range a.frame.Segments {
		col := rl.NewColor(seg.Color.R, seg.Color.G, seg.Color.B, seg.Color.A)
		rl.DrawLine3D(toRl(seg.Start), toRl(seg.End), col)
	}
	rl.EndBlendMode()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawHUD() {
	a.drawChargeLabels()

	rl.DrawRectangle(10, 10, 330, 330, rl.Fade(rl.Black, 0.8))
	rl.DrawRectangleLines(10, 10, 330, 330, rl.DarkGray)

	y := 20
	a.drawText("fieldtrace", 20, y, 28, colAccent)
	y += 44

	mode := "FLY  [F] to edit"
	if !a.freeCamera {
		mode = "EDIT  [F] to fly"
	}
	a.drawText(mode, 20, y, 18, colText)
	y += 34

	a.drawText("L-Click: place / drag", 20, y, 16, colTextDim)
	y += 26
	a.drawText("R-Click: delete", 20, y, 16, colTextDim)
	y += 26
	a.drawText("Arrows: length / density", 20, y, 16, colTextDim)
	y += 40

	a.drawText(fmt.Sprintf("steps      %d", a.sess.MaxSteps), 20, y, 18, colText)
	y += 28
	a.drawText(fmt.Sprintf("density    %d", a.sess.Resolution), 20, y, 18, colText)
	y += 28
	a.drawText(fmt.Sprintf("charges    %d / %d", a.sess.Charges.Len(), a.sess.Charges.Capacity()), 20, y, 18, colText)
	y += 28

	if a.frame != nil {
		a.drawText(fmt.Sprintf("segments   %d", a.frame.Stats.Segments), 20, y, 18, colTextDim)
		y += 28
	}

	if a.sess.Entry.Active() {
		a.drawText("value:", 20, y, 22, colEntry)
		a.drawText(a.sess.Entry.Text()+"_", 110, y, 22, colEntry)
	} else if a.sess.Charges.CountPositive() == 0 && a.sess.Charges.Len() > 0 {
		a.drawText("no sources, nothing to trace", 20, y, 16, colWarn)
	}

	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, 690, 14, colTextDim)
}

// drawChargeLabels floats each charge's magnitude above it in screen
// space.
func (a *App) drawChargeLabels() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())

	for i := 0; i < a.sess.Charges.Len(); i++ {
		c, _ := a.sess.Charges.At(i)
		pos := rl.GetWorldToScreen(toRl(c.Position), a.camera)
		if pos.X <= 0 || pos.X >= w || pos.Y <= 0 || pos.Y >= h {
			continue
		}
		text := fmt.Sprintf("%.1f", c.Value)
		tw := rl.MeasureTextEx(a.font, text, 18, 1).X
		a.drawText(text, int(pos.X-tw/2), int(pos.Y)-30, 18, colEntry)
	}
}
