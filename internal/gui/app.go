package gui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fieldtrace/internal/config"
	"github.com/san-kum/fieldtrace/internal/emfield"
	"github.com/san-kum/fieldtrace/internal/session"
	"github.com/san-kum/fieldtrace/internal/trace"
)

var (
	colBg       = rl.NewColor(10, 10, 10, 255)
	colText     = rl.NewColor(200, 200, 200, 255)
	colTextDim  = rl.NewColor(110, 110, 110, 255)
	colAccent   = rl.NewColor(0, 121, 241, 255)
	colWarn     = rl.NewColor(230, 170, 40, 255)
	colEntry    = rl.NewColor(80, 220, 120, 255)
	colGrid     = rl.NewColor(40, 40, 40, 255)
	colPositive = rl.NewColor(0, 121, 241, 255)
	colNegative = rl.NewColor(230, 41, 55, 255)
	colSelected = rl.NewColor(255, 255, 255, 255)
)

// App is the interactive raylib front end. All charge and knob state
// lives in the session; the app translates raw input into intents and
// retraces the frame whenever an intent lands.
type App struct {
	sess    *session.Session
	palette trace.Palette
	workers int

	frame *trace.Frame
	stale bool

	fly        FlyCamera
	camera     rl.Camera3D
	freeCamera bool
	firstLook  bool

	font rl.Font
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "fieldtrace")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config) *App {
	fc := cfg.FrameConfig()

	app := &App{
		sess:       session.NewFromScene(config.GetScene(cfg.Scene), fc.MaxSteps, fc.Resolution),
		palette:    fc.Palette,
		workers:    fc.Workers,
		stale:      true,
		freeCamera: true,
		firstLook:  true,
		fly:        FlyCamera{Position: emfield.Vec3{X: 15, Y: 15, Z: 15}},
		font:       loadFont(),
	}
	app.fly.AimAt(emfield.Vec3{})
	app.camera = rl.NewCamera3D(
		toRl(app.fly.Position),
		toRl(app.fly.Position.Add(app.fly.Forward())),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	return app
}

// Run opens the window and blocks until it closes.
func Run(cfg *config.Config) {
	initWindow()
	defer rl.CloseWindow()

	app := NewApp(cfg)
	rl.DisableCursor()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) && !app.sess.Entry.Active() {
			break
		}
		app.Update()
		app.Draw()
	}
}

func toRl(v emfield.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func fromRl(v rl.Vector3) emfield.Vec3 {
	return emfield.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (a *App) apply(in session.Intent) {
	a.sess.Apply(in)
	a.stale = true
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyF) {
		a.freeCamera = !a.freeCamera
		if a.freeCamera {
			rl.DisableCursor()
			a.firstLook = true
			a.apply(session.CancelEntry{})
		} else {
			rl.EnableCursor()
		}
	}

	if a.freeCamera {
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !rl.IsCursorHidden() {
			rl.DisableCursor()
			a.firstLook = true
		}
		if rl.IsCursorHidden() {
			a.updateFlyCamera()
		}
	} else {
		a.updateEditing()
	}

	if a.sess.Entry.Active() {
		a.updateEntry()
	}

	a.camera.Position = toRl(a.fly.Position)
	a.camera.Target = toRl(a.fly.Position.Add(a.fly.Forward()))

	if a.stale {
		a.retrace()
	}
}

func (a *App) updateFlyCamera() {
	delta := rl.GetMouseDelta()
	if a.firstLook {
		// Swallow the cursor jump from DisableCursor.
		delta = rl.Vector2{}
		a.firstLook = false
	}
	a.fly.Look(float64(delta.X), float64(delta.Y))

	var move emfield.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(a.fly.Forward())
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(a.fly.Forward())
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(a.fly.Right())
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(a.fly.Right())
	}
	if rl.IsKeyDown(rl.KeySpace) {
		move.Y += 1
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		move.Y -= 1
	}
	a.fly.Move(move, float64(rl.GetFrameTime()))
}

// pickCharge returns the charge under the cursor within a 20px screen
// radius, mirroring the generous hit area a sphere of radius 0.25
// would be too small for.
func (a *App) pickCharge(mouse rl.Vector2) int {
	for i := 0; i < a.sess.Charges.Len(); i++ {
		c, _ := a.sess.Charges.At(i)
		screen := rl.GetWorldToScreen(toRl(c.Position), a.camera)
		if rl.CheckCollisionPointCircle(mouse, screen, 20.0) {
			return i
		}
	}
	return session.NoSelection
}

func (a *App) updateEditing() {
	if rl.IsKeyDown(rl.KeyUp) {
		a.apply(session.AdjustMaxSteps{Delta: 1})
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.apply(session.AdjustMaxSteps{Delta: -1})
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.apply(session.AdjustResolution{Delta: 1})
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.apply(session.AdjustResolution{Delta: -1})
	}

	mouse := rl.GetMousePosition()
	ray := rl.GetMouseRay(mouse, a.camera)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if idx := a.pickCharge(mouse); idx != session.NoSelection {
			a.apply(session.SelectCharge{Index: idx})
		} else if a.sess.Entry.Active() && !a.sess.Entry.Empty() {
			if pos, ok := GroundIntersection(fromRl(ray.Position), fromRl(ray.Direction)); ok {
				a.apply(session.ConfirmEntry{Pos: pos})
			}
		} else {
			a.apply(session.BeginEntry{})
		}
	}

	if a.sess.Selected != session.NoSelection {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			if pos, ok := GroundIntersection(fromRl(ray.Position), fromRl(ray.Direction)); ok {
				a.apply(session.DragSelected{Pos: pos})
			}
		} else {
			a.apply(session.ReleaseSelection{})
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if idx := a.pickCharge(mouse); idx != session.NoSelection {
			a.apply(session.DeleteCharge{Index: idx})
		}
	}
}

func (a *App) updateEntry() {
	for key := rl.GetCharPressed(); key > 0; key = rl.GetCharPressed() {
		if key < 128 {
			a.apply(session.EntryChar{Ch: byte(key)})
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		a.apply(session.EntryBackspace{})
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.apply(session.CancelEntry{})
	}
}

func (a *App) retrace() {
	o := trace.NewOrchestrator(trace.FrameConfig{
		MaxSteps:   a.sess.MaxSteps,
		Resolution: a.sess.Resolution,
		Palette:    a.palette,
		Workers:    a.workers,
	})
	frame, err := o.FrameParallel(context.Background(), a.sess.Charges.Snapshot())
	if err != nil {
		return
	}
	a.frame = frame
	a.stale = false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(a.camera)
	a.drawGrid()
	a.drawCharges()
	a.drawFieldLines()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}
