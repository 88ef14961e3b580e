// Package gui shows a scenario run in a raylib window.
package gui

import (
	"fmt"
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/steersim/internal/audio"
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/viz"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // Barely visible grid
	ColWall    = rl.NewColor(200, 90, 90, 255)
	ColRay     = rl.NewColor(90, 160, 220, 160)
)

const (
	screenW = 1280
	screenH = 720
)

type App struct {
	Registry *scenario.Registry
	Config   *config.Config
	Run      *scenario.Run
	Scene    viz.Scene
	Frame    sim.Frame

	Camera     rl.Camera3D
	Running    bool
	Steps      int
	Trails     [][]rl.Vector3 // Ring buffer per agent
	ShowTrails bool
	Telemetry  []float64 // Mean speed history
	MaxHistory int
	Font       rl.Font
	Err        error

	Audio *audio.Sonifier
	log   log.Log
}

func initWindow(title string) {
	rl.InitWindow(screenW, screenH, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when present and falls back to the raylib
// default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the scenario of cfg. A window must be open.
func NewApp(reg *scenario.Registry, cfg *config.Config, l log.Log) (*App, error) {
	if l == nil {
		l = log.Nop()
	}
	a := &App{
		Registry:   reg,
		Config:     cfg,
		Font:       loadFont(),
		ShowTrails: true,
		MaxHistory: 240,
		log:        l,
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run opens the window and steps the scenario of cfg one tick per frame
// until the window is closed. withAudio adds the speed sonifier; a failing
// audio device is logged and skipped.
func Run(reg *scenario.Registry, cfg *config.Config, withAudio bool, l log.Log) error {
	initWindow("steersim :: " + cfg.Scenario)
	defer rl.CloseWindow()

	app, err := NewApp(reg, cfg, l)
	if err != nil {
		return err
	}
	if withAudio {
		s := audio.NewSonifier()
		if err := s.Start(); err != nil {
			app.log.Warn("audio disabled", log.Error(err))
		} else {
			app.Audio = s
			defer s.Stop()
		}
	}
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

func (a *App) reset() error {
	run, err := a.Registry.Build(a.Config.Clone())
	if err != nil {
		return err
	}
	a.Run = run
	a.Scene = viz.SceneOf(run)
	a.Frame = run.Runner.Snapshot()
	a.Steps = 0
	a.Trails = make([][]rl.Vector3, len(a.Frame.Agents))
	a.Telemetry = a.Telemetry[:0]
	a.Running = true
	a.Err = nil
	a.Camera = fitCamera(a.Scene, a.Frame)
	a.log.Info("gui run started", log.String("scenario", run.Name), log.Int("agents", len(a.Frame.Agents)))
	return nil
}

// fitCamera looks down -Z at the XY plane, far enough back to see the scene
// and the starting agents.
func fitCamera(scene viz.Scene, f sim.Frame) rl.Camera3D {
	pts := append(scene.Points(), viz.FramePoints(f)...)
	minX, minY, maxX, maxY := -5.0, -5.0, 5.0, 5.0
	if len(pts) > 0 {
		minX, minY, maxX, maxY = math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
		for _, p := range pts {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	cx, cy := float32((minX+maxX)/2), float32((minY+maxY)/2)
	halfH := math.Max((maxY-minY)/2, (maxX-minX)/2*screenH/screenW) + 3
	dist := float32(halfH / math.Tan(22.5*math.Pi/180))
	return rl.NewCamera3D(
		rl.NewVector3(cx, cy, dist),
		rl.NewVector3(cx, cy, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
}

// Update handles input and advances the run. It reports whether to quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		if err := a.reset(); err != nil {
			a.Err = err
		}
	case rl.IsKeyPressed(rl.KeyT):
		a.ShowTrails = !a.ShowTrails
	}

	if a.Running && a.Err == nil {
		a.step()
	}
	if a.Audio != nil {
		a.Audio.Update(a.meanSpeed(), a.Config.Limits.MaxLinearSpeed)
	}
	return false
}

func (a *App) step() {
	cfg := a.Run.SimConfig()
	if a.Steps >= cfg.Steps() {
		a.Running = false
		return
	}
	if err := a.Run.Runner.Step(cfg.Dt); err != nil {
		a.Err = err
		a.Running = false
		a.log.Error("gui run failed", log.Error(err))
		return
	}
	a.Steps++
	a.Frame = a.Run.Runner.Snapshot()

	for i, s := range a.Frame.Agents {
		if i >= len(a.Trails) {
			break
		}
		a.Trails[i] = append(a.Trails[i], toVec3(s.Position))
		if len(a.Trails[i]) > a.MaxHistory {
			a.Trails[i] = a.Trails[i][1:]
		}
	}
	a.Telemetry = append(a.Telemetry, a.meanSpeed())
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) meanSpeed() float64 {
	if len(a.Frame.Agents) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range a.Frame.Agents {
		sum += s.Speed()
	}
	return sum / float64(len(a.Frame.Agents))
}

func toVec3(p [3]float64) rl.Vector3 {
	return rl.NewVector3(float32(p[0]), float32(p[1]), float32(p[2]))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("steersim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Run.Name), 160, 34, 16, ColText)
	a.drawText(fmt.Sprintf("t=%.2fs  step %d/%d", a.Frame.Time, a.Steps, a.Run.SimConfig().Steps()), 30, 64, 16, ColText)

	a.DrawTelemetry()

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "FAILED", rl.Red
		a.drawText(a.Err.Error(), 30, 96, 14, rl.Red)
	case a.Steps >= a.Run.SimConfig().Steps():
		status, col = "DONE", ColAccent
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	metrics := a.Run.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	y := 130
	for _, name := range names {
		a.drawText(fmt.Sprintf("%-16s %.4f", name, metrics[name]), 30, y, 14, ColText)
		y += 20
	}

	a.drawText("[SPACE] PAUSE  [R] RESTART  [T] TRAILS  [Q] QUIT", 760, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)

	if a.Audio != nil && a.Audio.Active {
		a.drawText("AUDIO [ON]", 30, 650, 14, ColAccent)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 580
	width, height := 400, 60

	// The speed cap is the top of the graph.
	maxVal := a.Config.Limits.MaxLinearSpeed
	for _, v := range a.Telemetry {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		py := float32(rectY+height) - float32(val/maxVal)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("mean speed %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
