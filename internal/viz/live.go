package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/vec"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 120
)

type TickMsg time.Time

// Builder builds a fresh scenario run. The live view calls it again on
// restart.
type Builder func() (*scenario.Run, error)

// Model steps a scenario run in the terminal, one tick per frame.
type Model struct {
	build Builder
	run   *scenario.Run
	cfg   sim.Config
	scene Scene

	theme  Theme
	styles Styles
	canvas *Canvas
	camera *Camera

	width, height int
	running       bool
	steps         int
	frame         sim.Frame
	speeds        []float64
	trails        [][][2]float64
	showTrails    bool
	history       []sim.Frame
	playHead      int
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
	tick          int
	err           error
	gifPath       string
}

// NewModel builds the first run and returns the live view over it.
func NewModel(build Builder) (Model, error) {
	m := Model{
		build:      build,
		theme:      ThemeCyberpunk,
		styles:     NewStyles(ThemeCyberpunk),
		canvas:     NewCanvas(width, height),
		camera:     NewCamera(),
		width:      width,
		height:     height,
		showTrails: true,
		gifPath:    "steersim.gif",
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab", "l":
			m.showTrails = !m.showTrails
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-52, 20)
		h := max(msg.Height-4, 8)
		if w != m.width || h != m.height {
			m.width, m.height = w, h
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		m.tick++
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) finished() bool { return m.steps >= m.cfg.Steps() }

// step advances the run by one tick.
func (m *Model) step() {
	if m.err != nil || m.finished() {
		m.running = false
		return
	}
	if err := m.run.Runner.Step(m.cfg.Dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.steps++
	m.frame = m.run.Runner.Snapshot()

	mean := 0.0
	for _, a := range m.frame.Agents {
		mean += a.Speed()
	}
	if n := len(m.frame.Agents); n > 0 {
		mean /= float64(n)
	}
	m.speeds = appendCapped(m.speeds, mean, historyCapacity)

	for i, a := range m.frame.Agents {
		if i < len(m.trails) {
			m.trails[i] = appendCapped(m.trails[i], [2]float64{a.Position[0], a.Position[1]}, trailCapacity)
		}
	}
	m.history = appendCapped(m.history, m.frame, historyCapacity)
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	s = append(s, v)
	if len(s) > capacity {
		s = s[1:]
	}
	return s
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset rebuilds the run from its config.
func (m *Model) reset() error {
	run, err := m.build()
	if err != nil {
		return err
	}
	m.run = run
	m.cfg = run.SimConfig()
	m.scene = SceneOf(run)
	m.steps = 0
	m.frame = run.Runner.Snapshot()
	m.speeds = m.speeds[:0]
	m.history = m.history[:0]
	m.trails = make([][][2]float64, len(m.frame.Agents))
	m.playHead = -1
	m.running = true
	m.err = nil
	if run.Spatial != nil && len(m.frame.Agents) > 0 {
		m.camera.Target = vec.Vec3{X: m.frame.Agents[0].Position[0]}
	}
	return nil
}

// shown is the frame on screen: the live one or the replayed one.
func (m *Model) shown() sim.Frame {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.frame
}

func (m *Model) draw() {
	m.canvas.Clear()
	f := m.shown()

	if m.run.Spatial != nil {
		grid := GroundGrid(m.camera.Target, 10, 10)
		grid.AddAgents(f)
		Render3D(m.canvas, grid, m.camera)
		return
	}

	pts := append(m.scene.Points(), FramePoints(f)...)
	if m.showTrails {
		for _, t := range m.trails {
			pts = append(pts, t...)
		}
	}
	v := FitViewport(m.canvas, 2, pts...)
	DrawScene(m.canvas, v, m.scene)
	DrawRays(m.canvas, v, m.run.Rays)
	if m.showTrails {
		for _, t := range m.trails {
			for _, p := range t {
				x, y := v.Project(m.canvas, p[0], p[1])
				m.canvas.Set(x, y)
			}
		}
	}
	DrawAgents(m.canvas, v, f, 2)
}

func (m Model) status() string {
	s := m.styles
	switch {
	case m.err != nil:
		return s.Failed.Render("FAILED")
	case m.recording:
		return s.Recording.Render("● REC")
	case m.playHead != -1:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		return s.Paused.Render(fmt.Sprintf("REPLAY (%.1fs)", back))
	case m.finished():
		return s.Running.Render("DONE")
	case !m.running:
		return s.Paused.Render("PAUSED")
	}
	return s.Running.Render(AnimatedSpinner(m.tick) + " RUNNING")
}

// View renders the TUI interface.
func (m Model) View() string {
	s := m.styles
	canvasView := s.Canvas.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(GradientText(strings.ToUpper(m.run.Name), m.theme.Primary, m.theme.Secondary) + "\n")
	b.WriteString(m.status() + "\n\n")

	f := m.shown()
	total := m.cfg.Steps()
	b.WriteString(s.Row("Time", "%.2fs", f.Time))
	b.WriteString(s.Row("Step", "%d / %d", m.steps, total))
	b.WriteString(s.ProgressBar(float64(m.steps)/float64(max(total, 1)), 30) + "\n")
	b.WriteString(s.Row("Agents", "%d", len(f.Agents)))
	b.WriteString(s.Row("Integrator", "%s", m.run.Config.Integrator))

	b.WriteString("\n" + s.Label.Render("Mean speed") + "\n")
	b.WriteString(s.SparklineChart(m.speeds, 30) + "\n")

	metrics := m.run.Metrics()
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	b.WriteString("\n" + s.Separator(30) + "\n")
	for _, k := range names {
		b.WriteString(s.Row(k, "%.4f", metrics[k]))
	}

	if m.err != nil {
		b.WriteString("\n" + s.Failed.Render(wrap(m.err.Error(), 36)) + "\n")
	}

	b.WriteString(s.KeyHint.Render("\nSP:Pause R:Restart Q:Quit\nT:Theme L:Trails G:Record\n[ ]:Time-Travel ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, s.Panel.Render(b.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Restart the scenario     ║
║  Q        - Quit                     ║
║  L/Tab    - Toggle trails            ║
║  [        - Rewind (time travel)     ║
║  ]        - Forward (time travel)    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  x/X y/Y  - Orbit camera (3D)        ║
║  +/-      - Zoom camera (3D)         ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func wrap(s string, n int) string {
	var b strings.Builder
	for len(s) > n {
		b.WriteString(s[:n] + "\n")
		s = s[n:]
	}
	b.WriteString(s)
	return b.String()
}

// captureFrame rasterizes the braille canvas into a GIF frame.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for y := 0; y < m.canvas.PixelHeight(); y++ {
		for x := 0; x < m.canvas.PixelWidth(); x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.err = err
	}
}

// Run starts the live view in the alternate screen.
func Run(build Builder) error {
	m, err := NewModel(build)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
