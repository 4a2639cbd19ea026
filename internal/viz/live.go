package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldtrace/internal/config"
	"github.com/san-kum/fieldtrace/internal/session"
	"github.com/san-kum/fieldtrace/internal/trace"
)

const (
	canvasWidth  = 90
	canvasHeight = 30
	frameRate    = 20
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(36)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the terminal live view: a rotating 3D projection of the
// traced field, retraced whenever the charge set or knobs change.
type Model struct {
	sess       *session.Session
	palette    trace.Palette
	cam        *Camera
	canvas     *Canvas
	frame      *trace.Frame
	sceneName  string
	sceneNames []string
	dirty      bool
	rotating   bool
	showHelp   bool
}

func NewModel(cfg *config.Config) Model {
	charges := config.GetScene(cfg.Scene)
	fc := cfg.FrameConfig()

	return Model{
		sess:       session.NewFromScene(charges, fc.MaxSteps, fc.Resolution),
		palette:    fc.Palette,
		cam:        NewCamera(),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		sceneName:  cfg.Scene,
		sceneNames: config.ListScenes(),
		dirty:      true,
		rotating:   true,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.rotating {
			m.cam.RotateY(0.01)
		}
		if m.dirty {
			m.retrace()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up":
		m.sess.Apply(session.AdjustMaxSteps{Delta: 10})
		m.dirty = true
	case "down":
		m.sess.Apply(session.AdjustMaxSteps{Delta: -10})
		m.dirty = true
	case "right":
		m.sess.Apply(session.AdjustResolution{Delta: 1})
		m.dirty = true
	case "left":
		m.sess.Apply(session.AdjustResolution{Delta: -1})
		m.dirty = true
	case "w":
		m.cam.RotateX(-0.1)
	case "s":
		m.cam.RotateX(0.1)
	case "a":
		m.cam.RotateY(-0.1)
	case "d":
		m.cam.RotateY(0.1)
	case "+", "=":
		m.cam.ZoomIn()
	case "-":
		m.cam.ZoomOut()
	case " ":
		m.rotating = !m.rotating
	case "x":
		m.sess.Apply(session.DeleteCharge{Index: m.sess.Charges.Len() - 1})
		m.dirty = true
	case "h":
		m.showHelp = !m.showHelp
	default:
		if key := msg.String(); len(key) == 1 {
			if n := int(key[0] - '1'); n >= 0 && n < len(m.sceneNames) {
				m.loadScene(m.sceneNames[n])
			}
		}
	}
	return m, nil
}

func (m *Model) loadScene(name string) {
	charges := config.GetScene(name)
	if charges == nil {
		return
	}
	m.sess.Charges.Clear()
	for _, c := range charges {
		m.sess.Charges.Add(c.Position, c.Value)
	}
	m.sceneName = name
	m.dirty = true
}

func (m *Model) retrace() {
	o := trace.NewOrchestrator(m.sess.FrameConfig(m.palette))
	m.frame = o.Frame(m.sess.Charges.Snapshot())
	m.dirty = false
}

func (m Model) View() string {
	m.canvas.Clear()
	if m.frame != nil {
		RenderSegments(m.canvas, m.frame.Segments, m.cam)
	}
	RenderCharges(m.canvas, m.sess.Charges.Snapshot(), m.sess.Selected, m.cam)

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.statsView()),
	)

	help := "[1-5] scene  [arrows] knobs  [wasd] orbit  [+/-] zoom  [space] spin  [x] pop  [h] help  [q] quit"
	if m.showHelp {
		help += "\nup/down adjust the step budget, right/left the seed density.\nCharges come from built-in scenes; the last one can be popped with x."
	}
	return view + helpStyle.Render(help) + "\n"
}

func (m Model) statsView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("fieldtrace") + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("scene", m.sceneName)
	row("charges", fmt.Sprintf("%d", m.sess.Charges.Len()))
	row("steps", fmt.Sprintf("%d", m.sess.MaxSteps))
	row("resolution", fmt.Sprintf("%d", m.sess.Resolution))

	if m.frame != nil {
		st := &m.frame.Stats
		b.WriteString("\n")
		row("traces", fmt.Sprintf("%d", st.Traces))
		row("segments", fmt.Sprintf("%d", st.Segments))
		row("mean steps", fmt.Sprintf("%.1f", st.MeanSteps()))
		b.WriteString("\n")
		for _, t := range []trace.Termination{trace.Absorbed, trace.Stalled, trace.Escaped, trace.Exhausted} {
			row(t.String(), fmt.Sprintf("%d", st.Count(t)))
		}
	}
	return b.String()
}

// Run starts the live view and blocks until quit.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}
