package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/seastate/internal/wave"
)

const (
	width           = 72
	height          = 16
	historyCapacity = 240
	frameRate       = time.Second / 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(42)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model animates the free surface along a transect through the origin,
// together with the recent elevation at the origin.
type Model struct {
	st      *wave.State
	xs      [][]float64
	ys      [][]float64
	heading float64 // degrees

	t       float64
	speed   float64
	running bool
	theme   Theme

	canvas  *Canvas
	profile []float64
	amp     float64
	history []float64
	err     error
}

// NewModel builds a live view of st along a transect of the given length (m),
// aligned with the first wave direction.
func NewModel(st *wave.State, length float64) Model {
	heading := 0.0
	if dirs := st.Config.Directions; len(dirs) > 0 {
		heading = dirs[0]
	}

	m := Model{
		st:      st,
		heading: heading,
		speed:   1,
		running: true,
		theme:   ThemeOcean,
		canvas:  NewCanvas(width, height),
		history: make([]float64, 0, historyCapacity),
	}
	m.xs, m.ys = transect(length, heading, width*2+1)
	m.amp = surfaceScale(st)
	m.render()
	return m
}

// transect returns n points on a line of the given length centred on the
// origin, as single-row grids for EvaluateField.
func transect(length, headingDeg float64, n int) (xs, ys [][]float64) {
	rad := headingDeg * math.Pi / 180
	row := make([]float64, n)
	col := make([]float64, n)
	for i := range row {
		s := -length/2 + length*float64(i)/float64(n-1)
		row[i] = s * math.Cos(rad)
		col[i] = s * math.Sin(rad)
	}
	return [][]float64{row}, [][]float64{col}
}

func surfaceScale(st *wave.State) float64 {
	amp := 0.0
	if st.Origin.Len() > 0 {
		lo, hi := st.Origin.Range()
		amp = math.Max(math.Abs(lo), math.Abs(hi))
	}
	if amp == 0 {
		amp = st.Config.Height / 2
	}
	if amp == 0 {
		amp = 1
	}
	return 1.2 * amp
}

// WithTheme returns the model drawn in theme t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Time is the current animation time (s).
func (m Model) Time() float64 { return m.t }

// Update handles key presses and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.speed = math.Min(m.speed*2, 16)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.125)
		case "t":
			m.theme = NextTheme(m.theme)
		case "right", "l":
			m.advance(m.st.Params.Dt)
		}
	case TickMsg:
		if m.running {
			m.advance(frameRate.Seconds() * m.speed)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.t = 0
	m.history = m.history[:0]
	m.render()
}

func (m *Model) advance(dt float64) {
	m.t += dt
	m.render()
}

// render evaluates the transect at the current time and records the origin
// elevation. Imported elevation records have no spatial field, so the
// history replays the stored series instead.
func (m *Model) render() {
	field, err := m.st.EvaluateField(m.t, m.xs, m.ys)
	if err != nil {
		m.err = err
		return
	}
	m.profile = field[0]

	eta := m.profile[len(m.profile)/2]
	if m.st.Config.Type == wave.EtaImport {
		eta = m.sampleOrigin()
	}
	m.history = append(m.history, eta)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	m.canvas.Clear()
	m.canvas.DrawLevel(0, m.amp)
	m.canvas.DrawProfile(m.profile, m.amp)
}

func (m *Model) sampleOrigin() float64 {
	o := m.st.Origin
	if o.Len() == 0 {
		return 0
	}
	i := int(math.Round(m.t / m.st.Params.Dt))
	return o.Eta[i%o.Len()]
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	surface := lipgloss.NewStyle().Foreground(m.theme.Surface)
	canvasView := canvasStyle.Render(surface.Render(m.canvas.String()))

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.st.Config.Type.String())) + "  " + status + "\n\n")
	s.WriteString(MetricLabel.Render("time") + MetricValue.Render(fmt.Sprintf("%.1f s", m.t)) + "\n")
	s.WriteString(MetricLabel.Render("speed") + MetricValue.Render(fmt.Sprintf("x%g", m.speed)) + "\n")
	s.WriteString(MetricLabel.Render("heading") + MetricValue.Render(fmt.Sprintf("%.0f°", m.heading)) + "\n")
	if n := len(m.history); n > 0 {
		s.WriteString(MetricLabel.Render("eta(0)") + MetricValue.Render(fmt.Sprintf("%+.3f m", m.history[n-1])) + "\n")
	}
	if ramp := m.st.Params.RampTime; ramp > 0 {
		s.WriteString(MetricLabel.Render("ramp") + ProgressBar(math.Min(m.t/ramp, 1), 20) + "\n")
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(32),
			asciigraph.Precision(2),
			asciigraph.Caption("eta at origin"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Graph).Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(36) + "\nSP:Pause R:Reset Q:Quit\n+/-:Speed →:Step T:Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
