// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/segbar/internal/bargraph"
	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/mathx"
	"github.com/HaPhanBaoMinh/segbar/internal/ui/styles"
	"github.com/HaPhanBaoMinh/segbar/internal/ui/widgets"
)

const (
	maxOutlet  = 200
	maxHistory = 120
)

type Source struct {
	Name string
	domain.MessageSource
}

type Options struct {
	Sources []Source
	Sink    domain.SnapshotSink
	// Step is the value change of one up/down key press.
	Step float64
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	widget  bargraph.Widget
	canvas  *widgets.TermCanvas
	sources []Source
	sink    domain.SnapshotSink
	step    float64

	// panes
	tableOpen bool
	tableView table.Model
	logsOpen  bool
	logsVP    viewport.Model

	outlet  []string
	history []float64
	last    float64
	emitted bool
	live    map[string]bool

	width, height int
	err           error
}

func New(w bargraph.Widget, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	step := opts.Step
	if step <= 0 {
		step = defaultStep(w)
	}

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		widget:  w,
		canvas:  widgets.NewTermCanvas(20, 10),
		sources: opts.Sources,
		sink:    opts.Sink,
		step:    step,
		logsVP:  viewport.New(40, 6),
		live:    map[string]bool{},
	}
	m.tableView = newBreakpointTable(w)
	m.redraw()
	if m.sink != nil {
		m.sink.Publish(m.Snapshot())
	}
	return m
}

type widgetMsg struct {
	source string
	msg    domain.Message
	ch     <-chan domain.Message
}
type sourceStarted struct {
	source string
	ch     <-chan domain.Message
}
type sourceDone struct{ source string }
type errMsg struct{ error }

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sources))
	for _, s := range m.sources {
		cmds = append(cmds, m.start(s))
	}
	return tea.Batch(cmds...)
}

func (m Model) start(s Source) tea.Cmd {
	return func() tea.Msg {
		ch, err := s.Stream(m.ctx)
		if err != nil {
			logrus.WithError(err).WithField("source", s.Name).Error("failed to start source")
			return errMsg{pkgerrors.Wrap(err, s.Name)}
		}
		logrus.WithField("source", s.Name).Info("source started")
		return sourceStarted{source: s.Name, ch: ch}
	}
}

func readNext(source string, ch <-chan domain.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return sourceDone{source: source}
		}
		return widgetMsg{source: source, msg: msg, ch: ch}
	}
}

// Dispatch hands one message to the widget and performs what it asks for.
func (m *Model) Dispatch(msg domain.Message) bargraph.Result {
	r := m.widget.Handle(msg)
	switch msg.(type) {
	case domain.SetRange:
		m.tableView = newBreakpointTable(m.widget)
		m.resize()
	case domain.SetOrientation:
		// vertical bars are narrower than the terminal
		m.resize()
	}
	if r.Emit {
		m.emit(r.Output)
	}
	if r.Redraw {
		m.redraw()
	}
	if m.sink != nil {
		m.sink.Publish(m.Snapshot())
	}
	return r
}

func (m *Model) emit(v float64) {
	m.last, m.emitted = v, true
	m.outlet = append(m.outlet, fmt.Sprintf("%-8s %.4f", m.widget.Kind(), v))
	if len(m.outlet) > maxOutlet {
		m.outlet = m.outlet[len(m.outlet)-maxOutlet:]
	}
	m.history = append(m.history, m.widget.Fill().SoC)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.logsVP.SetContent(strings.Join(m.outlet, "\n"))
	m.logsVP.GotoBottom()
}

func (m *Model) redraw() {
	bargraph.Render(bargraph.ContextOf(m.canvas), m.canvas, m.widget.Layout())
}

func (m Model) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Kind:   m.widget.Kind(),
		State:  m.widget.State(),
		Fill:   m.widget.Fill(),
		Output: m.last,
	}
}

// Outlet returns the emitted values, oldest first.
func (m Model) Outlet() []string { return append([]string(nil), m.outlet...) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		var cmd tea.Cmd
		m.logsVP, cmd = m.logsVP.Update(msg)
		return m, cmd

	case sourceStarted:
		m.live[msg.source] = true
		return m, readNext(msg.source, msg.ch)

	case widgetMsg:
		m.Dispatch(msg.msg)
		return m, readNext(msg.source, msg.ch)

	case domain.Message:
		m.Dispatch(msg)
		return m, nil

	case sourceDone:
		delete(m.live, msg.source)
		logrus.WithField("source", msg.source).Info("source finished")
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case tea.KeyMsg:
		if m.logsOpen {
			switch msg.String() {
			case "up", "k", "down", "j", "pgup", "pgdown":
				var cmd tea.Cmd
				m.logsVP, cmd = m.logsVP.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.tableOpen || m.logsOpen {
				m.tableOpen, m.logsOpen = false, false
				m.resize()
				return m, nil
			}
			m.cancel()
			return m, tea.Quit

		case "+", "=":
			m.Dispatch(domain.SetSegments{Count: m.widget.State().Segments + 1})
		case "-", "_":
			m.Dispatch(domain.SetSegments{Count: m.widget.State().Segments - 1})
		case "o":
			m.Dispatch(domain.SetOrientation{Horizontal: m.widget.State().Orientation != domain.Horizontal})
		case "c":
			m.Dispatch(domain.SetCells{Count: m.widget.State().Cells + 1})
		case "C":
			m.Dispatch(domain.SetCells{Count: m.widget.State().Cells - 1})
		case "up", "k", "right", "l":
			m.Dispatch(domain.SetValue{Value: m.widget.State().Value + m.step})
		case "down", "j", "left", "h":
			m.Dispatch(domain.SetValue{Value: m.widget.State().Value - m.step})
		case "r":
			m.Dispatch(domain.Redraw{})
		case "t":
			m.tableOpen = !m.tableOpen
			m.resize()
		case "v":
			m.logsOpen = !m.logsOpen
			m.resize()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	headerH := lipgloss.Height(styles.Header.Render("x"))
	footerH := lipgloss.Height(styles.Footer.Render("x"))
	cols, rows, logH := m.paneLayout(headerH + footerH)

	m.logsVP.Width = m.width - 4
	m.logsVP.Height = logH
	m.tableView.SetWidth(mathx.Clamp(m.width-4, 20, 60))
	if cols != m.canvas.Cols() || rows != m.canvas.Rows() {
		m.canvas.Resize(cols, rows)
		m.redraw()
	}
}

func (m Model) View() string {
	st := m.widget.State()
	fill := m.widget.Fill()

	head := styles.Header.Render(fmt.Sprintf(
		"segbar │ %s  segments: %d  %s  %s",
		m.widget.Kind(), st.Segments, st.Orientation, m.describeInput(st),
	))
	bar := styles.Box.Render(m.canvas.View())

	out := "-"
	if m.emitted {
		out = fmt.Sprintf("%.4f", m.last)
	}
	status := fmt.Sprintf("out: %s  fill: %d/%d  %s  trend: %s",
		out, fill.Filled, st.Segments,
		styles.ForFraction(fill.SoC).Render(fmt.Sprintf("%3.0f%%", fill.SoC*100)),
		widgets.Spark8(m.history, 24),
	)
	if len(m.live) > 0 {
		status += styles.Faint.Render("  sources: " + strings.Join(m.liveNames(), ","))
	}
	if m.err != nil {
		status += "  " + styles.Danger.Render(m.err.Error())
	}

	parts := []string{head, bar, status}
	if m.tableOpen {
		parts = append(parts, styles.Box.Render(m.tableView.View()))
	}
	if m.logsOpen {
		parts = append(parts, styles.Box.Width(m.width-2).Render("Outlet:\n"+m.logsVP.View()))
	}
	parts = append(parts, styles.Footer.Render(
		"[↑/↓] value • [+/-] segments • [o] orientation • [c/C] cells • [t] table • [v] outlet • [r] redraw • [q] quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) describeInput(st domain.WidgetState) string {
	if _, ok := m.widget.(*bargraph.Battery); ok {
		return fmt.Sprintf("cells: %d  pack: %.3fV", st.Cells, st.Value)
	}
	return fmt.Sprintf("range: [%g, %g]  value: %.4f", st.Range.Min, st.Range.Max, st.Value)
}
