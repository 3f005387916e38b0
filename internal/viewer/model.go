// Package viewer is an interactive terminal host for a chart renderer.
//
// The chart is painted into an off-screen raster and shown as colored
// braille cells. Terminal mouse motion is translated into pointer events on
// the raster, so hovering works the same way it would on a canvas.
package viewer

import (
	"fmt"
	"image"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/frame"
	"github.com/wandb/tschart/internal/observability"
	"github.com/wandb/tschart/internal/surface"
	"github.com/wandb/tschart/internal/tooltip"
)

const (
	headerHeight    = 1
	statusBarHeight = 1

	tooltipTimeFormat = "Mon, Jan 2"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(DefaultLabelColor))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultLabelColor))
)

// FrameMsg fires a frame: every pending repaint runs.
type FrameMsg struct {
	Time time.Time
}

// Model is the bubbletea model of the viewer.
type Model struct {
	title  string
	data   *dataset.Dataset
	config *ConfigManager
	logger *observability.CoreLogger

	raster    *surface.Raster
	queue     *frame.Queue
	renderer  *chart.Renderer
	overlay   *tooltip.Overlay
	presenter *tooltip.Presenter
	layers    []brailleLayer

	width, height int

	// frameScheduled is set while a FrameMsg tick is in flight.
	frameScheduled bool
	// inside tracks whether the last mouse event was over the chart.
	inside bool
	// cursor is the keyboard-selected sample, -1 if none.
	cursor int

	// chartView caches the braille rendering until the next paint.
	chartView string
	dirty     bool
}

var _ tea.Model = (*Model)(nil)

type ModelParams struct {
	Title   string
	Data    *dataset.Dataset
	Config  *ConfigManager
	Logger  *observability.CoreLogger
	Metrics *chart.Metrics
}

func NewModel(params ModelParams) (*Model, error) {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	settings := params.Config.Snapshot()

	m := &Model{
		title:   params.Title,
		data:    params.Data,
		config:  params.Config,
		logger:  logger,
		raster:  surface.NewRaster(1, 1),
		queue:   frame.NewQueue(),
		overlay: tooltip.NewOverlay(),
		cursor:  -1,
		dirty:   true,
	}
	m.presenter = tooltip.New(m.overlay)

	chartConfig := chart.DefaultConfig()
	chartConfig.GridColor = settings.GridColor
	chartConfig.LabelColor = settings.LabelColor
	chartConfig.Location = settings.Location()

	opts := []chart.Option{
		chart.WithConfig(chartConfig),
		chart.WithScheduler(m.queue),
		chart.WithLogger(logger),
	}
	if params.Metrics != nil {
		opts = append(opts, chart.WithMetrics(params.Metrics))
	}
	renderer, err := chart.New(m.raster, params.Data, opts...)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	m.renderer = renderer

	layerColors := []string{settings.GridColor}
	for _, col := range params.Data.Lines() {
		layerColors = append(layerColors, params.Data.Color(col.Key))
	}
	for _, hex := range layerColors {
		layer, err := newBrailleLayer(hex)
		if err != nil {
			return nil, fmt.Errorf("viewer: layer color: %w", err)
		}
		m.layers = append(m.layers, layer)
	}

	m.renderer.Init()
	return m, nil
}

func (m *Model) Renderer() *chart.Renderer {
	return m.renderer
}

func (m *Model) Overlay() *tooltip.Overlay {
	return m.overlay
}

// Init implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("viewer: Init called")
	return tea.SetWindowTitle("tschart: " + m.title)
}

// Update implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logPanic("Update")

	switch t := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(t)

	case tea.MouseMsg:
		m.handleMouseMsg(t)
		return m, m.scheduleFrame()

	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		m.dirty = true
		return m, nil

	case FrameMsg:
		m.frameScheduled = false
		if n := m.queue.Flush(t.Time); n > 0 {
			m.dirty = true
			m.syncTooltip()
		}
		return m, m.scheduleFrame()
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.renderer.Destroy()
		return m, tea.Quit

	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)

	case "esc":
		m.cursor = -1
		m.inside = false
		m.raster.DispatchPointerLeave()

	case "t":
		if _, err := m.config.ToggleTooltip(); err != nil {
			m.logger.CaptureError(fmt.Errorf("viewer: toggle tooltip: %v", err))
		}
		m.syncTooltip()
	}

	return m, m.scheduleFrame()
}

// moveCursor selects the neighbouring sample and hovers it.
func (m *Model) moveCursor(delta int) {
	n := m.data.SampleCount()
	switch {
	case m.cursor < 0 && delta > 0:
		m.cursor = 0
	case m.cursor < 0:
		m.cursor = n - 1
	default:
		m.cursor = clamp(m.cursor+delta, 0, n-1)
	}

	rect := m.raster.BoundingRect()
	x := rect.Left + float64(m.cursor)*rect.Width/float64(n-1)
	m.inside = true
	m.raster.DispatchPointerMove(x, rect.Top)
}

// handleMouseMsg maps terminal cells to client pixels on the raster.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) {
	defer timeit(m.logger, "Model.handleMouseMsg")()

	if tea.MouseEvent(msg).IsWheel() {
		return
	}

	cols, rows := m.chartSize()
	col, row := float64(msg.X), float64(msg.Y-headerHeight)
	cells := surface.Rect{Width: float64(cols), Height: float64(rows)}
	if !cells.Contains(col, row) {
		if m.inside {
			m.inside = false
			m.raster.DispatchPointerLeave()
		}
		return
	}

	m.inside = true
	m.cursor = -1
	rect := m.raster.BoundingRect()
	m.raster.DispatchPointerMove(
		rect.Left+(col+0.5)*rect.Width/cells.Width,
		rect.Top+(row+0.5)*rect.Height/cells.Height,
	)
}

// scheduleFrame starts a frame tick if a repaint is pending and no tick is
// already in flight.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.frameScheduled || m.queue.Pending() == 0 {
		return nil
	}
	m.frameScheduled = true
	return tea.Tick(m.config.FrameInterval(), func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

// syncTooltip shows the tooltip for the renderer's hovered sample.
func (m *Model) syncTooltip() {
	h, ok := m.renderer.Hover()
	if !ok || !m.config.ShowTooltip() {
		m.presenter.Hide()
		return
	}

	cols, rows := m.chartSize()
	rect := m.raster.BoundingRect()
	anchor := tooltip.Anchor{
		Left: int(h.Left / rect.Width * float64(cols)),
		Top:  headerHeight + int(h.Top/rect.Height*float64(rows)),
	}
	m.presenter.Show(anchor, tooltipData(h))
}

func tooltipData(h chart.Hover) tooltip.Data {
	d := tooltip.Data{
		Title: h.Time.Format(tooltipTimeFormat),
		Items: make([]tooltip.Item, 0, len(h.Values)),
	}
	for _, v := range h.Values {
		d.Items = append(d.Items, tooltip.Item{
			Value: strconv.FormatFloat(v.Value, 'f', -1, 64),
			Name:  v.Name,
			Color: v.Color,
		})
	}
	return d
}

// chartSize returns the chart area in cells.
func (m *Model) chartSize() (cols, rows int) {
	return max(1, m.width), max(1, m.height-headerHeight-statusBarHeight)
}

// View implements tea.Model.View.
func (m *Model) View() string {
	defer m.logPanic("View")

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.dirty {
		cols, rows := m.chartSize()
		m.chartView = renderBraille(m.snapshot(), cols, rows, m.layers)
		m.dirty = false
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Width(m.width).MaxHeight(headerHeight).Render(m.title),
		m.chartView,
		statusStyle.Width(m.width).MaxHeight(statusBarHeight).Render(m.statusText()),
	)
	return m.overlay.Composite(view)
}

func (m *Model) snapshot() *image.RGBA {
	if img, ok := m.raster.Image().(*image.RGBA); ok {
		return img
	}
	return m.raster.Snapshot()
}

func (m *Model) statusText() string {
	h, ok := m.renderer.Hover()
	if !ok {
		return "hover or ←/→ to inspect · t: tooltip · esc: clear · q: quit"
	}

	parts := []string{h.Time.Format(tooltipTimeFormat)}
	for _, v := range h.Values {
		parts = append(parts, fmt.Sprintf("%s %s", v.Name, strconv.FormatFloat(v.Value, 'f', -1, 64)))
	}
	return strings.Join(parts, " · ")
}

// logPanic logs panics to Sentry before re-panicking.
func (m *Model) logPanic(context string) {
	if r := recover(); r != nil {
		stackTrace := string(debug.Stack())
		m.logger.CaptureError(fmt.Errorf("PANIC in %s: %v\nStack trace:\n%s", context, r, stackTrace))

		panic(r)
	}
}

func timeit(logger *observability.CoreLogger, scope string) func() {
	start := time.Now()
	return func() {
		logger.Debug(fmt.Sprintf("perf: %s took %s", scope, time.Since(start)))
	}
}
