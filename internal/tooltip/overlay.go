package tooltip

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bbb")).
			Padding(0, 1)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#96a2aa"))
)

// Overlay is a terminal Container measured in cells.
//
// Composite draws it on top of another rendered view.
type Overlay struct {
	content string
	left    int
	top     int
	visible bool
}

var _ Container = (*Overlay)(nil)

func NewOverlay() *Overlay {
	return &Overlay{}
}

func (o *Overlay) Clear() {
	o.content = ""
}

func (o *Overlay) Insert(d Data) {
	lines := make([]string, 0, len(d.Items)+1)
	lines = append(lines, overlayTitleStyle.Render(d.Title))
	for _, item := range d.Items {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color))
		lines = append(lines,
			style.Bold(true).Render(item.Value)+" "+style.Render(item.Name))
	}

	o.content += overlayBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (o *Overlay) Measure() (width, height int) {
	if o.content == "" {
		return 0, 0
	}
	return lipgloss.Width(o.content), lipgloss.Height(o.content)
}

func (o *Overlay) SetPosition(left, top int) {
	o.left, o.top = left, top
}

func (o *Overlay) SetVisible(visible bool) {
	o.visible = visible
}

func (o *Overlay) Visible() bool {
	return o.visible
}

func (o *Overlay) Position() (left, top int) {
	return o.left, o.top
}

// Content returns the rendered tooltip, including while hidden.
func (o *Overlay) Content() string {
	return o.content
}

// Composite returns view with the tooltip drawn over it.
//
// The tooltip is moved inside view's bounds if its position would put part
// of it outside.
func (o *Overlay) Composite(view string) string {
	if !o.visible || o.content == "" {
		return view
	}

	rows := strings.Split(view, "\n")
	box := strings.Split(o.content, "\n")
	width, _ := o.Measure()

	left := clamp(o.left, 0, max(0, lipgloss.Width(view)-width))
	top := clamp(o.top, 0, max(0, len(rows)-len(box)))

	for i, line := range box {
		row := top + i
		if row >= len(rows) {
			break
		}

		bg := rows[row]
		if w := ansi.StringWidth(bg); w < left {
			bg += strings.Repeat(" ", left-w)
		}
		rows[row] = ansi.Truncate(bg, left, "") +
			line +
			ansi.TruncateLeft(bg, left+ansi.StringWidth(line), "")
	}
	return strings.Join(rows, "\n")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
