package tooltip_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/tschart/internal/tooltip"
)

// fakeContainer is a DOM-like node with a fixed rendered size.
type fakeContainer struct {
	calls   []string
	content []tooltip.Data
	width   int
	height  int
	left    int
	top     int
	visible bool
}

func (c *fakeContainer) Clear() {
	c.calls = append(c.calls, "clear")
	c.content = nil
}

func (c *fakeContainer) Insert(d tooltip.Data) {
	c.calls = append(c.calls, "insert")
	c.content = append(c.content, d)
}

func (c *fakeContainer) Measure() (int, int) {
	c.calls = append(c.calls, "measure")
	return c.width, c.height
}

func (c *fakeContainer) SetPosition(left, top int) {
	c.calls = append(c.calls, "position")
	c.left, c.top = left, top
}

func (c *fakeContainer) SetVisible(visible bool) {
	c.calls = append(c.calls, "visible")
	c.visible = visible
}

var sampleData = tooltip.Data{
	Title: "T",
	Items: []tooltip.Item{{Value: "1", Name: "a", Color: "#000"}},
}

func TestShowThenHide(t *testing.T) {
	c := &fakeContainer{width: 40, height: 30}
	p := tooltip.New(c)

	p.Show(tooltip.Anchor{Left: 100, Top: 50}, sampleData)
	assert.True(t, c.visible)
	assert.Equal(t, 120, c.left)
	assert.Equal(t, 20, c.top)
	assert.Equal(t, []string{"clear", "insert", "measure", "position", "visible"}, c.calls)

	p.Hide()
	assert.False(t, c.visible)
	assert.Equal(t, []tooltip.Data{sampleData}, c.content, "content kept while hidden")
	assert.Equal(t, 120, c.left)
}

func TestShow_ReplacesContent(t *testing.T) {
	c := &fakeContainer{}
	p := tooltip.New(c)

	p.Show(tooltip.Anchor{}, sampleData)
	p.Hide()
	p.Show(tooltip.Anchor{}, tooltip.Data{Title: "U"})

	require.Len(t, c.content, 1)
	assert.Equal(t, "U", c.content[0].Title)
	assert.True(t, c.visible)
}

func TestOverlay_ShowThenHide(t *testing.T) {
	o := tooltip.NewOverlay()
	p := tooltip.New(o)

	p.Show(tooltip.Anchor{Left: 100, Top: 50}, sampleData)
	w, h := o.Measure()
	// "1 a" plus one cell of padding and a border on each side.
	assert.Equal(t, 7, w)
	assert.Equal(t, 4, h)

	left, top := o.Position()
	assert.Equal(t, 103, left)
	assert.Equal(t, 46, top)
	assert.True(t, o.Visible())

	content := o.Content()
	p.Hide()
	assert.False(t, o.Visible())
	assert.Equal(t, content, o.Content())
	assert.Contains(t, ansi.Strip(content), "1 a")
}

func background(rows, cols int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(".", cols)
	}
	return strings.Join(lines, "\n")
}

func TestOverlay_Composite(t *testing.T) {
	o := tooltip.NewOverlay()
	o.Insert(sampleData)
	o.SetPosition(5, 2)

	view := background(10, 30)
	assert.Equal(t, view, o.Composite(view), "hidden overlay leaves view untouched")

	o.SetVisible(true)
	out := strings.Split(ansi.Strip(o.Composite(view)), "\n")
	require.Len(t, out, 10)
	for _, line := range out {
		assert.Equal(t, 30, ansi.StringWidth(line))
	}

	assert.Equal(t, strings.Repeat(".", 30), out[1])
	assert.Equal(t, ".....╭─────╮..................", out[2])
	assert.Contains(t, out[3], "│ T   │")
	assert.Contains(t, out[4], "│ 1 a │")
	assert.Equal(t, strings.Repeat(".", 30), out[6])
}

func TestOverlay_CompositeClampsIntoView(t *testing.T) {
	o := tooltip.NewOverlay()
	o.Insert(sampleData)
	o.SetPosition(100, -3)
	o.SetVisible(true)

	out := strings.Split(ansi.Strip(o.Composite(background(6, 20))), "\n")
	require.Len(t, out, 6)
	assert.True(t, strings.HasSuffix(out[0], "╭─────╮"))
	assert.True(t, strings.HasSuffix(out[3], "╰─────╯"))
	assert.Equal(t, 20, ansi.StringWidth(out[0]))
}

func TestOverlay_ClearEmptiesContent(t *testing.T) {
	o := tooltip.NewOverlay()
	o.Insert(sampleData)
	o.Clear()

	w, h := o.Measure()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.Empty(t, o.Content())
}
