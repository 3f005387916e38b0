// Package tooltip positions and fills a small overlay next to a hovered
// chart sample.
package tooltip

// Anchor is the point the tooltip is attached to.
//
// Units are whatever the Container measures in.
type Anchor struct {
	Left, Top int
}

// Item is one line of the tooltip, colored like its series.
type Item struct {
	Value string
	Name  string
	Color string
}

// Data is the tooltip payload.
type Data struct {
	Title string
	Items []Item
}

// Container is the node a Presenter renders into.
type Container interface {
	// Clear removes the current content.
	Clear()
	// Insert renders d as the container's content.
	Insert(d Data)
	// Measure returns the size of the rendered content.
	Measure() (width, height int)
	// SetPosition places the container's top-left corner.
	SetPosition(left, top int)
	// SetVisible shows or hides the container without touching its content.
	SetVisible(visible bool)
}

// Presenter shows and hides a tooltip. It keeps no state of its own.
type Presenter struct {
	container Container
}

func New(c Container) *Presenter {
	return &Presenter{container: c}
}

// Show replaces the content with d and places the tooltip so that its
// bottom edge sits at anchor.Top, shifted right by half its own width.
//
// Content is rendered before it is measured so the position accounts for
// the new size.
func (p *Presenter) Show(anchor Anchor, d Data) {
	p.container.Clear()
	p.container.Insert(d)

	width, height := p.container.Measure()
	p.container.SetPosition(anchor.Left+width/2, anchor.Top-height)
	p.container.SetVisible(true)
}

// Hide hides the tooltip. Its content stays until the next Show.
func (p *Presenter) Hide() {
	p.container.SetVisible(false)
}
