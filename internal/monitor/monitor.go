package monitor

// Color is the line color of a plotted curve.
type Color string

const (
	Red  Color = "red"
	Blue Color = "blue"
)

// Axis describes the binning of one axis of a curve.
type Axis struct {
	Bins int
	Min  float64
	Max  float64
}

// Monitor collects curves of the training process and renders them.
type Monitor interface {
	// Create sets up a new curve with one or two axes.
	Create(name string, axes ...Axis)
	// Clear removes all points of the curve.
	Clear(name string)
	// AddPoint appends a point to the curve.
	AddPoint(name string, x, y float64)
	// Plot marks the curve for rendering with the given style.
	Plot(name string, options string, lineWidth int, color Color)
	// ProcessEvents renders the pending changes.
	ProcessEvents()
}

// Void is a monitor that does nothing.
type Void struct {
}

func (v Void) Create(name string, axes ...Axis) {
}

func (v Void) Clear(name string) {
}

func (v Void) AddPoint(name string, x, y float64) {
}

func (v Void) Plot(name string, options string, lineWidth int, color Color) {
}

func (v Void) ProcessEvents() {
}
