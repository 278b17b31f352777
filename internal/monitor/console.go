package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
)

const (
	defaultHeight = 10
	defaultWidth  = 80
)

// Console renders the plotted curves as ascii charts.
type Console struct {
	*Memory
	out    io.Writer
	height int
	width  int
}

// NewConsole creates a monitor writing the charts to the given writer.
func NewConsole(out io.Writer) *Console {
	return &Console{
		Memory: NewMemory(),
		out:    out,
		height: defaultHeight,
		width:  defaultWidth,
	}
}

// WithSize sets the size of the charts.
func (c *Console) WithSize(height, width int) *Console {
	c.height = height
	c.width = width
	return c
}

// ProcessEvents renders all plotted curves.
func (c *Console) ProcessEvents() {
	c.Memory.ProcessEvents()
	for _, name := range c.Names() {
		curve, ok := c.Curve(name)
		if !ok || !curve.Plotted || len(curve.Points) == 0 {
			continue
		}
		chart := asciigraph.Plot(finite(curve.Y()),
			asciigraph.Height(c.height),
			asciigraph.Width(c.width),
			asciigraph.Caption(fmt.Sprintf("%s (%s)", name, curve.Style.Color)))
		if _, err := fmt.Fprintf(c.out, "%s\n\n", chart); err != nil {
			log.Error().Err(err).Str("curve", name).Msg("could not render curve")
			return
		}
	}
}

// finite replaces undefined values, which the chart cannot scale.
func finite(yy []float64) []float64 {
	ff := make([]float64, len(yy))
	for i, y := range yy {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			ff[i] = y
		}
	}
	return ff
}
