package monitor

import (
	"sort"
	"sync"
)

// Point is a single point of a curve.
type Point struct {
	X float64
	Y float64
}

// Style is the plot style of a curve.
type Style struct {
	Options   string
	LineWidth int
	Color     Color
}

// Curve is a named series of points.
type Curve struct {
	Name    string
	Axes    []Axis
	Points  []Point
	Style   Style
	Plotted bool
}

// Memory keeps all curves in memory.
type Memory struct {
	mutex  *sync.RWMutex
	curves map[string]*Curve
	events int
}

// NewMemory creates a new in-memory monitor.
func NewMemory() *Memory {
	return &Memory{
		mutex:  new(sync.RWMutex),
		curves: make(map[string]*Curve),
	}
}

func (m *Memory) curve(name string) *Curve {
	c, ok := m.curves[name]
	if !ok {
		c = &Curve{
			Name:   name,
			Points: make([]Point, 0),
		}
		m.curves[name] = c
	}
	return c
}

// Create sets up the curve, existing points are dropped.
func (m *Memory) Create(name string, axes ...Axis) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c := m.curve(name)
	c.Axes = append([]Axis{}, axes...)
	c.Points = c.Points[:0]
}

func (m *Memory) Clear(name string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c := m.curve(name)
	c.Points = c.Points[:0]
}

func (m *Memory) AddPoint(name string, x, y float64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c := m.curve(name)
	c.Points = append(c.Points, Point{X: x, Y: y})
}

func (m *Memory) Plot(name string, options string, lineWidth int, color Color) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c := m.curve(name)
	c.Style = Style{
		Options:   options,
		LineWidth: lineWidth,
		Color:     color,
	}
	c.Plotted = true
}

func (m *Memory) ProcessEvents() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.events++
}

// Events returns how many times the monitor was asked to process events.
func (m *Memory) Events() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.events
}

// Curve returns a copy of the named curve.
func (m *Memory) Curve(name string) (Curve, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	c, ok := m.curves[name]
	if !ok {
		return Curve{}, false
	}
	cc := *c
	cc.Axes = append([]Axis{}, c.Axes...)
	cc.Points = append([]Point{}, c.Points...)
	return cc, true
}

// Names returns the names of all curves in alphabetical order.
func (m *Memory) Names() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.curves))
	for name := range m.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Y returns the y values of the curve.
func (c Curve) Y() []float64 {
	yy := make([]float64, len(c.Points))
	for i, p := range c.Points {
		yy[i] = p.Y
	}
	return yy
}
