package monitor

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ Monitor = Void{}
	_ Monitor = NewMemory()
	_ Monitor = NewConsole(nil)
)

func TestMemory_Curves(t *testing.T) {

	m := NewMemory()

	m.Create("ROC", Axis{Bins: 100, Min: 0, Max: 1}, Axis{Bins: 100, Min: 0, Max: 1})
	m.AddPoint("ROC", 0.1, 0.9)
	m.AddPoint("ROC", 0.2, 0.8)
	m.AddPoint("other", 1, 1)

	c, ok := m.Curve("ROC")
	assert.True(t, ok)
	assert.Equal(t, 2, len(c.Axes))
	assert.Equal(t, []Point{{X: 0.1, Y: 0.9}, {X: 0.2, Y: 0.8}}, c.Points)
	assert.Equal(t, []float64{0.9, 0.8}, c.Y())
	assert.False(t, c.Plotted)

	m.Plot("ROC", "same", 2, Red)
	c, _ = m.Curve("ROC")
	assert.True(t, c.Plotted)
	assert.Equal(t, Style{Options: "same", LineWidth: 2, Color: Red}, c.Style)

	m.Clear("ROC")
	c, _ = m.Curve("ROC")
	assert.Empty(t, c.Points)

	_, ok = m.Curve("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"ROC", "other"}, m.Names())

	m.ProcessEvents()
	assert.Equal(t, 1, m.Events())
}

func TestMemory_CurveIsCopy(t *testing.T) {
	m := NewMemory()
	m.AddPoint("c", 1, 2)
	c, _ := m.Curve("c")
	c.Points[0].X = 100
	cc, _ := m.Curve("c")
	assert.Equal(t, 1.0, cc.Points[0].X)
}

func TestMemory_Concurrent(t *testing.T) {
	m := NewMemory()
	wg := new(sync.WaitGroup)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.AddPoint("c", float64(i), float64(j))
			}
		}(i)
	}
	wg.Wait()
	c, _ := m.Curve("c")
	assert.Equal(t, 1000, len(c.Points))
}

func TestConsole_ProcessEvents(t *testing.T) {

	out := new(bytes.Buffer)
	c := NewConsole(out).WithSize(5, 20)

	c.Create("Significance")
	for i := 0; i < 10; i++ {
		c.AddPoint("Significance", float64(i), float64(i*i))
	}
	c.AddPoint("Significance", 10, math.NaN())
	c.AddPoint("hidden", 1, 1)

	// nothing is plotted yet
	c.ProcessEvents()
	assert.Empty(t, out.String())

	c.Plot("Significance", "", 3, Red)
	c.ProcessEvents()
	assert.Contains(t, out.String(), "Significance (red)")
	assert.NotContains(t, out.String(), "hidden")
	assert.Equal(t, 2, c.Events())
}

func TestFinite(t *testing.T) {
	assert.Equal(t, []float64{1, 0, 0, 2}, finite([]float64{1, math.NaN(), math.Inf(1), 2}))
}
