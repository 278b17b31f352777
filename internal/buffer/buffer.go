package buffer

// Buffer defines a simple float buffer that acts like a constant size queue
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0, size+1),
	}
}

// Push adds an element to the buffer.
// It returns the element that was evicted, if the buffer was full.
func (b *Buffer) Push(x float64) (float64, bool) {
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = append(b.values[:0], b.values[1:]...)
		return value, true
	}
	return 0, false
}

// Get returns the buffer elements in the order they were added.
func (b *Buffer) Get() []float64 {
	return append(make([]float64, 0, len(b.values)), b.values...)
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.values = b.values[:0]
}
