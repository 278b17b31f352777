package dnn

// View is a range into an externally owned buffer.
type View struct {
	Offset int
	Length int
}

// End returns the index right after the last element of the view.
func (v View) End() int {
	return v.Offset + v.Length
}

// Slice returns the part of the buffer the view points to.
// The returned slice shares the storage with buf.
func (v View) Slice(buf []float64) []float64 {
	return buf[v.Offset:v.End():v.End()]
}

func (v View) check(buf []float64) error {
	if v.Offset < 0 || v.Length < 0 || v.End() > len(buf) {
		return sizeMismatch("range [%d,%d) out of buffer of size %d", v.Offset, v.End(), len(buf))
	}
	return nil
}
