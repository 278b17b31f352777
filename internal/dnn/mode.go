package dnn

import (
	"fmt"
	"strings"
)

// OutputMode defines how the values of a layer are turned into probabilities.
type OutputMode int

const (
	Direct OutputMode = iota
	Sigmoid
	Softmax
)

func (m OutputMode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Sigmoid:
		return "sigmoid"
	case Softmax:
		return "softmax"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseOutputMode resolves the output mode from its name.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct":
		return Direct, nil
	case "sigmoid":
		return Sigmoid, nil
	case "softmax":
		return Softmax, nil
	}
	return Direct, fmt.Errorf("unknown output mode: %s", s)
}

// MarshalText encodes the mode by name.
func (m OutputMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes the mode from its name.
func (m *OutputMode) UnmarshalText(b []byte) error {
	mm, err := ParseOutputMode(string(b))
	if err != nil {
		return err
	}
	*m = mm
	return nil
}
