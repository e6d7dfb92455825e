package settings

import "sync/atomic"

// Theme is the application-wide visual theme.
type Theme interface {
	SetDark(dark bool)
}

// Switch is an in-process Theme that remembers the last applied mode.
type Switch struct {
	dark    atomic.Bool
	changes atomic.Int64
}

// SetDark applies the display mode.
func (s *Switch) SetDark(dark bool) {
	s.dark.Store(dark)
	s.changes.Add(1)
}

// Dark reports whether dark mode is applied.
func (s *Switch) Dark() bool {
	return s.dark.Load()
}

// Changes returns how many times the theme was applied.
func (s *Switch) Changes() int64 {
	return s.changes.Load()
}
