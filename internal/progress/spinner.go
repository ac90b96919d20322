package progress

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated indicator while a slow operation runs. On
// non-TTY output it degrades to nothing so logs stay clean.
type Spinner struct {
	inner *spinner.Spinner
}

// NewSpinner creates a spinner with the given message. The symbol set is
// chosen from the detected terminal capabilities.
func NewSpinner(message string) *Spinner {
	caps := DetectTerminalCapabilities()
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{inner: s}
}

// Start begins the animation. No-op without a terminal.
func (s *Spinner) Start() {
	if s.inner != nil {
		s.inner.Start()
	}
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if s.inner != nil {
		s.inner.Stop()
	}
}
