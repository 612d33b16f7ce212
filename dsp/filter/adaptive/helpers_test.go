package adaptive

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

// plant is the unknown system of the identification tests, in FIR order.
var plant = []float64{0.5, -0.3, 0.2, 0.1}

// identification returns white input, the plant's response to it, and the
// weights a window-ordered filter should converge to.
func identification(length int, noise float64) (desired, input, want []float64) {
	input = testutil.DeterministicNoise(1, 1, length)
	desired = testutil.PlantOutput(plant, input)
	if noise > 0 {
		n := testutil.DeterministicNoise(2, noise, length)
		for i := range desired {
			desired[i] += n[i]
		}
	}
	return desired, input, testutil.Reversed(plant)
}

func mustRun(t *testing.T, f *Filter, desired, input []float64) {
	t.Helper()
	if err := f.Run(desired, input); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func mustWeights(t *testing.T, f *Filter) []float64 {
	t.Helper()
	w, err := f.Weights()
	if err != nil {
		t.Fatalf("Weights: %v", err)
	}
	return w
}

// recordingLogger captures warnings for assertions.
type recordingLogger struct {
	warnings []string
	debug    []string
}

func (l *recordingLogger) Trace(string)          {}
func (l *recordingLogger) Tracef(string, ...any) {}
func (l *recordingLogger) Debug(msg string)      { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(string)          {}
func (l *recordingLogger) Infof(string, ...any) {}
func (l *recordingLogger) Warn(msg string)      { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Error(string)          {}
func (l *recordingLogger) Errorf(string, ...any) {}
