package adaptive

import (
	"testing"

	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

func TestAssembleWindow(t *testing.T) {
	input := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		i          int
		wantWindow []float64
		wantFIR    []float64
	}{
		{0, []float64{0, 0, 0}, []float64{0, 0, 0}},
		{1, []float64{0, 0, 2}, []float64{2, 0, 0}},
		{2, []float64{0, 2, 3}, []float64{3, 2, 0}},
		{3, []float64{2, 3, 4}, []float64{4, 3, 2}},
		{4, []float64{3, 4, 5}, []float64{5, 4, 3}},
	}

	dst := make([]float64, 3)
	for _, tt := range tests {
		assembleWindow(dst, input, tt.i, TapOrderWindow)
		testutil.RequireSliceNearlyEqual(t, dst, tt.wantWindow, 0)
		assembleWindow(dst, input, tt.i, TapOrderFIR)
		testutil.RequireSliceNearlyEqual(t, dst, tt.wantFIR, 0)
	}
}

func TestAssembleWindow_FirstSampleNeverUsed(t *testing.T) {
	input := []float64{100, 0, 0, 0, 0, 0}
	dst := make([]float64, 4)
	for i := range input {
		assembleWindow(dst, input, i, TapOrderWindow)
		for k, v := range dst {
			if v != 0 {
				t.Fatalf("i=%d slot %d: input[0] leaked into window (%v)", i, k, v)
			}
		}
	}
}

func TestAssembleWindow_OverwritesStaleSlots(t *testing.T) {
	dst := []float64{9, 9, 9}
	assembleWindow(dst, []float64{1, 2}, 0, TapOrderWindow)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{0, 0, 0}, 0)
}
