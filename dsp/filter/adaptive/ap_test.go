package adaptive

import (
	"testing"

	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

func TestAP_Converges(t *testing.T) {
	desired, input, want := identification(3000, 0)
	f, err := NewAP(Zeros(4), 0.5, 1e-3, 3)
	if err != nil {
		t.Fatal(err)
	}
	mustRun(t, f, desired, input)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), want, 1e-5)

	diag, _ := f.Diagnostics()
	if diag.SingularFallbacks != 0 || diag.SkippedUpdates != 0 {
		t.Fatalf("unexpected fallbacks on white input: %+v", diag)
	}
	if diag.Steps != 3000 {
		t.Fatalf("steps: got %d, want 3000", diag.Steps)
	}
}

func TestAP_SingularFallback(t *testing.T) {
	// Constant input and no diagonal loading make every projection matrix
	// rank deficient.
	log := &recordingLogger{}
	f, err := NewAP(Zeros(4), 0.5, 0, 3, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Run(testutil.DC(2, 64), testutil.DC(1, 64)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	w := mustWeights(t, f)
	testutil.RequireFinite(t, w)
	out, _ := f.Output()
	testutil.RequireFinite(t, out)

	diag, _ := f.Diagnostics()
	if diag.SingularFallbacks == 0 {
		t.Fatal("expected singular fallbacks")
	}
	if diag.SkippedUpdates != 0 {
		t.Fatalf("skipped updates: %d", diag.SkippedUpdates)
	}
	if len(log.debug) == 0 {
		t.Fatal("expected a fallback summary in the debug log")
	}
}

func TestAP_CorrelatedInputStaysFinite(t *testing.T) {
	input := testutil.DeterministicSine(440, 8000, 1, 2000)
	desired := testutil.PlantOutput(plant, input)
	f, _ := NewAP(Zeros(6), 0.3, 1e-6, 4)
	mustRun(t, f, desired, input)
	testutil.RequireFinite(t, mustWeights(t, f))

	errSig, _ := f.ErrorSignal()
	var tail float64
	for _, e := range errSig[1900:] {
		tail += e * e
	}
	if tail/100 > 1e-6 {
		t.Fatalf("tail MSE %v, want < 1e-6", tail/100)
	}
}

func TestAP_OrderOneIsNLMS(t *testing.T) {
	desired, input, _ := identification(500, 0.01)
	ap, _ := NewAP(Zeros(4), 0.4, nlmsRegularization, 1)
	nlms, _ := NewNLMS(Zeros(4), 0.4)
	mustRun(t, ap, desired, input)
	mustRun(t, nlms, desired, input)

	testutil.RequireSliceNearlyEqual(t, mustWeights(t, ap), mustWeights(t, nlms), 1e-9)
	a, _ := ap.Output()
	b, _ := nlms.Output()
	testutil.RequireSliceNearlyEqual(t, a, b, 1e-9)
}

func TestAP_ReportsNewestProjection(t *testing.T) {
	// With frozen weights (mu = 0) the reported output is w·x of the newest
	// window, whatever the order.
	input := []float64{9, 1, 2, 3, 4}
	w := []float64{1, 10}
	f, _ := NewAP(Weights(w), 0, 0.1, 3)
	mustRun(t, f, make([]float64, 5), input)
	out, _ := f.Output()
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 10, 21, 32, 43}, 1e-12)
}
