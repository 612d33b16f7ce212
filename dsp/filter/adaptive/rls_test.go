package adaptive

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

func TestRLS_Converges(t *testing.T) {
	desired, input, want := identification(1000, 0)
	f, err := NewRLS(Zeros(4), 0.99, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	mustRun(t, f, desired, input)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), want, 1e-6)
}

func TestRLS_FirstSteps(t *testing.T) {
	// N=1, R = 1/eps = 10, lambda = 0.5.
	// i=0: x=0 y=0 e=0, P=0 g=λ, so R ← R/λ = 20 and w stays 0
	// i=1: x=2 y=0 e=3
	//   P = R·x·x·R = 1600, g = x·R·x + λ = 80.5
	//   R ← (20 - 1600/80.5)/0.5
	//   w ← 0 + 3·R·2
	f, _ := NewRLS(Zeros(1), 0.5, 0.1)
	mustRun(t, f, []float64{0, 3}, []float64{0, 2})

	r := (20 - 1600/80.5) / 0.5
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), []float64{3 * r * 2}, 1e-12)
}

func TestRLS_InverseCorrelationStaysSymmetric(t *testing.T) {
	desired, input, _ := identification(300, 0.01)
	f, _ := NewRLS(Zeros(4), 0.98, 0.1)
	mustRun(t, f, desired, input)

	r := f.rule.(*rlsRule).r
	if !mat.EqualApprox(r, r.T(), 1e-6) {
		t.Fatalf("R drifted from symmetry:\n%v", mat.Formatted(r))
	}
}

func TestRLSAndNLMS_ReachWienerSolution(t *testing.T) {
	// With measurement noise both estimators settle near the plant, which
	// is the Wiener solution for white input.
	desired, input, want := identification(8000, 0.01)

	rls, _ := NewRLS(Zeros(4), 0.999, 0.1)
	nlms, _ := NewNLMS(Zeros(4), 0.2)
	mustRun(t, rls, desired, input)
	mustRun(t, nlms, desired, input)

	for name, f := range map[string]*Filter{"RLS": rls, "NLMS": nlms} {
		rel, err := testutil.RelativeError(mustWeights(t, f), want)
		if err != nil {
			t.Fatal(err)
		}
		if rel > 0.02 {
			t.Errorf("%s: relative weight error %v, want < 0.02", name, rel)
		}
	}
}
