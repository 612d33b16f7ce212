package adaptive

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

func TestLMS_Converges(t *testing.T) {
	desired, input, want := identification(5000, 0)
	f, err := NewLMS(Zeros(4), 0.05)
	if err != nil {
		t.Fatal(err)
	}
	mustRun(t, f, desired, input)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), want, 1e-5)

	errSig, _ := f.ErrorSignal()
	for i := len(errSig) - 100; i < len(errSig); i++ {
		if math.Abs(errSig[i]) > 1e-5 {
			t.Fatalf("error[%d] = %v, want ~0", i, errSig[i])
		}
	}
}

func TestNLMS_Converges(t *testing.T) {
	desired, input, want := identification(3000, 0)
	f, err := NewNLMS(Zeros(4), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	mustRun(t, f, desired, input)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), want, 1e-6)
}

func TestNLMS_AmplitudeInvariantStep(t *testing.T) {
	// Normalization makes the trajectory independent of a common scale on
	// input and desired.
	desired, input, _ := identification(300, 0)
	a, _ := NewNLMS(Zeros(4), 0.3)
	b, _ := NewNLMS(Zeros(4), 0.3)
	mustRun(t, a, desired, input)
	mustRun(t, b, testutil.Scaled(desired, 100), testutil.Scaled(input, 100))
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, a), mustWeights(t, b), 1e-9)
}

func TestNLMSFilter_MatchesReversedNLMS(t *testing.T) {
	desired, input, _ := identification(400, 0.05)
	init := []float64{0.3, -0.2, 0.1, 0.4}

	windowed, err := NewNLMS(Weights(init), 0.7)
	if err != nil {
		t.Fatal(err)
	}
	firOrder, err := NewNLMSFilter(Weights(testutil.Reversed(init)), 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if firOrder.TapOrder() != TapOrderFIR {
		t.Fatalf("tap order: got %v, want fir", firOrder.TapOrder())
	}
	mustRun(t, windowed, desired, input)
	mustRun(t, firOrder, desired, input)

	testutil.RequireSliceNearlyEqual(t, mustWeights(t, firOrder), testutil.Reversed(mustWeights(t, windowed)), 1e-9)
	a, _ := windowed.Output()
	b, _ := firOrder.Output()
	testutil.RequireSliceNearlyEqual(t, a, b, 1e-9)

	ca, _ := windowed.Coefficients()
	cb, _ := firOrder.Coefficients()
	testutil.RequireSliceNearlyEqual(t, ca, cb, 1e-9)
}

func TestLeakyLMS_DecaysWithoutExcitation(t *testing.T) {
	f, err := NewLeakyLMS(Weights([]float64{1, -2, 4}), 0.1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	zeros := make([]float64, 3)
	mustRun(t, f, zeros, zeros)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), []float64{0.125, -0.25, 0.5}, 1e-15)
}

func TestLMS_LeakageOptionMatchesLeakyLMS(t *testing.T) {
	desired, input, _ := identification(200, 0)
	a, _ := NewLMS(Zeros(4), 0.05, WithLeakage(0.98))
	b, _ := NewLeakyLMS(Zeros(4), 0.05, 0.98)
	mustRun(t, a, desired, input)
	mustRun(t, b, desired, input)
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, a), mustWeights(t, b), 0)
}

func TestZeroInput_WeightsUnchanged(t *testing.T) {
	constructors := map[string]func(Init, ...Option) (*Filter, error){
		"LMS":   func(in Init, o ...Option) (*Filter, error) { return NewLMS(in, 0.1, o...) },
		"NLMS":  func(in Init, o ...Option) (*Filter, error) { return NewNLMS(in, 0.5, o...) },
		"SSLMS": func(in Init, o ...Option) (*Filter, error) { return NewSSLMS(in, 0.1, o...) },
		"GNGD":  func(in Init, o ...Option) (*Filter, error) { return New(GNGD, in, o...) },
	}
	desired := testutil.DeterministicNoise(5, 1, 64)
	input := make([]float64, 64)

	for name, build := range constructors {
		t.Run(name, func(t *testing.T) {
			f, err := build(Random(6), WithRand(rand.New(rand.NewSource(9))))
			if err != nil {
				t.Fatal(err)
			}
			before := append([]float64(nil), f.weights...)
			mustRun(t, f, desired, input)

			testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), before, 0)
			out, _ := f.Output()
			testutil.RequireSliceNearlyEqual(t, out, make([]float64, 64), 0)
		})
	}
}

func TestSSLMS_SignOnlyUpdate(t *testing.T) {
	// desired stays far above any output so sign(e) is +1 throughout, and a
	// positive scale on the input keeps every sign(x). The trajectories must
	// then match exactly.
	const mu = 0.001
	input := testutil.DeterministicNoise(3, 1, 200)
	desired := testutil.DC(1000, 200)
	loud := testutil.Scaled(input, 10)

	var prev []float64
	for _, n := range []int{10, 11, 50, 51, 200} {
		a, _ := NewSSLMS(Zeros(4), mu)
		b, _ := NewSSLMS(Zeros(4), mu)
		mustRun(t, a, desired[:n], input[:n])
		mustRun(t, b, desired[:n], loud[:n])
		wa, wb := mustWeights(t, a), mustWeights(t, b)
		testutil.RequireSliceNearlyEqual(t, wa, wb, 0)

		// One extra step moves each tap by exactly mu.
		if n == 11 || n == 51 {
			for k := range wa {
				if d := math.Abs(wa[k] - prev[k]); math.Abs(d-mu) > 1e-12 {
					t.Fatalf("n=%d tap %d moved by %v, want %v", n, k, d, mu)
				}
			}
		}
		prev = wa
	}
}

func TestSSLMS_Leakage(t *testing.T) {
	// x = 0 everywhere except the excluded first sample: only leakage acts.
	f, _ := NewSSLMS(Weights([]float64{8, -8}), 0.1, WithLeakage(0.5))
	mustRun(t, f, []float64{5, 5, 5}, []float64{3, 0, 0})
	testutil.RequireSliceNearlyEqual(t, mustWeights(t, f), []float64{1, -1}, 0)
}

func TestSign(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{-3, -1}, {-1e-300, -1}, {0, 0}, {math.Copysign(0, -1), 0}, {2, 1},
	} {
		if got := sign(tt.in); got != tt.want {
			t.Errorf("sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
