package adaptive

import (
	"fmt"
	"testing"
)

func BenchmarkRun(b *testing.B) {
	desired, input, _ := identification(1024, 0.01)
	for _, algo := range Algorithms() {
		for _, taps := range []int{8, 32} {
			b.Run(fmt.Sprintf("%v/taps=%d", algo, taps), func(b *testing.B) {
				f, err := New(algo, Zeros(taps))
				if err != nil {
					b.Fatal(err)
				}
				b.SetBytes(int64(len(input) * 8))
				for b.Loop() {
					f.Reset()
					if err := f.Run(desired, input); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkAssembleWindow(b *testing.B) {
	input := make([]float64, 4096)
	window := make([]float64, 64)
	for b.Loop() {
		for i := range input {
			assembleWindow(window, input, i, TapOrderWindow)
		}
	}
}
