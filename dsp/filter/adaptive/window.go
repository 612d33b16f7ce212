package adaptive

// assembleWindow writes the input window for time index i into dst.
// input[i-j] lands in the window only when i-j > 0, so index 0 is never
// used and the window at i = 0 is all zeros.
func assembleWindow(dst, input []float64, i int, order TapOrder) {
	n := len(dst)
	clear(dst)
	for j := 0; j < n && i-j > 0; j++ {
		if order == TapOrderFIR {
			dst[j] = input[i-j]
		} else {
			dst[n-1-j] = input[i-j]
		}
	}
}
