// SPDX-License-Identifier: EPL-2.0

package audiotest

// Ramp is a deterministic, channel-tagged waveform: small enough to stay in
// [-1, 1] for a few thousand samples and unique per (sample, channel).
func Ramp(sample, channel int) float32 {
	return float32(sample%1000)/1000 + float32(channel)/10000
}

// Block returns block number k of channel ch filled from Ramp, so that
// consecutive blocks never share content.
func Block(k, blockSize, ch int) []float32 {
	out := make([]float32, blockSize)
	for i := range out {
		out[i] = Ramp(k*blockSize+i, ch)
	}
	return out
}

// Constant returns a block of n copies of v.
func Constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// AllZero reports whether every sample is exactly zero.
func AllZero(s []float32) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}
