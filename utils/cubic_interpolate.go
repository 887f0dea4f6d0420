// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// CubicInterpolate performs cubic interpolation
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	// Catmull-Rom spline interpolation
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// CubicAt reads buf at the fractional index pos.
// Neighbours that fall outside buf are clamped to the first or last sample,
// so reading at an integer index returns that sample exactly.
func CubicAt(buf []float32, pos float64) float32 {
	n := len(buf)
	if n == 0 {
		return 0
	}

	i := int(math.Floor(pos))
	frac := float32(pos - float64(i))

	at := func(k int) float32 {
		if k < 0 {
			return buf[0]
		}
		if k >= n {
			return buf[n-1]
		}
		return buf[k]
	}

	return CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), frac)
}

// CubicAtRing is CubicAt for circular buffers: indices wrap around len(buf).
// It does not allocate and is safe to call from an audio callback.
func CubicAtRing(buf []float32, pos float64) float32 {
	n := len(buf)
	if n == 0 {
		return 0
	}

	i := int(math.Floor(pos))
	frac := float32(pos - float64(i))

	i0 := wrap(i-1, n)
	i1 := wrap(i, n)
	i2 := wrap(i+1, n)
	i3 := wrap(i+2, n)

	return CubicInterpolate(buf[i0], buf[i1], buf[i2], buf[i3], frac)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
