// SPDX-License-Identifier: EPL-2.0

package utils

// FullScale returns the magnitude that maps to 1.0 for a signed PCM bit depth.
// Unknown depths fall back to 16-bit.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntToFloat normalises a signed PCM value of the given bit depth to [-1, 1).
func IntToFloat(v int, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}

// FloatToInt clamps x to [-1, 1] and scales it to a signed PCM value of the
// given bit depth. The positive peak is full scale minus one so 1.0 never
// overflows.
func FloatToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := float64(FullScale(bitDepth)) - 1
	return int(float64(x) * scale)
}
