// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat     = errors.New("unknown audio format")
	ErrChannelOutOfRange = errors.New("channel index out of range")
	ErrLengthMismatch    = errors.New("sample count does not match block size")
	ErrInvalidRate       = errors.New("sample rate must be positive")
	ErrNoChannels        = errors.New("source has no channels")
)
