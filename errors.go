// SPDX-License-Identifier: EPL-2.0

package rtsynth

import (
	"errors"

	"github.com/ik5/rtsynth/audio"
)

// Construction errors, returned by New before anything is allocated.
var (
	ErrInvalidSampleRate   = errors.New("sample rate must be a positive finite number")
	ErrInvalidBlockSize    = errors.New("block size must be positive")
	ErrInvalidChannelCount = errors.New("channel count must not be negative")
)

// Contract violations. The backend panics with an error wrapping one of
// these; they are caller bugs, not runtime conditions to recover from.
var (
	ErrDestroyed         = errors.New("backend used after Close")
	ErrChannelOutOfRange = audio.ErrChannelOutOfRange
	ErrBlockSizeMismatch = audio.ErrLengthMismatch
)

// Render errors.
var (
	ErrSampleRateMismatch = errors.New("source sample rate does not match backend")
	ErrNothingToRender    = errors.New("nothing to render")
)
