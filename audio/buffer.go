// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SampleBuffer is one channel's worth of samples for one block.
// Its length is fixed when it is created and never changes.
type SampleBuffer struct {
	samples []float32
}

// NewSampleBuffer allocates a zeroed buffer of size samples.
func NewSampleBuffer(size int) *SampleBuffer {
	return &SampleBuffer{samples: make([]float32, size)}
}

func (b *SampleBuffer) Len() int { return len(b.samples) }

func (b *SampleBuffer) At(i int) float32 { return b.samples[i] }

func (b *SampleBuffer) Set(i int, v float32) { b.samples[i] = v }

// CopyFrom overwrites the whole buffer with src.
// It panics if len(src) differs from the buffer length.
func (b *SampleBuffer) CopyFrom(src []float32) {
	if len(src) != len(b.samples) {
		panic(fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(src), len(b.samples)))
	}
	copy(b.samples, src)
}

// Clear sets every sample to zero.
func (b *SampleBuffer) Clear() { clear(b.samples) }

// Samples exposes the backing storage for in-place processing.
// Callers must not append to or reslice beyond the returned slice.
func (b *SampleBuffer) Samples() []float32 { return b.samples }

// View returns a read-only window onto the buffer.
func (b *SampleBuffer) View() View { return View{s: b.samples} }

// View is a read-only window onto a SampleBuffer. It shares storage with the
// buffer, so its contents change when the buffer is next written.
type View struct {
	s []float32
}

func (v View) Len() int { return len(v.s) }

func (v View) At(i int) float32 { return v.s[i] }

// CopyTo copies the samples into dst and returns the number copied.
func (v View) CopyTo(dst []float32) int { return copy(dst, v.s) }

// Equal reports whether both views hold the same samples.
func (v View) Equal(o View) bool {
	if len(v.s) != len(o.s) {
		return false
	}
	for i := range v.s {
		if v.s[i] != o.s[i] {
			return false
		}
	}
	return true
}
