// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	maxFrames    int // Caps frames returned per read, 0 means no cap
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource produces Ramp(sample, channel) so every frame is distinguishable.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Ramp)
}

// WithChunk limits how many frames a single ReadSamples call returns, to
// exercise callers that must loop.
func (m *MockSource) WithChunk(frames int) *MockSource {
	m.maxFrames = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { m.closed = true; return nil }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.maxFrames > 0 {
		framesToWrite = min(framesToWrite, m.maxFrames)
	}

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// StallSource never ends and never yields samples: every read returns 0, nil.
type StallSource struct {
	sampleRate int
	channels   int
	Reads      int
}

func NewStallSource(sampleRate, channels int) *StallSource {
	return &StallSource{sampleRate: sampleRate, channels: channels}
}

func (s *StallSource) SampleRate() int { return s.sampleRate }
func (s *StallSource) Channels() int   { return s.channels }
func (s *StallSource) BufSize() int    { return 4096 }
func (s *StallSource) Close() error    { return nil }

func (s *StallSource) ReadSamples([]float32) (int, error) {
	s.Reads++
	return 0, nil
}
