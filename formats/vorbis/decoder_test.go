// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

// mockOggVorbisReader serves interleaved samples, at most step values per
// read, and reports values read like oggvorbis.Reader does.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	step       int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples))
	if m.step > 0 {
		n = min(n, m.step)
	}
	copy(buf, m.samples[:n])
	m.samples = m.samples[n:]
	return n, nil
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) / float32(n)
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not Ogg Vorbis data"),
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Decode() error = %v, want ErrNotVorbisFile", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{sampleRate: 48000, channels: 2}}

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", src.BufSize())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		total    int
		step     int
		dst      int
	}{
		{"mono", 1, 100, 0, 32},
		{"stereo", 2, 100, 0, 32},
		{"stereo odd dst", 2, 100, 0, 33},
		{"six channels", 6, 120, 0, 64},
		{"short decoder reads", 2, 100, 6, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := ramp(tt.total)
			src := &source{dec: &mockOggVorbisReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    slices.Clone(want),
				step:       tt.step,
			}}

			var got []float32
			buf := make([]float32, tt.dst)
			for {
				n, err := src.ReadSamples(buf)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() n = %d, not a whole number of frames", n)
				}
				got = append(got, buf[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if !slices.Equal(got, want) {
				t.Errorf("read %d samples, want %d identical", len(got), len(want))
			}
		})
	}
}

func TestSource_ReadSamples_ShorterThanFrame(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 4, samples: ramp(8)}}
	n, err := src.ReadSamples(make([]float32, 3))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 2, err: io.ErrUnexpectedEOF}}
	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := ramp(8192)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := &source{dec: &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples}}
		_, _ = src.ReadSamples(dst)
	}
}
