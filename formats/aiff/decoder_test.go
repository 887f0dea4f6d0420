// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// writeAIFF encodes interleaved int samples with go-audio and returns the
// file contents.
func writeAIFF(t *testing.T, sampleRate, bitDepth, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := goaiff.NewEncoder(f, sampleRate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	f.Close()

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	data := []int{0, 16384, -16384, 32767, -32768, 8192}
	file := writeAIFF(t, 44100, 16, 2, data)

	src, err := Decoder{}.Decode(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(data) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(data))
	}
	for i, v := range data {
		want := float32(v) / 32768
		if math.Abs(float64(buf[i]-want)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want)
		}
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = %d, %v, want 0, EOF", n, err)
	}
}

func TestDecoder_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		peak  int
	}{
		{8, 64},
		{24, 4194304},
		{32, 1073741824},
	}

	for _, tt := range tests {
		file := writeAIFF(t, 8000, tt.depth, 1, []int{tt.peak, -tt.peak})

		src, err := Decoder{}.Decode(bytes.NewReader(file))
		if err != nil {
			t.Fatalf("%d-bit: Decode() error = %v", tt.depth, err)
		}

		buf := make([]float32, 2)
		n, _ := src.ReadSamples(buf)
		if n != 2 || math.Abs(float64(buf[0]-0.5)) > 1e-6 || math.Abs(float64(buf[1]+0.5)) > 1e-6 {
			t.Errorf("%d-bit: samples = %v (n=%d), want [0.5 -0.5]", tt.depth, buf[:n], n)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not AIFF data"),
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	errs := []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout}
	for i := range errs {
		for j := range errs {
			if i != j && errors.Is(errs[i], errs[j]) {
				t.Errorf("%v matches %v", errs[i], errs[j])
			}
		}
	}
}
