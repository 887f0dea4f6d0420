// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/rtsynth/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("WAV", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	oggDecoder := &mockDecoder{name: "ogg"}
	registry.Register("wav", wavDecoder)
	registry.Register("ogg", oggDecoder)

	tests := []struct {
		path    string
		want    Decoder
		wantErr error
	}{
		{"drums.wav", wavDecoder, nil},
		{"/tmp/pad.OGG", oggDecoder, nil},
		{"voice.flac", nil, ErrUnknownFormat},
		{"noext", nil, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := registry.ForPath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ForPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ForPath(%q) returned wrong decoder", tt.path)
			}
		})
	}

	if got := registry.Formats(); !slices.Equal(got, []string{"ogg", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{ErrInvalidDstSize, ErrUnknownFormat, ErrChannelOutOfRange, ErrLengthMismatch, ErrInvalidRate, ErrNoChannels}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
