// SPDX-License-Identifier: EPL-2.0

// Package formats wires the format decoders into an audio.Registry.
package formats

import (
	"fmt"
	"os"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/formats/aiff"
	"github.com/ik5/rtsynth/formats/mp3"
	"github.com/ik5/rtsynth/formats/vorbis"
	"github.com/ik5/rtsynth/formats/wav"
)

// Register adds every decoder under its usual file extensions.
func Register(r *audio.Registry) {
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
}

// NewRegistry returns a registry with every decoder registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	Register(r)
	return r
}

// LoadClip decodes the whole file at path with the decoder registered for
// its extension.
func LoadClip(r *audio.Registry, path string) (*audio.Clip, error) {
	dec, err := r.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	clip, err := audio.ReadClip(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return clip, nil
}
