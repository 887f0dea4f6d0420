// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams using
// github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("loop.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
// ReadSamples always returns a whole number of frames. A destination shorter
// than one frame reads nothing.
package vorbis
