// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/formats"
	"github.com/ik5/rtsynth/graph"
	"github.com/ik5/rtsynth/units"
)

// Target receives the edits of a patch. *rtsynth.Backend implements it.
type Target interface {
	AddUnit(u graph.Unit) (graph.NodeID, error)
	Connect(from, to graph.Endpoint) error
}

// Builder turns patches into queued graph edits.
type Builder struct {
	Units   *units.Registry
	Formats *audio.Registry
	Logger  *slog.Logger
}

// NewBuilder returns a builder that knows every unit kind in package units
// and every decoder in package formats.
func NewBuilder() *Builder {
	return &Builder{
		Units:   units.DefaultRegistry(),
		Formats: formats.NewRegistry(),
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// Apply builds every unit of p, queues it on t, then queues every
// connection. It returns the node ID of each unit by name. The edits take
// effect on the target's next Update; the graph itself reports any edit it
// rejects there.
//
// When Apply fails part way, the edits already queued stay queued.
func (b *Builder) Apply(p *Patch, t Target) (map[string]graph.NodeID, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[string]graph.NodeID, len(p.Units))
	for _, spec := range p.Units {
		u, err := b.build(p, spec)
		if err != nil {
			return ids, fmt.Errorf("unit %q: %w", spec.Name, err)
		}

		id, err := t.AddUnit(u)
		if err != nil {
			return ids, fmt.Errorf("unit %q: %w", spec.Name, err)
		}
		ids[spec.Name] = id

		b.logger().Debug("patch unit queued",
			slog.String("name", spec.Name),
			slog.String("kind", spec.Kind),
			slog.Uint64("node", uint64(id)),
		)
	}

	for _, c := range p.Connections {
		from, to := resolve(c.From, ids, true), resolve(c.To, ids, false)
		if err := t.Connect(from, to); err != nil {
			return ids, fmt.Errorf("connection %s -> %s: %w", c.From, c.To, err)
		}
	}
	return ids, nil
}

func (b *Builder) build(p *Patch, spec UnitSpec) (graph.Unit, error) {
	cfg := units.Config{
		Channels: spec.Channels,
		MaxDelay: spec.MaxDelay,
		Loop:     spec.Loop,
		Params:   spec.Params,
	}

	if spec.File != "" {
		path := spec.File
		if !filepath.IsAbs(path) && p.Dir != "" {
			path = filepath.Join(p.Dir, path)
		}

		clip, err := formats.LoadClip(b.Formats, path)
		if err != nil {
			return nil, err
		}
		cfg.Clip = clip

		b.logger().Info("patch clip loaded",
			slog.String("unit", spec.Name),
			slog.String("file", path),
			slog.Int("sample_rate", clip.SampleRate),
			slog.Int("channels", len(clip.Channels)),
			slog.Float64("seconds", clip.Duration()),
		)
	}

	return b.Units.New(spec.Kind, cfg)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// resolve maps a validated endpoint string to a graph endpoint.
func resolve(s string, ids map[string]graph.NodeID, source bool) graph.Endpoint {
	ep, _ := parseEndpoint(s)

	switch {
	case source && ep.unit == InputName:
		return graph.Input(ep.port)
	case !source && ep.unit == OutputName:
		return graph.Output(ep.port)
	default:
		return graph.Port(ids[ep.unit], ep.port)
	}
}
