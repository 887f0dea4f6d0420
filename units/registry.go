// SPDX-License-Identifier: EPL-2.0

package units

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/graph"
)

// Config carries construction arguments for a Factory. Factories read only
// the fields that make sense for their kind.
type Config struct {
	Channels int
	MaxDelay float64
	Clip     *audio.Clip
	Loop     bool
	Params   map[string]float32
}

// Factory builds a unit from a Config.
type Factory func(cfg Config) (graph.Unit, error)

// Registry maps unit kind names (e.g., "sine", "delay") to factories.
type Registry struct {
	kinds map[string]Factory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
		mtx:   &sync.Mutex{},
	}
}

// DefaultRegistry knows every unit in this package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("passthrough", func(cfg Config) (graph.Unit, error) {
		return NewPassthrough(cfg.Channels), nil
	})
	r.Register("gain", func(cfg Config) (graph.Unit, error) {
		return NewGain(cfg.Channels, param(cfg, "gain", 1)), nil
	})
	r.Register("constant", func(cfg Config) (graph.Unit, error) {
		return NewConstant(param(cfg, "value", 0)), nil
	})
	r.Register("mix", func(cfg Config) (graph.Unit, error) {
		return NewMix(cfg.Channels), nil
	})
	r.Register("sine", func(cfg Config) (graph.Unit, error) {
		return NewSine(param(cfg, "freq", 440), param(cfg, "amp", 1)), nil
	})
	r.Register("delay", func(cfg Config) (graph.Unit, error) {
		maxDelay := cfg.MaxDelay
		if maxDelay <= 0 {
			maxDelay = 2
		}
		return NewDelay(maxDelay, param(cfg, "time", 0.25)), nil
	})
	r.Register("player", func(cfg Config) (graph.Unit, error) {
		if cfg.Clip == nil {
			return nil, ErrMissingClip
		}
		return NewPlayer(cfg.Clip, cfg.Loop), nil
	})
	return r
}

func (r *Registry) Register(kind string, f Factory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.kinds[strings.ToLower(kind)] = f
}

// New builds a unit of the given kind and applies cfg.Params to it.
func (r *Registry) New(kind string, cfg Config) (graph.Unit, error) {
	r.mtx.Lock()
	f, ok := r.kinds[strings.ToLower(kind)]
	r.mtx.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	u, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", kind, err)
	}

	if len(cfg.Params) > 0 {
		if err := applyParams(u, cfg.Params); err != nil {
			return nil, fmt.Errorf("building %s: %w", kind, err)
		}
	}
	return u, nil
}

// Kinds lists the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func applyParams(u graph.Unit, values map[string]float32) error {
	p, ok := u.(graph.Parameterized)
	if !ok {
		return fmt.Errorf("%w: %s has no parameters", graph.ErrUnknownParameter, u.Name())
	}

	byName := make(map[string]*graph.Param)
	for _, param := range p.Params() {
		byName[param.Name()] = param
	}
	for name, v := range values {
		param, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: %s.%s", graph.ErrUnknownParameter, u.Name(), name)
		}
		param.Set(v)
	}
	return nil
}

func param(cfg Config, name string, def float32) float32 {
	if v, ok := cfg.Params[name]; ok {
		return v
	}
	return def
}
