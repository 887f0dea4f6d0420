// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names reserved for the backend's own channels in connection endpoints.
const (
	InputName  = "in"
	OutputName = "out"
)

// Patch describes a synthesis graph: the units to create and how they are
// connected to each other and to the backend's channels.
type Patch struct {
	Units       []UnitSpec   `yaml:"units"`
	Connections []Connection `yaml:"connections"`

	// Dir resolves relative UnitSpec.File paths. Load sets it to the
	// directory of the patch file.
	Dir string `yaml:"-"`
}

// UnitSpec describes one unit. Kind selects the factory in a
// units.Registry; the remaining fields are passed to it.
type UnitSpec struct {
	Name     string             `yaml:"name"`
	Kind     string             `yaml:"kind"`
	Channels int                `yaml:"channels,omitempty"`
	MaxDelay float64            `yaml:"max_delay,omitempty"`
	File     string             `yaml:"file,omitempty"`
	Loop     bool               `yaml:"loop,omitempty"`
	Params   map[string]float32 `yaml:"params,omitempty"`
}

// Connection joins two endpoints written as "name" or "name:port". Port 0 is
// implied when omitted. "in:N" is backend input N and "out:N" backend output N.
type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// endpoint is a parsed connection end.
type endpoint struct {
	unit string
	port int
}

func parseEndpoint(s string) (endpoint, error) {
	name, portStr, hasPort := strings.Cut(strings.TrimSpace(s), ":")
	if name == "" {
		return endpoint{}, fmt.Errorf("%w: %q", ErrBadEndpoint, s)
	}

	ep := endpoint{unit: name}
	if hasPort {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 0 {
			return endpoint{}, fmt.Errorf("%w: %q has an invalid port", ErrBadEndpoint, s)
		}
		ep.port = port
	}
	return ep, nil
}

// Parse decodes a YAML patch and validates its names and endpoints. Unknown
// fields are rejected.
func Parse(data []byte) (*Patch, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Patch
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the patch file at path.
func Load(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	return p, nil
}

// Marshal encodes the patch as YAML.
func (p *Patch) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks that unit names are unique and not reserved, every unit
// has a kind, and every connection refers to a declared unit or to the
// backend channels on the correct side.
func (p *Patch) Validate() error {
	names := make(map[string]bool, len(p.Units))
	for i, u := range p.Units {
		switch {
		case u.Name == "":
			return fmt.Errorf("%w: unit %d has no name", ErrInvalidPatch, i)
		case u.Name == InputName || u.Name == OutputName:
			return fmt.Errorf("%w: %q", ErrReservedName, u.Name)
		case strings.Contains(u.Name, ":"):
			return fmt.Errorf("%w: unit name %q contains ':'", ErrInvalidPatch, u.Name)
		case u.Kind == "":
			return fmt.Errorf("%w: unit %q has no kind", ErrInvalidPatch, u.Name)
		case names[u.Name]:
			return fmt.Errorf("%w: %q", ErrDuplicateName, u.Name)
		}
		names[u.Name] = true
	}

	for _, c := range p.Connections {
		from, err := parseEndpoint(c.From)
		if err != nil {
			return err
		}
		to, err := parseEndpoint(c.To)
		if err != nil {
			return err
		}

		if from.unit == OutputName {
			return fmt.Errorf("%w: %q cannot be a source", ErrBadEndpoint, c.From)
		}
		if to.unit == InputName {
			return fmt.Errorf("%w: %q cannot be a destination", ErrBadEndpoint, c.To)
		}
		if from.unit != InputName && !names[from.unit] {
			return fmt.Errorf("%w: %q", ErrUnknownUnit, from.unit)
		}
		if to.unit != OutputName && !names[to.unit] {
			return fmt.Errorf("%w: %q", ErrUnknownUnit, to.unit)
		}
	}
	return nil
}
