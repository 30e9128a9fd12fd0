// Package control resolves pre-built control schemas for well-known EDI
// standards. The schema documents ship embedded in the binary; lookups
// never touch caller-supplied streams.
package control

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"sync"

	schemaerrors "github.com/edistack/edischema/errors"
	"github.com/edistack/edischema/internal/reader"
	"github.com/edistack/edischema/internal/schema"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml schemas
var content embed.FS

type manifest struct {
	Standards map[string][]manifestEntry `yaml:"standards"`
}

type manifestEntry struct {
	Version  string `yaml:"version"`
	Location string `yaml:"location"`
}

// Registry maps standard/version pairs to embedded control schemas,
// parsing each document at most once.
type Registry struct {
	standards map[string][]manifestEntry

	mu    sync.Mutex
	cache map[string]*schema.Schema
}

// NewRegistry loads the embedded manifest.
func NewRegistry() (*Registry, error) {
	raw, err := content.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read control schema manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse control schema manifest: %w", err)
	}

	standards := make(map[string][]manifestEntry, len(m.Standards))
	for standard, entries := range m.Standards {
		sorted := make([]manifestEntry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
		standards[strings.ToUpper(standard)] = sorted
	}

	return &Registry{
		standards: standards,
		cache:     make(map[string]*schema.Schema),
	}, nil
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Lookup resolves a control schema from the default registry.
func Lookup(standard string, version []string) (*schema.Schema, error) {
	reg, err := defaultRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Lookup(standard, version)
}

// Lookup returns the control schema for the standard whose registered
// version is the greatest one not exceeding the requested version. The
// version parts are joined in order, matching how interchange headers
// carry split version fields.
func (r *Registry) Lookup(standard string, version []string) (*schema.Schema, error) {
	requested := strings.Join(version, "")
	entries := r.standards[strings.ToUpper(standard)]

	var match *manifestEntry
	for i := range entries {
		if entries[i].Version <= requested {
			match = &entries[i]
		}
	}
	if match == nil {
		return nil, schemaerrors.NewSchemaf(schemaerrors.ErrControlNotFound,
			"no control schema registered for standard %s version %s", standard, requested)
	}

	return r.load(match.Location)
}

func (r *Registry) load(location string) (*schema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[location]; ok {
		return cached, nil
	}

	raw, err := content.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read control schema %s: %w", location, err)
	}

	sr, err := reader.Dispatch(xml.NewDecoder(bytes.NewReader(raw)), reader.Config{})
	if err != nil {
		return nil, fmt.Errorf("load control schema %s: %w", location, err)
	}
	sch, err := reader.Assemble(sr)
	if err != nil {
		return nil, fmt.Errorf("load control schema %s: %w", location, err)
	}

	r.cache[location] = sch
	return sch, nil
}
