// Package store persists named particle system presets across platforms
// using gdata-backed storage. Presets are SystemConfig records encoded as
// YAML.
//
// A nil gdata manager puts the store into degraded in-memory mode: presets
// survive the process but not a restart. This mirrors how the engine treats
// storage problems generally — degraded, never fatal.
package store

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/ember/pkg/config"
)

// presetObject is the gdata object holding every preset property.
const presetObject = "particle_presets"

// PresetStore saves and loads named particle system configurations.
type PresetStore struct {
	manager *gdata.Manager
	// memory is the degraded-mode fallback and a write-through cache of
	// preset names for List.
	memory map[string][]byte
}

// NewPresetStore returns a store over the given gdata manager. manager may
// be nil; the store then works in memory only.
func NewPresetStore(manager *gdata.Manager) *PresetStore {
	if manager == nil {
		log.Printf("[PresetStore] no storage manager, presets are in-memory only")
	}
	return &PresetStore{
		manager: manager,
		memory:  make(map[string][]byte),
	}
}

// Save serializes the config and stores it under name, overwriting any
// existing preset with that name.
func (ps *PresetStore) Save(name string, cfg *config.SystemConfig) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if cfg == nil {
		return fmt.Errorf("preset %q: config is nil", name)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	ps.memory[name] = data
	if ps.manager == nil {
		return nil
	}
	if err := ps.manager.SaveObjectProp(presetObject, name, data); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	return nil
}

// Load reads, parses and validates the named preset.
func (ps *PresetStore) Load(name string) (*config.SystemConfig, error) {
	data, ok := ps.memory[name]
	if !ok && ps.manager != nil && ps.manager.ObjectPropExists(presetObject, name) {
		var err error
		data, err = ps.manager.LoadObjectProp(presetObject, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset %q: %w", name, err)
		}
		ps.memory[name] = data
		ok = true
	}
	if !ok {
		return nil, fmt.Errorf("preset %q not found", name)
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid preset %q: %w", name, err)
	}
	return cfg, nil
}

// Exists reports whether a preset with the given name is stored.
func (ps *PresetStore) Exists(name string) bool {
	if _, ok := ps.memory[name]; ok {
		return true
	}
	return ps.manager != nil && ps.manager.ObjectPropExists(presetObject, name)
}

// List returns the names of the presets seen by this store, sorted.
func (ps *PresetStore) List() []string {
	names := make([]string, 0, len(ps.memory))
	for name := range ps.memory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
