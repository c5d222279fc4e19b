// Package config decodes the photon_map section of a scene document into the settings
// pkg/tracer and pkg/estimator run with.
package config

import (
	"encoding/json"
	"fmt"
)

// PhotonMapConfig holds every setting under the scene document's "photon_map" key.
type PhotonMapConfig struct {
	Emissions               int     `json:"emissions"`
	CausticFactor           float64 `json:"caustic_factor"`
	MaxRadius               float64 `json:"max_radius"`
	MaxCausticRadius        float64 `json:"max_caustic_radius"`
	KNearestPhotons         int     `json:"k_nearest_photons"`
	MaxPhotonsPerOctreeLeaf int     `json:"max_photons_per_octree_leaf"`
	DirectVisualization     bool    `json:"direct_visualization"`
	UseShadowPhotons        *bool   `json:"use_shadow_photons"`
	NumThreads              int     `json:"num_threads"`
	MaxRayDepth             int     `json:"max_ray_depth"`
	MinRayDepth             int     `json:"min_ray_depth"`
}

// defaults matches the field defaults documented for the photon_map schema. UseShadowPhotons
// is a pointer so that an explicit `false` in the document is distinguishable from an
// absent key, which should fall back to true.
func defaults() PhotonMapConfig {
	trueVal := true
	return PhotonMapConfig{
		KNearestPhotons:  50,
		UseShadowPhotons: &trueVal,
		NumThreads:       0,
		MaxRayDepth:      64,
		MinRayDepth:      3,
	}
}

// document is the minimal shape this package cares about within a larger scene document.
type document struct {
	PhotonMap *PhotonMapConfig `json:"photon_map"`
}

// Parse decodes the photon_map section of a scene document, applying defaults for any
// key the document omits, and validates the result.
func Parse(data []byte) (PhotonMapConfig, error) {
	cfg := defaults()

	var doc struct {
		PhotonMap json.RawMessage `json:"photon_map"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return PhotonMapConfig{}, fmt.Errorf("config: invalid document: %w", err)
	}
	if doc.PhotonMap == nil {
		return PhotonMapConfig{}, fmt.Errorf("config: missing required key %q", "photon_map")
	}

	// decode over the already-populated defaults so omitted keys keep their default value
	if err := json.Unmarshal(doc.PhotonMap, &cfg); err != nil {
		return PhotonMapConfig{}, fmt.Errorf("config: invalid photon_map section: %w", err)
	}

	if cfg.UseShadowPhotons == nil {
		trueVal := true
		cfg.UseShadowPhotons = &trueVal
	}

	return cfg, cfg.validate()
}

func (c PhotonMapConfig) validate() error {
	if c.Emissions <= 0 {
		return fmt.Errorf("config: emissions must be positive, got %d", c.Emissions)
	}
	if c.CausticFactor < 1 {
		return fmt.Errorf("config: caustic_factor must be >= 1, got %v", c.CausticFactor)
	}
	if c.MaxRadius <= 0 {
		return fmt.Errorf("config: max_radius must be positive, got %v", c.MaxRadius)
	}
	if c.MaxCausticRadius <= 0 {
		return fmt.Errorf("config: max_caustic_radius must be positive, got %v", c.MaxCausticRadius)
	}
	if c.MaxPhotonsPerOctreeLeaf <= 0 {
		return fmt.Errorf("config: max_photons_per_octree_leaf must be positive, got %d", c.MaxPhotonsPerOctreeLeaf)
	}
	return nil
}

// ShadowPhotonsEnabled reports the resolved use_shadow_photons value.
func (c PhotonMapConfig) ShadowPhotonsEnabled() bool {
	return c.UseShadowPhotons == nil || *c.UseShadowPhotons
}
