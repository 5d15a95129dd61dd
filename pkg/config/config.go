// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-narrowphase/pkg/physics"
	"github.com/opd-ai/go-narrowphase/pkg/validation"
)

// Shape kinds accepted in scenario files
const (
	KindCircle = "circle"
	KindBox    = "box"
)

var (
	ErrUnknownShapeKind  = errors.New("unknown shape kind")
	ErrMissingExtent     = errors.New("box needs halfExtent or min/max")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ScenarioConfig lists the body pairs to evaluate
type ScenarioConfig struct {
	Name      string       `json:"name" yaml:"name"`
	Workers   int          `json:"workers,omitempty" yaml:"workers,omitempty"`
	Tolerance float32      `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Pairs     []PairConfig `json:"pairs" yaml:"pairs"`
}

// PairConfig describes two bodies and, optionally, the expected outcome
type PairConfig struct {
	Name   string       `json:"name" yaml:"name"`
	A      BodyConfig   `json:"a" yaml:"a"`
	B      BodyConfig   `json:"b" yaml:"b"`
	Expect *Expectation `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// BodyConfig describes a circle or a box. Boxes take either HalfExtent or
// Min/Max corners relative to Position.
type BodyConfig struct {
	Kind       string        `json:"kind" yaml:"kind"`
	Position   VectorConfig  `json:"position" yaml:"position"`
	Radius     float32       `json:"radius,omitempty" yaml:"radius,omitempty"`
	HalfExtent *VectorConfig `json:"halfExtent,omitempty" yaml:"halfExtent,omitempty"`
	Min        *VectorConfig `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *VectorConfig `json:"max,omitempty" yaml:"max,omitempty"`
}

// VectorConfig is a 2D vector in config files
type VectorConfig struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Expectation is the outcome a pair is expected to produce. Normal and
// Penetration are only compared when set.
type Expectation struct {
	Collides    bool          `json:"collides" yaml:"collides"`
	Normal      *VectorConfig `json:"normal,omitempty" yaml:"normal,omitempty"`
	Penetration *float32      `json:"penetration,omitempty" yaml:"penetration,omitempty"`
}

// Vector converts to a physics vector
func (v VectorConfig) Vector() physics.Vector2 {
	return physics.Vector2{X: v.X, Y: v.Y}
}

// Vec builds a VectorConfig
func Vec(x, y float32) VectorConfig {
	return VectorConfig{X: x, Y: y}
}

// Build converts the description into a validated physics body
func (b BodyConfig) Build() (*physics.Body, error) {
	body, err := b.construct()
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateBody(body); err != nil {
		return nil, err
	}
	return body, nil
}

func (b BodyConfig) construct() (*physics.Body, error) {
	switch strings.ToLower(strings.TrimSpace(b.Kind)) {
	case KindCircle:
		return physics.NewCircleBody(b.Position.Vector(), b.Radius), nil
	case KindBox:
		switch {
		case b.HalfExtent != nil:
			return physics.NewBoxBody(b.Position.Vector(), b.HalfExtent.Vector()), nil
		case b.Min != nil && b.Max != nil:
			aabb := physics.AABB{Min: b.Min.Vector(), Max: b.Max.Vector()}
			if err := validation.ValidateAABB(aabb); err != nil {
				return nil, err
			}
			return &physics.Body{Position: b.Position.Vector(), Shape: physics.BoxFromAABB(aabb)}, nil
		default:
			return nil, ErrMissingExtent
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeKind, b.Kind)
	}
}

// Build creates both bodies of the pair and validates them together
func (p PairConfig) Build() (a, b *physics.Body, err error) {
	if a, err = p.A.construct(); err != nil {
		return nil, nil, fmt.Errorf("body a: %w", err)
	}
	if b, err = p.B.construct(); err != nil {
		return nil, nil, fmt.Errorf("body b: %w", err)
	}
	if err := validation.ValidatePair(a, b); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Validate checks the scenario-level settings. Pairs are checked when they
// are built.
func (c *ScenarioConfig) Validate() error {
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance)
	}
	return validation.ValidatePairCount(len(c.Pairs))
}

// LoadJSON decodes a scenario from JSON
func LoadJSON(r io.Reader) (*ScenarioConfig, error) {
	var c ScenarioConfig
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML decodes a scenario from YAML
func LoadYAML(r io.Reader) (*ScenarioConfig, error) {
	var c ScenarioConfig
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig loads a scenario from a .json, .yaml or .yml file
func LoadConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *ScenarioConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = LoadJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		cfg, err = LoadYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes a scenario, choosing the format from the extension
func SaveConfig(config *ScenarioConfig, path string) error {
	if config == nil {
		return errors.New("config is nil")
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func float32Ptr(f float32) *float32 { return &f }

func circle(x, y, r float32) BodyConfig {
	return BodyConfig{Kind: KindCircle, Position: Vec(x, y), Radius: r}
}

func box(x, y, hx, hy float32) BodyConfig {
	he := Vec(hx, hy)
	return BodyConfig{Kind: KindBox, Position: Vec(x, y), HalfExtent: &he}
}

// DefaultConfig returns a scenario covering the reference cases of each test
func DefaultConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Name:      "reference",
		Workers:   4,
		Tolerance: 1e-5,
		Pairs: []PairConfig{
			{
				Name: "circle-circle overlap",
				A:    circle(0, 0, 5),
				B:    circle(6, 0, 5),
				Expect: &Expectation{
					Collides:    true,
					Normal:      &VectorConfig{X: 1, Y: 0},
					Penetration: float32Ptr(4),
				},
			},
			{
				Name:   "circle-circle apart",
				A:      circle(0, 0, 1),
				B:      circle(10, 0, 1),
				Expect: &Expectation{Collides: false},
			},
			{
				Name: "circle-circle concentric",
				A:    circle(2, 2, 3),
				B:    circle(2, 2, 1),
				Expect: &Expectation{
					Collides:    true,
					Normal:      &VectorConfig{X: 1, Y: 0},
					Penetration: float32Ptr(3),
				},
			},
			{
				Name: "box-box x axis",
				A:    box(0, 0, 2, 2),
				B:    box(3, 0, 2, 2),
				Expect: &Expectation{
					Collides:    true,
					Normal:      &VectorConfig{X: 1, Y: 0},
					Penetration: float32Ptr(1),
				},
			},
			{
				Name: "box-box tie",
				A:    box(0, 0, 2, 2),
				B:    box(1, 1, 2, 2),
				Expect: &Expectation{
					Collides:    true,
					Normal:      &VectorConfig{X: 0, Y: 1},
					Penetration: float32Ptr(3),
				},
			},
			{
				Name: "box-circle outside",
				A:    box(0, 0, 3, 3),
				B:    circle(5, 0, 2),
				Expect: &Expectation{
					Collides:    true,
					Normal:      &VectorConfig{X: 1, Y: 0},
					Penetration: float32Ptr(0),
				},
			},
			{
				Name:   "box-circle inside",
				A:      box(0, 0, 3, 3),
				B:      circle(1, 0.5, 0),
				Expect: &Expectation{Collides: true},
			},
			{
				Name: "circle-box reversed",
				A:    circle(5, 0, 2),
				B:    box(0, 0, 3, 3),
				Expect: &Expectation{
					Collides: true,
					Normal:   &VectorConfig{X: -1, Y: 0},
				},
			},
		},
	}
}
