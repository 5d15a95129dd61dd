// Package validation checks the caller contract of the narrow-phase tests
// before bodies built from external input reach them.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-narrowphase/pkg/physics"
)

// Scenario size and naming limits
const (
	MaxPairsPerScenario = 10000
	MaxPairNameLen      = 64
)

var validPairNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.:/()]+$`)

// Sentinel errors, checkable with errors.Is
var (
	ErrNilBody        = errors.New("body is nil")
	ErrNilShape       = errors.New("body has no shape")
	ErrNonFinite      = errors.New("value is not finite")
	ErrNegativeRadius = errors.New("circle radius is negative")
	ErrNegativeExtent = errors.New("box half extent is negative")
	ErrInvertedBox    = errors.New("box min exceeds max")
	ErrInvalidName    = errors.New("invalid pair name")
	ErrTooManyPairs   = errors.New("too many pairs")
)

// ValidateBody checks that b is fully specified with finite, non-negative
// dimensions.
func ValidateBody(b *physics.Body) error {
	if b == nil {
		return ErrNilBody
	}
	if b.Shape == nil {
		return ErrNilShape
	}
	if err := validateVector("position", b.Position); err != nil {
		return err
	}

	switch s := b.Shape.(type) {
	case physics.Circle:
		if !isFinite(s.Radius) {
			return fmt.Errorf("radius: %w", ErrNonFinite)
		}
		if s.Radius < 0 {
			return fmt.Errorf("%w: %g", ErrNegativeRadius, s.Radius)
		}
	case physics.Box:
		if err := validateVector("half extent", s.HalfExtent); err != nil {
			return err
		}
		if s.HalfExtent.X < 0 || s.HalfExtent.Y < 0 {
			return fmt.Errorf("%w: (%g, %g)", ErrNegativeExtent, s.HalfExtent.X, s.HalfExtent.Y)
		}
	}
	return nil
}

// ValidateAABB rejects boxes whose corners are non-finite or inverted.
func ValidateAABB(a physics.AABB) error {
	if err := validateVector("min", a.Min); err != nil {
		return err
	}
	if err := validateVector("max", a.Max); err != nil {
		return err
	}
	if a.Min.X > a.Max.X || a.Min.Y > a.Max.Y {
		return fmt.Errorf("%w: min (%g, %g) max (%g, %g)", ErrInvertedBox, a.Min.X, a.Min.Y, a.Max.X, a.Max.Y)
	}
	return nil
}

// ValidatePair validates both bodies of a pair.
func ValidatePair(a, b *physics.Body) error {
	if err := ValidateBody(a); err != nil {
		return fmt.Errorf("body a: %w", err)
	}
	if err := ValidateBody(b); err != nil {
		return fmt.Errorf("body b: %w", err)
	}
	return nil
}

// ValidatePairName validates and trims a pair name. Empty names are allowed
// and returned unchanged; callers substitute a generated name.
func ValidatePairName(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if len(name) > MaxPairNameLen {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrInvalidName, len(name), MaxPairNameLen)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidName)
	}

	trimmed := strings.TrimSpace(name)
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: control characters", ErrInvalidName)
		}
	}
	if trimmed != "" && !validPairNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, trimmed)
	}
	return trimmed, nil
}

// ValidatePairCount enforces MaxPairsPerScenario.
func ValidatePairCount(n int) error {
	if n > MaxPairsPerScenario {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyPairs, n, MaxPairsPerScenario)
	}
	return nil
}

func validateVector(field string, v physics.Vector2) error {
	if !isFinite(v.X) || !isFinite(v.Y) {
		return fmt.Errorf("%s: %w", field, ErrNonFinite)
	}
	return nil
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
