package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-narrowphase/pkg/physics"
)

func TestValidateBody(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name    string
		body    *physics.Body
		wantErr error
	}{
		{"valid circle", physics.NewCircleBody(physics.Vec2(1, 2), 3), nil},
		{"zero radius", physics.NewCircleBody(physics.Vec2(0, 0), 0), nil},
		{"valid box", physics.NewBoxBody(physics.Vec2(1, 2), physics.Vec2(3, 4)), nil},
		{"nil body", nil, ErrNilBody},
		{"nil shape", &physics.Body{}, ErrNilShape},
		{"nan position", physics.NewCircleBody(physics.Vec2(nan, 0), 1), ErrNonFinite},
		{"inf radius", physics.NewCircleBody(physics.Vec2(0, 0), inf), ErrNonFinite},
		{"negative radius", physics.NewCircleBody(physics.Vec2(0, 0), -1), ErrNegativeRadius},
		{"negative extent", physics.NewBoxBody(physics.Vec2(0, 0), physics.Vec2(-1, 2)), ErrNegativeExtent},
		{"inf extent", physics.NewBoxBody(physics.Vec2(0, 0), physics.Vec2(1, inf)), ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBody(tt.body)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAABB(t *testing.T) {
	assert.NoError(t, ValidateAABB(physics.AABB{Min: physics.Vec2(-1, -1), Max: physics.Vec2(1, 1)}))
	assert.NoError(t, ValidateAABB(physics.AABB{Min: physics.Vec2(2, 2), Max: physics.Vec2(2, 2)}))
	assert.ErrorIs(t, ValidateAABB(physics.AABB{Min: physics.Vec2(2, -1), Max: physics.Vec2(1, 1)}), ErrInvertedBox)
	assert.ErrorIs(t, ValidateAABB(physics.AABB{Min: physics.Vec2(-1, 2), Max: physics.Vec2(1, 1)}), ErrInvertedBox)
	assert.ErrorIs(t, ValidateAABB(physics.AABB{Max: physics.Vec2(float32(math.NaN()), 1)}), ErrNonFinite)
}

func TestValidatePair(t *testing.T) {
	ok := physics.NewCircleBody(physics.Vec2(0, 0), 1)
	bad := physics.NewCircleBody(physics.Vec2(0, 0), -1)

	require.NoError(t, ValidatePair(ok, ok))

	err := ValidatePair(ok, bad)
	require.ErrorIs(t, err, ErrNegativeRadius)
	assert.True(t, strings.HasPrefix(err.Error(), "body b:"))

	err = ValidatePair(bad, ok)
	assert.True(t, strings.HasPrefix(err.Error(), "body a:"))
}

func TestValidatePairName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"empty allowed", "", "", false},
		{"simple", "circles", "circles", false},
		{"trimmed", "  box vs circle  ", "box vs circle", false},
		{"punctuation", "case-1_b.v2:(x)", "case-1_b.v2:(x)", false},
		{"too long", strings.Repeat("a", MaxPairNameLen+1), "", true},
		{"control char", "bad\x07name", "", true},
		{"invalid chars", "<script>", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePairName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidatePairCount(t *testing.T) {
	assert.NoError(t, ValidatePairCount(0))
	assert.NoError(t, ValidatePairCount(MaxPairsPerScenario))
	assert.ErrorIs(t, ValidatePairCount(MaxPairsPerScenario+1), ErrTooManyPairs)
}
