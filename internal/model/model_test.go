package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"uppercase hex", "AAAA1111", "AAAA1111", true},
		{"lowercase normalised", "deadbeef", "DEADBEEF", true},
		{"surrounding whitespace", "  ab12  ", "AB12", true},
		{"minimum length", "AB12", "AB12", true},
		{"maximum length", strings.Repeat("A", 50), strings.Repeat("A", 50), true},
		{"too short", "A1", "", false},
		{"too long", strings.Repeat("A", 51), "", false},
		{"non-hex characters", "XYZ12345", "", false},
		{"empty", "", "", false},
		{"hex with separator", "AA:BB:CC", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTag(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "John Doe", "John Doe", true},
		{"trimmed", "  John Doe  ", "John Doe", true},
		{"unicode", "Jörg Müller", "Jörg Müller", true},
		{"max length", strings.Repeat("a", 100), strings.Repeat("a", 100), true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"too long", strings.Repeat("a", 101), "", false},
		{"control character", "John\x00Doe", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName_NFCNormalisation(t *testing.T) {
	// Decomposed o + combining diaeresis folds to the composed form.
	got, err := ValidateName("Jo\u0308rg")
	require.NoError(t, err)
	assert.Equal(t, "Jörg", got)
}

func TestActionOpposite(t *testing.T) {
	assert.Equal(t, ActionOut, ActionIn.Opposite())
	assert.Equal(t, ActionIn, ActionOut.Opposite())
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionIn.Valid())
	assert.True(t, ActionOut.Valid())
	assert.False(t, Action("").Valid())
	assert.False(t, Action("IN").Valid())
}
