package strutils_test

import (
	"testing"

	"github.com/siegestats/backend/internal/strutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProfileID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		input      string
		normalized string
		err        bool
	}{
		{name: "already normalized", input: "12345678-1234-1234-1234-123456789012", normalized: "12345678-1234-1234-1234-123456789012"},
		{name: "uppercase", input: "ABCDEF78-1234-1234-1234-123456789012", normalized: "abcdef78-1234-1234-1234-123456789012"},
		{name: "no dashes", input: "12345678123412341234123456789012", normalized: "12345678-1234-1234-1234-123456789012"},
		{name: "empty", input: "", err: true},
		{name: "not hex", input: "1234567g-1234-1234-1234-123456789012", err: true},
		{name: "too short", input: "12345678-1234", err: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			normalized, err := strutils.NormalizeProfileID(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.normalized, normalized)
		})
	}
}

func TestProfileIDIsNormalized(t *testing.T) {
	t.Parallel()

	assert.True(t, strutils.ProfileIDIsNormalized("12345678-1234-1234-1234-123456789012"))
	assert.False(t, strutils.ProfileIDIsNormalized("12345678123412341234123456789012"))
	assert.False(t, strutils.ProfileIDIsNormalized("ABCDEF78-1234-1234-1234-123456789012"))
	assert.False(t, strutils.ProfileIDIsNormalized("not-a-uuid"))
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pengu.g2", strutils.NormalizeUsername("Pengu.G2"))
	assert.Equal(t, "shaiiko", strutils.NormalizeUsername("  ShaiiKo "))
}
