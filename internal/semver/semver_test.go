package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/reltag/cli/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1.2.3", Version{1, 2, 3}},
		{"v1.2.3", Version{1, 2, 3}},
		{"V1.2.3", Version{1, 2, 3}},
		{"0.0.0", Version{0, 0, 0}},
		{"10.20.30", Version{10, 20, 30}},
		// git describe output: trailing text is truncated per component
		{"v3.2.1-1-gabc123", Version{3, 2, 1}},
		{"1.0.0-dirty", Version{1, 0, 0}},
		{"  1.2.3", Version{1, 2, 3}},
		// single-character components are trusted as bare digits
		{"1.2.3", Version{1, 2, 3}},
		{"9.0.1", Version{9, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"a.b.c",
		"..",
		"1..3",
		"x1.2.3",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrMalformedVersion)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	versions := []Version{
		{0, 0, 0},
		{1, 2, 3},
		{12, 0, 99},
		{999, 999, 999},
	}

	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			got, err := Parse(v.String())
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestParseStrict(t *testing.T) {
	v, err := ParseStrict("2.0.0")
	require.NoError(t, err)
	assert.Equal(t, Version{2, 0, 0}, v)

	for _, input := range []string{"v2.0.0", "2.0", "2.0.0-rc.1", "2.0.0+meta", "2.0.0-1-gabc"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseStrict(input)
			assert.ErrorIs(t, err, oerrors.ErrMalformedVersion)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.2.3", Version{1, 2, 3}.String())
	assert.Equal(t, "0.0.0", Version{}.String())
	assert.Equal(t, "v1.2.3", Version{1, 2, 3}.Tag())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.9.9", "2.0.0", -1},
		{"2.0.0", "1.9.9", 1},
		{"1.2.0", "1.2.1", -1},
		{"1.3.0", "1.2.9", 1},
		{"0.0.1", "0.0.2", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a := MustParse(tt.a)
			b := MustParse(tt.b)
			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, tt.want < 0, Less(a, b))
		})
	}
}
