package keycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"A", A},
		{"a", A},
		{"KEY_LEFTSHIFT", LeftShift},
		{"key_f12", F12},
		{" space ", Space},
		{"escape", Esc},
		{"period", Dot},
		{"57", Space},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "KEY_", "NOPE", "70000"} {
		_, err := Parse(in)
		assert.Error(t, err, "Parse(%q)", in)
	}
}

func TestStringRoundTripsThroughParse(t *testing.T) {
	for c := range names {
		got, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestStringUnnamed(t *testing.T) {
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, "KEY(300)", Code(300).String())
	assert.False(t, Code(300).Known())
	assert.True(t, LeftShift.Known())
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"A", "LEFTSHIFT"}, Names([]Code{A, LeftShift}))
	assert.Empty(t, Names(nil))
}
