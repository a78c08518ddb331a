package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		mode      Mode
		name      string
		minYear   int64
		maxYear   int64
		precision int
		signed    bool
	}{
		{Standard, "standard", 1, 9999, 6, false},
		{Oracle, "oracle", -4712, 9999, 7, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			a.Equal(tc.name, tc.mode.String())
			a.True(tc.mode.Valid())
			a.Equal(tc.minYear, tc.mode.MinYear())
			a.Equal(tc.maxYear, tc.mode.MaxYear())
			a.Equal(tc.precision, tc.mode.MaxPrecision())
			a.Equal(tc.signed, tc.mode.SignedIntervals())

			parsed, err := Parse(tc.name)
			require.NoError(t, err)
			a.Equal(tc.mode, parsed)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	m, err := Parse(" ORACLE ")
	require.NoError(t, err)
	a.Equal(Oracle, m)

	m, err = Parse("")
	require.NoError(t, err)
	a.Equal(Standard, m)

	_, err = Parse("sybase")
	require.EqualError(t, err, `mode: unknown mode "sybase"`)
	require.ErrorIs(t, err, ErrMode)
	a.Equal("Mode(9)", Mode(9).String())
	a.False(Mode(9).Valid())
}

func TestFlagValue(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var m Mode
	require.NoError(t, m.Set("oracle"))
	a.Equal(Oracle, m)
	a.Equal("mode", m.Type())
	require.Error(t, m.Set("nope"))
	a.Equal(Oracle, m)

	text, err := m.MarshalText()
	require.NoError(t, err)
	a.Equal("oracle", string(text))
	require.NoError(t, m.UnmarshalText([]byte("standard")))
	a.Equal(Standard, m)

	_, err = Mode(3).MarshalText()
	require.ErrorIs(t, err, ErrMode)
}
