package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColorAcceptsWithAndWithoutHash(t *testing.T) {
	a, err := ParseHexColor("#ff0000")
	require.NoError(t, err)

	b, err := ParseHexColor("ff0000")
	require.NoError(t, err)

	r1, g1, bl1 := a.RGB255()
	r2, g2, bl2 := b.RGB255()
	assert.Equal(t, r1, r2)
	assert.Equal(t, g1, g2)
	assert.Equal(t, bl1, bl2)
	assert.EqualValues(t, 255, r1)
	assert.EqualValues(t, 0, g1)
	assert.EqualValues(t, 0, bl1)
}

func TestParseHexColorRejectsGarbage(t *testing.T) {
	_, err := ParseHexColor("not-a-color")
	assert.Error(t, err)
}

func TestForegroundAndBackgroundEscapesCarryRGB(t *testing.T) {
	c, err := ParseHexColor("#112233")
	require.NoError(t, err)

	fg := ForegroundEscape(c)
	bg := BackgroundEscape(c)

	assert.Contains(t, fg, "38;2;")
	assert.Contains(t, bg, "48;2;")
}

func TestInvertWrapsWithReverseVideoAndReset(t *testing.T) {
	out := Invert("hi")
	assert.Equal(t, "\x1b[7mhi\x1b[0m", out)
}
