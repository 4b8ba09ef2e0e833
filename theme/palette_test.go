package theme

import (
	"strings"
	"testing"

	"simon-piano/game"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGPL(t *testing.T) {
	gpl := "GIMP Palette\nName: two\nColumns: 2\n#\n  0   0   0\tblack\n255 255 255\twhite\nbogus line\n"
	p, err := ParseGPL(strings.NewReader(gpl), "two.gpl")
	require.NoError(t, err)
	assert.Equal(t, "two", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)

	assert.Equal(t, RGB{127, 127, 127}, p.Lookup(0.5))
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{255, 255, 255}, p.Index(9))
}

func TestParseGPLEmpty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\n"), "empty.gpl")
	assert.ErrorContains(t, err, "empty.gpl")
}

func TestDefaultPalette(t *testing.T) {
	p, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "plasma", p.Name)
	assert.Len(t, p.Colors, 11)

	_, err = LoadOrDefault("/nonexistent/palette.gpl")
	assert.Error(t, err)
}

func TestStatusColors(t *testing.T) {
	th := New(DefaultPalette())
	assert.Equal(t, th.Success(), th.StatusColor(game.PlayingCorrect))
	assert.Equal(t, th.Active(), th.StatusColor(game.FeedbackIncorrect))
	assert.Equal(t, th.Muted(), th.StatusColor(game.Waiting))
	assert.Equal(t, lipgloss.Color("#0d0887"), th.BG())
}
