package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{474, 3},
		{475, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.xp), "xp=%d", tt.xp)
	}
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPToNextLevel(1))
	assert.Equal(t, 150, XPToNextLevel(2))
	assert.Equal(t, 225, XPToNextLevel(3))
	assert.Equal(t, 100, XPToNextLevel(0))
}

func TestAddXP(t *testing.T) {
	xp, level, up := AddXP(90, 1, 15)
	assert.Equal(t, 105, xp)
	assert.Equal(t, 2, level)
	assert.True(t, up)
	assert.Equal(t, 5, XPInLevel(xp, level))

	_, _, up = AddXP(105, 2, 10)
	assert.False(t, up)
}

func TestLevelTitle(t *testing.T) {
	assert.Equal(t, "🌾 Iniciante Verde", LevelTitle(1))
	assert.Equal(t, "🍃 Eco Entusiasta", LevelTitle(5))
	assert.Equal(t, "🏆 Lenda Eco", LevelTitle(80))
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, AgeAt(birth, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeAt(birth, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
}
