package common

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

func TestSuitStyle(t *testing.T) {
	t.Parallel()

	red := SuitStyle(variant.Suit{Name: "Red"})
	assert.Equal(t, lipgloss.Color("#CD0000"), red.GetForeground())

	reversed := SuitStyle(variant.Suit{Name: "Red Reversed", Reversed: true})
	assert.Equal(t, red.GetForeground(), reversed.GetForeground())

	plain := SuitStyle(variant.Suit{Name: "Mystery"})
	assert.Equal(t, lipgloss.NoColor{}, plain.GetForeground())
}
