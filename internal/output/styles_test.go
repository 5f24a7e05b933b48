package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle_KnownStatuses(t *testing.T) {
	for _, status := range []string{StatusCreated, StatusUpdated, StatusUnchanged, StatusFailed} {
		t.Run(status, func(t *testing.T) {
			assert.NotEqual(t, lipgloss.NewStyle(), StatusStyle(status))
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	assert.Equal(t, "x", StatusStyle("bogus").Render("x"))
}

func TestFormatStatusLine(t *testing.T) {
	line := FormatStatusLine("src/router.ts", StatusUpdated, 30)

	assert.Contains(t, line, "src/router.ts")
	assert.Contains(t, line, "updated")
	assert.GreaterOrEqual(t, lipgloss.Width(line), 30)
}

func TestFormatStatusLine_MinimumPadding(t *testing.T) {
	long := strings.Repeat("a", 40)
	line := FormatStatusLine(long, StatusCreated, 10)

	assert.Contains(t, line, long+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	out := FormatCheckmark("Module OrderItem created")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "Module OrderItem created")
}
