//go:build linux

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesFilter(t *testing.T) {
	assert.True(t, matchesFilter("AT Translated Set 2 keyboard", nil))
	assert.True(t, matchesFilter("AT Translated Set 2 keyboard", []string{"KEYBOARD"}))
	assert.True(t, matchesFilter("Logitech USB Receiver", []string{"mouse", "logitech"}))
	assert.False(t, matchesFilter("Power Button", []string{"keyboard"}))
}
