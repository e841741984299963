package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupAtExit_NothingOpen(t *testing.T) {
	// GIVEN
	openPortsMu.Lock()
	count := len(openPorts)
	openPortsMu.Unlock()

	// WHEN
	CleanupAtExit()

	// THEN
	assert.Equal(t, 0, count)
	assert.Empty(t, openPorts)
}
