package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "setpoint")

	// WHEN
	err := WriteIntToFileAtomic(200, path)

	// THEN
	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "200", string(data))
}

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "adc")
	err := os.WriteFile(path, []byte(" 125\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 125, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "adc")
	err := os.WriteFile(path, []byte("  "), 0644)
	assert.NoError(t, err)

	// WHEN
	_, err = ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromFile_Missing(t *testing.T) {
	// WHEN
	value, err := ReadIntFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.Error(t, err)
	assert.Equal(t, -1, value)
}

func TestExpandHome_NoTilde(t *testing.T) {
	// WHEN
	result, err := ExpandHome("/dev/null")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/dev/null", result)
}

func TestCheckFilePermissionsForExecution_Missing(t *testing.T) {
	// WHEN
	result, err := CheckFilePermissionsForExecution(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestReplaceValuePlaceholder(t *testing.T) {
	// GIVEN
	args := []string{"--pot", "0", "--value=%value%"}

	// WHEN
	result := ReplaceValuePlaceholder(args, 42)

	// THEN
	assert.Equal(t, []string{"--pot", "0", "--value=42"}, result)
	assert.Equal(t, "--value=%value%", args[2])
}
