package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(filePath, []byte("46250\n"), 0644)
	require.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 46250, value)
}

func TestReadFloatFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(filePath, []byte(" 46.25 "), 0644)
	require.NoError(t, err)

	// WHEN
	value, err := ReadFloatFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 46.25, value)
}

func TestReadIntFromEmptyFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(filePath, []byte(""), 0644)
	require.NoError(t, err)

	// WHEN
	_, err = ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromMissingFile(t *testing.T) {
	// WHEN
	_, err := ReadIntFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "pwm")

	// WHEN
	err := WriteIntToFileAtomic(84, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 84, value)

	// WHEN
	err = WriteIntToFileAtomic(255, filePath)

	// THEN
	assert.NoError(t, err)
	value, err = ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 255, value)
}

func TestExpandHomeDirWithoutTilde(t *testing.T) {
	// WHEN
	result, err := ExpandHomeDir("/sys/class/thermal/thermal_zone0/temp")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/sys/class/thermal/thermal_zone0/temp", result)
}

func TestFileHasPermissionsOtherHasWritePermission(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root to change file ownership")
	}

	// GIVEN
	filePath := filepath.Join(t.TempDir(), "testfile")

	filePerm := os.FileMode(0o702)
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerm)
	require.NoError(t, err)
	defer file.Close()
	err = os.Chown(filePath, 0, 1000)
	assert.NoError(t, err)
	err = os.Chmod(filePath, filePerm)
	assert.NoError(t, err)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.Equal(t, false, result)
	assert.Error(t, err)
}

func TestFileHasPermissionsNotOwnedByRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("files created by root are owned by root")
	}

	// GIVEN
	filePath := filepath.Join(t.TempDir(), "testfile")
	err := os.WriteFile(filePath, []byte("#!/bin/sh\necho 42\n"), 0o700)
	require.NoError(t, err)

	// WHEN
	result, err := CheckFilePermissionsForExecution(filePath)

	// THEN
	assert.False(t, result)
	assert.EqualError(t, err, "owner is not root")
}
