package util

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by emcfan.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	var file = filePath

	file, err := filepath.EvalSymlinks(file)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		mode := info.Mode()
		groupWrite := mode & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ExpandHomeDir resolves a leading "~" in the given path to the home directory of the current user
func ExpandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return path, err
	}
	return filepath.Join(currentUser.HomeDir, path[1:]), nil
}

func ReadIntFromFile(path string) (value int, err error) {
	text, err := readTrimmed(path)
	if err != nil {
		return -1, err
	}
	value, err = strconv.Atoi(text)
	return value, err
}

func ReadFloatFromFile(path string) (value float64, err error) {
	text, err := readTrimmed(path)
	if err != nil {
		return -1, err
	}
	value, err = strconv.ParseFloat(text, 64)
	return value, err
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return "", fmt.Errorf("file is empty: %s", path)
	}
	return text, nil
}

// WriteIntToFileAtomic writes a single integer to the given path, replacing the
// file atomically so readers never observe a partially written value.
func WriteIntToFileAtomic(value int, path string) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	valueAsString := fmt.Sprintf("%d", value)
	valueReader := strings.NewReader(valueAsString)
	return atomic.WriteFile(path, valueReader)
}
