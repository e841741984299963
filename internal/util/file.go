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
// are safe to use this file for execution by pot2go.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}
	if err != nil {
		return false, err
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false, errors.New("unable to read file ownership")
	}
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		groupWrite := info.Mode() & os.FileMode(0o020)
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & os.FileMode(0o002)
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ExpandHome resolves a leading "~" to the home directory of the current user
func ExpandHome(path string) (string, error) {
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
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteIntToFileAtomic writes a single integer to the given path,
// replacing the file contents in one step.
func WriteIntToFileAtomic(value int, path string) error {
	if evaluatedPath, err := filepath.EvalSymlinks(path); err == nil && len(evaluatedPath) > 0 {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, strings.NewReader(strconv.Itoa(value)))
}
