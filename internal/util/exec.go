package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/pot2go/internal/ui"
)

const (
	// CmdTimeout is the default time a backend command may take before it is killed
	CmdTimeout = 2 * time.Second

	PlaceholderValue = "%value%"
)

func SafeCmdExecution(executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", ctx.Err()
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// ReplaceValuePlaceholder returns a copy of args with every occurrence of
// PlaceholderValue substituted by the given value.
func ReplaceValuePlaceholder(args []string, value int) []string {
	result := make([]string, 0, len(args))
	for _, arg := range args {
		result = append(result, strings.ReplaceAll(arg, PlaceholderValue, strconv.Itoa(value)))
	}
	return result
}
