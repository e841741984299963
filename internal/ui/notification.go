package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"

	UrgencyCritical = "critical"

	appName       = "pot2go"
	notifyTimeout = 5 * time.Second
)

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend shows a desktop notification to the user owning the current X display.
// Failures are only logged.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Warning("Cannot send notification, missing env variable 'DISPLAY'!")
		return
	}

	user, err := displayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}
	userId, err := runNotifyCommand("id", "-u", user)
	if err != nil || len(userId) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	_, err = runNotifyCommand("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", appName,
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err != nil {
		Error("Error sending notification: %v", err)
	}
}

// displayUser finds the login owning display in the output of `who`
func displayUser(display string) (string, error) {
	output, err := runNotifyCommand("who")
	if err != nil {
		return "", fmt.Errorf("unable to find user of display session: %w", err)
	}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("unable to detect user of display session %s", display)
}

func runNotifyCommand(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	output, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(output)), err
}
