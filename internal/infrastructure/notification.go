package infrastructure

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ydownloader/internal/domain"
)

// commandRunner runs an external notifier command
type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// NotificationService sends desktop notifications when downloads end
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    commandRunner
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		logger: logger,
		run:    runCommand,
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if n.config == nil || !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var err error
	switch n.config.Method {
	case "osascript":
		err = n.run("osascript", "-e", osaScript(title, message, n.config.Sound))
	case "notify-send":
		err = n.run("notify-send", "--app-name=ydownloader", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyDownloadCompleted sends notification when a download completes
func (n *NotificationService) NotifyDownloadCompleted(title string, files int, outputDir string) {
	message := fmt.Sprintf("%s: %d file(s) saved to %s", truncateString(title, 40), files, outputDir)
	_ = n.Send("Download Completed", message)
}

// NotifyDownloadFailed sends notification when a download fails
func (n *NotificationService) NotifyDownloadFailed(url string, err error) {
	message := fmt.Sprintf("Failed: %s", truncateString(url, 40))
	if err != nil {
		message += " (" + truncateString(err.Error(), 60) + ")"
	}
	_ = n.Send("Download Failed", message)
}

func osaScript(title, message string, sound bool) string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, osaEscape(message), osaEscape(title))
	if sound {
		script += ` sound name "default"`
	}
	return script
}

// osaEscape escapes a value for an AppleScript string literal
func osaEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
