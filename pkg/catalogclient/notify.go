package catalogclient

import "go.uber.org/zap"

// Severity of a user-facing notification.
type Severity string

// Notification severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier shows transient messages to the user. Calls are fire-and-forget.
type Notifier interface {
	Notify(severity Severity, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(severity Severity, message string)

// Notify calls f.
func (f NotifierFunc) Notify(severity Severity, message string) { f(severity, message) }

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message at a level matching severity.
func (n *LogNotifier) Notify(severity Severity, message string) {
	switch severity {
	case SeverityError:
		n.logger.Error(message)
	default:
		n.logger.Info(message, zap.String("severity", string(severity)))
	}
}
