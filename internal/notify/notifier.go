// internal/notify/notifier.go
package notify

import (
	"log/slog"
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is the one transient message the UI shows.
type Notification struct {
	Message  string
	Severity Severity
}

// Notifier is a session-lifetime sink for transient user-visible messages.
// Exactly one notification is visible at a time; a new one replaces the
// current one and restarts the auto-dismiss timer. Dismissal happens only
// through the timer or an explicit Dismiss call, never as a side effect of
// other UI activity, so error messages are not lost to stray input.
type Notifier struct {
	mu          sync.Mutex
	current     *Notification
	timer       *time.Timer
	autoDismiss time.Duration
	onChange    func(*Notification)
	logger      *slog.Logger
}

func New(autoDismiss time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{autoDismiss: autoDismiss, logger: logger}
}

// OnChange registers the render callback. It is invoked with the new
// notification on every Notify and with nil on dismissal. Register before
// the first Notify; there is a single consumer (the UI).
func (n *Notifier) OnChange(cb func(*Notification)) {
	n.mu.Lock()
	n.onChange = cb
	n.mu.Unlock()
}

// Notify replaces the visible notification and restarts the dismiss timer.
func (n *Notifier) Notify(message string, severity Severity) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	note := &Notification{Message: message, Severity: severity}
	n.current = note
	if n.autoDismiss > 0 {
		n.timer = time.AfterFunc(n.autoDismiss, func() { n.dismiss(note) })
	}
	cb := n.onChange
	n.mu.Unlock()

	n.logger.Debug("Notification shown", slog.String("severity", string(severity)), slog.String("message", message))
	if cb != nil {
		cb(note)
	}
}

func (n *Notifier) Success(message string) { n.Notify(message, SeveritySuccess) }
func (n *Notifier) Error(message string)   { n.Notify(message, SeverityError) }
func (n *Notifier) Warning(message string) { n.Notify(message, SeverityWarning) }
func (n *Notifier) Info(message string)    { n.Notify(message, SeverityInfo) }

// Dismiss clears the visible notification explicitly.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
	cb := n.onChange
	n.mu.Unlock()
	if cb != nil {
		cb(nil)
	}
}

// dismiss clears note only if it is still the visible one. A notification
// that was already replaced must not clear its successor.
func (n *Notifier) dismiss(note *Notification) {
	n.mu.Lock()
	if n.current != note {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	cb := n.onChange
	n.mu.Unlock()
	if cb != nil {
		cb(nil)
	}
}

// Current returns the visible notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Close stops the pending timer. Used on shutdown.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.mu.Unlock()
}
