// Package notify delivers user-facing notifications. The view layer
// renders them; the services only decide what to say and how loudly.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a single user-visible message.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier receives user-visible messages raised by the services.
type Notifier interface {
	Success(message string)
	Info(message string)
	Warning(message string)
	Error(message string)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info().Str("severity", string(SeveritySuccess)).Msg(message)
}

func (n *LogNotifier) Info(message string) {
	n.logger.Info().Str("severity", string(SeverityInfo)).Msg(message)
}

func (n *LogNotifier) Warning(message string) {
	n.logger.Warn().Str("severity", string(SeverityWarning)).Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error().Str("severity", string(SeverityError)).Msg(message)
}

// Recorder keeps notifications in memory so they can be drained by the
// HTTP surface and inspected in tests.
type Recorder struct {
	mu      sync.Mutex
	pending []Notification
	next    Notifier
}

// NewRecorder creates a recorder. If next is non-nil every notification
// is also forwarded to it.
func NewRecorder(next Notifier) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) add(severity Severity, message string) {
	r.mu.Lock()
	r.pending = append(r.pending, Notification{Severity: severity, Message: message})
	r.mu.Unlock()
}

func (r *Recorder) Success(message string) {
	r.add(SeveritySuccess, message)
	if r.next != nil {
		r.next.Success(message)
	}
}

func (r *Recorder) Info(message string) {
	r.add(SeverityInfo, message)
	if r.next != nil {
		r.next.Info(message)
	}
}

func (r *Recorder) Warning(message string) {
	r.add(SeverityWarning, message)
	if r.next != nil {
		r.next.Warning(message)
	}
}

func (r *Recorder) Error(message string) {
	r.add(SeverityError, message)
	if r.next != nil {
		r.next.Error(message)
	}
}

// Drain returns all pending notifications and clears the queue.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}
