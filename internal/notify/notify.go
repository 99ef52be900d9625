package notify

import "log/slog"

// Level classifies a user-facing notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier delivers fire-and-forget toast messages. No return value is
// consumed anywhere; implementations must never block the caller.
type Notifier interface {
	Notify(message string, level Level)
}

// AudioSink plays a named sound cue, best effort. A missing audio backend
// must never surface as an error to the session.
type AudioSink interface {
	PlayCue(name string)
}

// SlogNotifier logs notifications; the websocket event stream carries them
// to the client for rendering.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(message string, level Level) {
	n.logger.Info("notification", "level", string(level), "message", message)
}

// SlogAudio records cue requests at debug level and never fails.
type SlogAudio struct {
	logger *slog.Logger
}

func NewSlogAudio(logger *slog.Logger) *SlogAudio {
	return &SlogAudio{logger: logger}
}

func (a *SlogAudio) PlayCue(name string) {
	a.logger.Debug("audio cue", "name", name)
}
