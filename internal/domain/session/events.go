package session

import "github.com/math-master/backend/internal/notify"

// EventType names a state-change notification emitted by a session.
type EventType string

const (
	EventStarted        EventType = "started"
	EventTick           EventType = "tick"
	EventWarning        EventType = "warning"
	EventAnswerSelected EventType = "answer_selected"
	EventNavigated      EventType = "navigated"
	EventSubmitted      EventType = "submitted"
	EventRestarted      EventType = "restarted"
)

// Event is what the presentation layer subscribes to instead of the session
// reaching into the DOM. It carries enough state to render the timer and
// progress bar without a follow-up snapshot request.
type Event struct {
	Type                 EventType    `json:"type"`
	SessionID            string       `json:"session_id"`
	Status               Status       `json:"status"`
	CurrentIndex         int          `json:"current_index"`
	AnsweredCount        int          `json:"answered_count"`
	TotalQuestions       int          `json:"total_questions"`
	TimeRemainingSeconds int          `json:"time_remaining_seconds"`
	Message              string       `json:"message,omitempty"`
	Level                notify.Level `json:"level,omitempty"`
	Cue                  string       `json:"cue,omitempty"`
}
