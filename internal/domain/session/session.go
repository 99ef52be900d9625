package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/identity"
	"github.com/math-master/backend/internal/notify"
)

// Status is the lifecycle phase of a test attempt.
type Status string

const (
	StatusSetup      Status = "setup"
	StatusActive     Status = "active"
	StatusSubmitting Status = "submitting"
	StatusCompleted  Status = "completed"
)

var (
	// ErrInvalidQuestion signals an answer for a question that is not part
	// of the current test. The session state is left unchanged.
	ErrInvalidQuestion = errors.New("question not in current test")

	// ErrNotActive is returned for answer/navigate/submit calls outside
	// the Active phase.
	ErrNotActive = errors.New("session is not active")

	ErrInvalidDelta = errors.New("navigation delta must be -1 or +1")
)

const (
	lowTimeWarningSeconds = 300
	urgentWarningSeconds  = 60
)

// ConfirmPrompt is the summary presented before an early submission of a
// partially answered test. While the caller holds it, the session stays
// Active.
type ConfirmPrompt struct {
	AnsweredCount    int `json:"answered_count"`
	RemainingCount   int `json:"remaining_count"`
	TimeSpentSeconds int `json:"time_spent_seconds"`
	TimeLeftSeconds  int `json:"time_left_seconds"`
}

// Config carries the collaborators a session needs. Everything is injected;
// the state machine holds no ambient globals.
type Config struct {
	Scheduler TickScheduler
	Notifier  notify.Notifier
	Audio     notify.AudioSink
	Logger    *slog.Logger
	Now       func() time.Time
}

// Session owns the lifecycle of one timed test attempt:
// Setup → Active → Submitting → Completed, with Restart returning to Setup.
// All mutation goes through the mutex; the tick callback and HTTP handlers
// race only on that lock.
type Session struct {
	id      string
	student identity.Student
	cfg     Config

	mu            sync.Mutex
	status        Status
	test          *mocktest.Test
	answers       map[string]string
	currentIndex  int
	timeRemaining int
	startedAt     time.Time
	result        *mocktest.Result
	stopTick      func()

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// New creates a session in the Setup state.
func New(sessionID string, student identity.Student, cfg Config) *Session {
	if cfg.Scheduler == nil {
		cfg.Scheduler = TickerScheduler{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{
		id:      sessionID,
		student: student,
		cfg:     cfg,
		status:  StatusSetup,
		subs:    make(map[int]chan Event),
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Student() identity.Student { return s.student }

// Subscribe registers an event listener. Events are dropped rather than
// queued when the subscriber falls behind, so a slow websocket can never
// stall the timer.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	s.subMu.Lock()
	subID := s.nextSub
	s.nextSub++
	s.subs[subID] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		if _, ok := s.subs[subID]; ok {
			delete(s.subs, subID)
			close(ch)
		}
		s.subMu.Unlock()
	}
}

func (s *Session) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default: // subscriber is behind, drop
		}
	}
}

// eventLocked fills the common event fields from current state.
// Caller must hold s.mu.
func (s *Session) eventLocked(typ EventType) Event {
	total := 0
	if s.test != nil {
		total = len(s.test.Questions)
	}
	return Event{
		Type:                 typ,
		SessionID:            s.id,
		Status:               s.status,
		CurrentIndex:         s.currentIndex,
		AnsweredCount:        len(s.answers),
		TotalQuestions:       total,
		TimeRemainingSeconds: s.timeRemaining,
	}
}

func (s *Session) notify(message string, level notify.Level) {
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.Notify(message, level)
	}
}

func (s *Session) playCue(name string) {
	if s.cfg.Audio != nil {
		s.cfg.Audio.PlayCue(name)
	}
}

// Start transitions Setup → Active with the given test and installs the
// one-second tick. A session that was already Active has its previous
// timer cancelled before the new one is installed, so at most one tick
// schedule exists per session at any instant.
func (s *Session) Start(test *mocktest.Test) error {
	if err := test.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.status == StatusSubmitting {
		s.mu.Unlock()
		return ErrNotActive
	}
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}

	s.test = test
	s.answers = make(map[string]string)
	s.currentIndex = 0
	s.timeRemaining = test.TimeLimitSeconds
	s.startedAt = s.cfg.Now()
	s.result = nil
	s.status = StatusActive
	s.stopTick = s.cfg.Scheduler.Every(time.Second, s.tick)
	ev := s.eventLocked(EventStarted)
	s.mu.Unlock()

	s.publish(ev)
	s.notify("The test has started. Good luck!", notify.LevelSuccess)
	s.playCue("start")

	s.cfg.Logger.Info("test started",
		"session_id", s.id,
		"test_id", test.ID,
		"questions", len(test.Questions),
		"time_limit_seconds", test.TimeLimitSeconds,
	)
	return nil
}

// tick decrements the countdown by one second. Ticks outside the Active
// phase are ignored, which makes the zero-crossing forced submission
// happen exactly once even if a straggling tick fires after submit.
func (s *Session) tick() {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return
	}

	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	remaining := s.timeRemaining
	ev := s.eventLocked(EventTick)

	if remaining == 0 {
		// Forced submission. The final tick frame goes out first so the
		// timer is seen reaching zero; submitLocked flips the status
		// before any other tick can observe Active again.
		s.publish(ev)
		s.publishLockedWarning("Time is up! Submitting your test...", notify.LevelError, "timeup")
		s.submitLocked(true)
		return
	}
	s.mu.Unlock()

	s.publish(ev)

	switch remaining {
	case lowTimeWarningSeconds:
		s.warn("5 minutes left!", notify.LevelWarning, "warning")
	case urgentWarningSeconds:
		s.warn("1 minute left!", notify.LevelError, "urgent")
	}
}

// warn emits a warning toast, cue, and event without holding the lock.
func (s *Session) warn(message string, level notify.Level, cue string) {
	s.mu.Lock()
	ev := s.eventLocked(EventWarning)
	s.mu.Unlock()
	ev.Message = message
	ev.Level = level
	ev.Cue = cue

	s.publish(ev)
	s.notify(message, level)
	s.playCue(cue)
}

// publishLockedWarning is the variant used on the timeout path where the
// lock is already held and submitLocked will release it.
func (s *Session) publishLockedWarning(message string, level notify.Level, cue string) {
	ev := s.eventLocked(EventWarning)
	ev.Message = message
	ev.Level = level
	ev.Cue = cue
	s.publish(ev)
	s.notify(message, level)
	s.playCue(cue)
}

// SelectAnswer upserts the chosen option for a question of the current
// test. It does not advance the current index.
func (s *Session) SelectAnswer(questionID, option string) error {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	if _, ok := s.test.QuestionByID(questionID); !ok {
		s.mu.Unlock()
		s.cfg.Logger.Warn("answer for unknown question rejected",
			"session_id", s.id,
			"question_id", questionID,
		)
		return ErrInvalidQuestion
	}
	s.answers[questionID] = option
	ev := s.eventLocked(EventAnswerSelected)
	s.mu.Unlock()

	s.publish(ev)
	s.playCue("select")
	return nil
}

// Navigate moves the current index by ±1, clamped to the valid range.
// At the boundaries (and always for one-question tests) it is a no-op.
func (s *Session) Navigate(delta int) error {
	if delta != -1 && delta != 1 {
		return ErrInvalidDelta
	}

	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	next := s.currentIndex + delta
	if next < 0 || next >= len(s.test.Questions) {
		s.mu.Unlock()
		return nil
	}
	s.currentIndex = next
	ev := s.eventLocked(EventNavigated)
	s.mu.Unlock()

	s.publish(ev)
	s.playCue("click")
	return nil
}

// Submit finishes the attempt and computes the Result.
//
// Unforced submission of a partially answered test requires explicit
// confirmation: without it, Submit returns a ConfirmPrompt summary and the
// session stays Active. A second Submit after completion is a no-op that
// returns the stored Result.
func (s *Session) Submit(forced, confirmed bool) (*mocktest.Result, *ConfirmPrompt, error) {
	s.mu.Lock()
	switch s.status {
	case StatusCompleted:
		res := s.result
		s.mu.Unlock()
		return res, nil, nil
	case StatusActive:
	default:
		s.mu.Unlock()
		return nil, nil, ErrNotActive
	}

	answered := len(s.answers)
	total := len(s.test.Questions)
	if !forced && !confirmed && answered < total {
		prompt := &ConfirmPrompt{
			AnsweredCount:    answered,
			RemainingCount:   total - answered,
			TimeSpentSeconds: s.test.TimeLimitSeconds - s.timeRemaining,
			TimeLeftSeconds:  s.timeRemaining,
		}
		s.mu.Unlock()
		return nil, prompt, nil
	}

	return s.submitLocked(forced), nil, nil
}

// submitLocked performs the Active → Submitting → Completed transition.
// The tick schedule is cancelled before evaluation so no tick can fire
// during or after submission. Caller must hold s.mu; it is released here.
func (s *Session) submitLocked(forced bool) *mocktest.Result {
	s.status = StatusSubmitting
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}

	timeSpent := s.test.TimeLimitSeconds - s.timeRemaining
	result := mocktest.Evaluate(s.test, s.answers, timeSpent, s.cfg.Now())
	s.result = &result
	s.status = StatusCompleted
	ev := s.eventLocked(EventSubmitted)
	s.mu.Unlock()

	s.publish(ev)
	s.notify("Test complete! See your detailed results below.", notify.LevelSuccess)
	s.playCue("win")

	s.cfg.Logger.Info("test submitted",
		"session_id", s.id,
		"test_id", result.TestID,
		"forced", forced,
		"score", result.Score,
		"accuracy_percent", result.AccuracyPercent,
	)
	return &result
}

// Restart abandons the attempt and returns to Setup, discarding the test
// and answers. It is the only way out of Active other than submission.
func (s *Session) Restart() {
	s.mu.Lock()
	if s.status == StatusSetup {
		s.mu.Unlock()
		return
	}
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
	s.test = nil
	s.answers = nil
	s.currentIndex = 0
	s.timeRemaining = 0
	s.result = nil
	s.status = StatusSetup
	ev := s.eventLocked(EventRestarted)
	s.mu.Unlock()

	s.publish(ev)
	s.cfg.Logger.Info("session restarted", "session_id", s.id)
}

// Snapshot is a point-in-time copy of session state for rendering.
type Snapshot struct {
	ID                   string            `json:"id"`
	Status               Status            `json:"status"`
	Test                 *mocktest.Test    `json:"test,omitempty"`
	Answers              map[string]string `json:"answers"`
	CurrentIndex         int               `json:"current_index"`
	TimeRemainingSeconds int               `json:"time_remaining_seconds"`
	StartedAt            time.Time         `json:"started_at"`
	Result               *mocktest.Result  `json:"result,omitempty"`
}

// Snapshot returns a copy of the current state. The answers map is copied
// so callers cannot mutate live state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return Snapshot{
		ID:                   s.id,
		Status:               s.status,
		Test:                 s.test,
		Answers:              answers,
		CurrentIndex:         s.currentIndex,
		TimeRemainingSeconds: s.timeRemaining,
		StartedAt:            s.startedAt,
		Result:               s.result,
	}
}

// Tick advances the countdown by one second. It exists for schedulers and
// deterministic tests; production ticks arrive through the TickScheduler
// installed by Start.
func (s *Session) Tick() { s.tick() }
