package session_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/domain/session"
	"github.com/math-master/backend/internal/identity"
	"github.com/math-master/backend/internal/notify"
)

// manualScheduler captures the tick callback so tests can drive time by hand.
type manualScheduler struct {
	fn        func()
	stopCalls int
}

func (m *manualScheduler) Every(interval time.Duration, fn func()) (stop func()) {
	m.fn = fn
	return func() { m.stopCalls++ }
}

func (m *manualScheduler) ticks(n int) {
	for i := 0; i < n; i++ {
		m.fn()
	}
}

type toast struct {
	message string
	level   notify.Level
}

type recorder struct {
	toasts []toast
	cues   []string
}

func (r *recorder) Notify(message string, level notify.Level) {
	r.toasts = append(r.toasts, toast{message, level})
}

func (r *recorder) PlayCue(name string) {
	r.cues = append(r.cues, name)
}

func (r *recorder) hasToast(message string, level notify.Level) bool {
	for _, tst := range r.toasts {
		if tst.message == message && tst.level == level {
			return true
		}
	}
	return false
}

func (r *recorder) hasCue(name string) bool {
	for _, c := range r.cues {
		if c == name {
			return true
		}
	}
	return false
}

func makeTest(n, timeLimitSeconds int) *mocktest.Test {
	questions := make([]mocktest.Question, n)
	for i := range questions {
		questions[i] = mocktest.Question{
			ID:                 fmt.Sprintf("q%d", i+1),
			Text:               fmt.Sprintf("What is %d + %d?", i+1, i+1),
			Options:            []string{"1", "2", "3", "4"},
			CorrectAnswer:      "2",
			Topic:              mocktest.TopicNumbers,
			Difficulty:         mocktest.DifficultyEasy,
			Points:             10,
			RecommendedSeconds: 30,
		}
	}
	return &mocktest.Test{
		ID:               "t1",
		Title:            "Practice Test",
		TimeLimitSeconds: timeLimitSeconds,
		Questions:        questions,
	}
}

func newSession(t *testing.T) (*session.Session, *manualScheduler, *recorder) {
	t.Helper()
	sched := &manualScheduler{}
	rec := &recorder{}
	sess := session.New("s1", identity.Student{Username: "alice", Level: "medium"}, session.Config{
		Scheduler: sched,
		Notifier:  rec,
		Audio:     rec,
	})
	return sess, sched, rec
}

func TestStart_ActivatesSession(t *testing.T) {
	sess, sched, rec := newSession(t)

	if err := sess.Start(makeTest(3, 180)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	snap := sess.Snapshot()
	if snap.Status != session.StatusActive {
		t.Errorf("expected status active, got %q", snap.Status)
	}
	if snap.TimeRemainingSeconds != 180 {
		t.Errorf("expected 180 seconds remaining, got %d", snap.TimeRemainingSeconds)
	}
	if snap.CurrentIndex != 0 {
		t.Errorf("expected current index 0, got %d", snap.CurrentIndex)
	}
	if sched.fn == nil {
		t.Error("expected a tick callback to be installed")
	}
	if !rec.hasCue("start") {
		t.Error("expected the start cue to play")
	}
}

func TestStart_RejectsInvalidTest(t *testing.T) {
	sess, _, _ := newSession(t)

	test := makeTest(2, 120)
	test.Questions[1].CorrectAnswer = "not an option"

	if err := sess.Start(test); !errors.Is(err, mocktest.ErrInvalidTest) {
		t.Fatalf("expected ErrInvalidTest, got %v", err)
	}
	if got := sess.Snapshot().Status; got != session.StatusSetup {
		t.Errorf("expected session to stay in setup, got %q", got)
	}
}

func TestNavigate_ClampsAtBounds(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(2, 120)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Back from the first question is a no-op.
	if err := sess.Navigate(-1); err != nil {
		t.Fatalf("Navigate(-1): %v", err)
	}
	if got := sess.Snapshot().CurrentIndex; got != 0 {
		t.Errorf("expected index 0 after back at start, got %d", got)
	}

	if err := sess.Navigate(1); err != nil {
		t.Fatalf("Navigate(1): %v", err)
	}
	if got := sess.Snapshot().CurrentIndex; got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}

	// Forward from the last question is a no-op.
	if err := sess.Navigate(1); err != nil {
		t.Fatalf("Navigate(1): %v", err)
	}
	if got := sess.Snapshot().CurrentIndex; got != 1 {
		t.Errorf("expected index to stay 1 at end, got %d", got)
	}
}

func TestNavigate_RejectsInvalidDelta(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(2, 120)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, delta := range []int{0, 2, -2, 10} {
		if err := sess.Navigate(delta); !errors.Is(err, session.ErrInvalidDelta) {
			t.Errorf("Navigate(%d): expected ErrInvalidDelta, got %v", delta, err)
		}
	}
}

func TestNavigate_SingleQuestionTest(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(1, 60)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := sess.Navigate(1); err != nil {
		t.Fatalf("Navigate(1): %v", err)
	}
	if err := sess.Navigate(-1); err != nil {
		t.Fatalf("Navigate(-1): %v", err)
	}
	if got := sess.Snapshot().CurrentIndex; got != 0 {
		t.Errorf("expected index to stay 0, got %d", got)
	}
}

func TestSelectAnswer_UpsertsWithoutAdvancing(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(3, 180)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := sess.SelectAnswer("q1", "3"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	snap := sess.Snapshot()
	if got := snap.Answers["q1"]; got != "2" {
		t.Errorf("expected re-selection to overwrite, got %q", got)
	}
	if len(snap.Answers) != 1 {
		t.Errorf("expected exactly one answer, got %d", len(snap.Answers))
	}
	if snap.CurrentIndex != 0 {
		t.Errorf("expected answering not to advance the index, got %d", snap.CurrentIndex)
	}
}

func TestSelectAnswer_UnknownQuestionLeavesStateUnchanged(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(2, 120)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	before := sess.Snapshot()
	if err := sess.SelectAnswer("99", "2"); !errors.Is(err, session.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	after := sess.Snapshot()

	if after.Status != before.Status {
		t.Errorf("status changed: %q -> %q", before.Status, after.Status)
	}
	if len(after.Answers) != len(before.Answers) {
		t.Errorf("answers changed: %v -> %v", before.Answers, after.Answers)
	}
	if after.CurrentIndex != before.CurrentIndex {
		t.Errorf("index changed: %d -> %d", before.CurrentIndex, after.CurrentIndex)
	}
}

func TestTick_WarningAtFiveMinutes(t *testing.T) {
	sess, sched, rec := newSession(t)
	if err := sess.Start(makeTest(1, 302)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sched.ticks(1)
	if rec.hasToast("5 minutes left!", notify.LevelWarning) {
		t.Fatal("warning fired before the 300 second mark")
	}

	sched.ticks(1) // 300 remaining
	if !rec.hasToast("5 minutes left!", notify.LevelWarning) {
		t.Error("expected the 5 minute warning at exactly 300 seconds remaining")
	}
	if !rec.hasCue("warning") {
		t.Error("expected the warning cue")
	}
}

func TestTick_WarningAtOneMinute(t *testing.T) {
	sess, sched, rec := newSession(t)
	if err := sess.Start(makeTest(1, 61)); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sched.ticks(1) // 60 remaining
	if !rec.hasToast("1 minute left!", notify.LevelError) {
		t.Error("expected the 1 minute warning at exactly 60 seconds remaining")
	}
	if !rec.hasCue("urgent") {
		t.Error("expected the urgent cue")
	}
}

func TestTick_ForcedSubmitAtZeroHappensOnce(t *testing.T) {
	sess, sched, rec := newSession(t)
	if err := sess.Start(makeTest(1, 2)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	sched.ticks(2)

	snap := sess.Snapshot()
	if snap.Status != session.StatusCompleted {
		t.Fatalf("expected completed after countdown, got %q", snap.Status)
	}
	if snap.Result == nil {
		t.Fatal("expected a result after forced submission")
	}
	if snap.Result.TimeSpentSeconds != 2 {
		t.Errorf("expected full time limit spent, got %d", snap.Result.TimeSpentSeconds)
	}
	if !rec.hasCue("timeup") {
		t.Error("expected the timeup cue")
	}
	if sched.stopCalls != 1 {
		t.Errorf("expected the tick schedule to be cancelled once, got %d", sched.stopCalls)
	}

	// Straggling ticks after submission must be ignored.
	first := snap.Result
	sched.ticks(5)
	again := sess.Snapshot()
	if again.Status != session.StatusCompleted {
		t.Errorf("status changed after late ticks: %q", again.Status)
	}
	if again.Result != first {
		t.Error("result changed after late ticks")
	}
	if again.TimeRemainingSeconds != 0 {
		t.Errorf("time remaining changed after late ticks: %d", again.TimeRemainingSeconds)
	}
}

func TestSubmit_DoubleSubmitReturnsSameResult(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(2, 120)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := sess.SelectAnswer("q2", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	first, prompt, err := sess.Submit(false, false)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if prompt != nil {
		t.Fatal("expected no confirmation prompt for a fully answered test")
	}
	if first == nil {
		t.Fatal("expected a result")
	}

	second, prompt, err := sess.Submit(false, false)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if prompt != nil {
		t.Fatal("expected no prompt on repeat submission")
	}
	if second != first {
		t.Error("expected the stored result to be returned unchanged")
	}
}

func TestSubmit_IncompleteRequiresConfirmation(t *testing.T) {
	sess, sched, _ := newSession(t)
	if err := sess.Start(makeTest(3, 180)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	sched.ticks(30)

	result, prompt, err := sess.Submit(false, false)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result != nil {
		t.Fatal("expected no result before confirmation")
	}
	if prompt == nil {
		t.Fatal("expected a confirmation prompt")
	}
	if prompt.AnsweredCount != 1 || prompt.RemainingCount != 2 {
		t.Errorf("prompt counts wrong: answered=%d remaining=%d", prompt.AnsweredCount, prompt.RemainingCount)
	}
	if prompt.TimeSpentSeconds != 30 || prompt.TimeLeftSeconds != 150 {
		t.Errorf("prompt timing wrong: spent=%d left=%d", prompt.TimeSpentSeconds, prompt.TimeLeftSeconds)
	}
	if got := sess.Snapshot().Status; got != session.StatusActive {
		t.Errorf("expected session to stay active while unconfirmed, got %q", got)
	}

	result, prompt, err = sess.Submit(false, true)
	if err != nil {
		t.Fatalf("confirmed Submit: %v", err)
	}
	if prompt != nil {
		t.Fatal("expected no prompt on confirmed submission")
	}
	if result == nil {
		t.Fatal("expected a result on confirmed submission")
	}
	if result.TimeSpentSeconds != 30 {
		t.Errorf("expected 30 seconds spent, got %d", result.TimeSpentSeconds)
	}
}

func TestSubmit_BeforeStartReturnsErrNotActive(t *testing.T) {
	sess, _, _ := newSession(t)

	if _, _, err := sess.Submit(false, true); !errors.Is(err, session.ErrNotActive) {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); !errors.Is(err, session.ErrNotActive) {
		t.Errorf("expected ErrNotActive from SelectAnswer, got %v", err)
	}
	if err := sess.Navigate(1); !errors.Is(err, session.ErrNotActive) {
		t.Errorf("expected ErrNotActive from Navigate, got %v", err)
	}
}

func TestRestart_ReturnsToSetup(t *testing.T) {
	sess, sched, _ := newSession(t)
	if err := sess.Start(makeTest(2, 120)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	sess.Restart()

	snap := sess.Snapshot()
	if snap.Status != session.StatusSetup {
		t.Errorf("expected setup after restart, got %q", snap.Status)
	}
	if snap.Test != nil {
		t.Error("expected the test to be discarded")
	}
	if len(snap.Answers) != 0 {
		t.Errorf("expected answers to be discarded, got %v", snap.Answers)
	}
	if sched.stopCalls != 1 {
		t.Errorf("expected the tick schedule to be cancelled, got %d stops", sched.stopCalls)
	}

	// A restarted session can run a fresh attempt.
	if err := sess.Start(makeTest(1, 60)); err != nil {
		t.Fatalf("Start after restart: %v", err)
	}
	if got := sess.Snapshot().Status; got != session.StatusActive {
		t.Errorf("expected active after second start, got %q", got)
	}
}

func TestRestart_AfterCompletionDiscardsResult(t *testing.T) {
	sess, _, _ := newSession(t)
	if err := sess.Start(makeTest(1, 60)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if _, _, err := sess.Submit(false, true); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	sess.Restart()

	snap := sess.Snapshot()
	if snap.Status != session.StatusSetup {
		t.Errorf("expected setup, got %q", snap.Status)
	}
	if snap.Result != nil {
		t.Error("expected the result to be discarded on restart")
	}
}

func TestSubscribe_FinalTickReachesZeroBeforeForcedSubmit(t *testing.T) {
	sess, sched, _ := newSession(t)
	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	if err := sess.Start(makeTest(1, 1)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sched.ticks(1)

	next := func() session.Event {
		select {
		case ev := <-events:
			return ev
		default:
			t.Fatal("expected another event, channel empty")
			return session.Event{}
		}
	}

	if ev := next(); ev.Type != session.EventStarted {
		t.Fatalf("expected started first, got %q", ev.Type)
	}
	tick := next()
	if tick.Type != session.EventTick {
		t.Fatalf("expected a tick frame before the timeout events, got %q", tick.Type)
	}
	if tick.TimeRemainingSeconds != 0 {
		t.Errorf("expected the final tick to show 0 seconds remaining, got %d", tick.TimeRemainingSeconds)
	}
	if ev := next(); ev.Type != session.EventWarning || ev.Cue != "timeup" {
		t.Fatalf("expected the timeup warning after the final tick, got %q (cue %q)", ev.Type, ev.Cue)
	}
	if ev := next(); ev.Type != session.EventSubmitted {
		t.Fatalf("expected submitted last, got %q", ev.Type)
	}
}

func TestSubscribe_ReceivesLifecycleEvents(t *testing.T) {
	sess, sched, _ := newSession(t)
	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	if err := sess.Start(makeTest(1, 60)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.SelectAnswer("q1", "2"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	sched.ticks(1)
	if _, _, err := sess.Submit(false, true); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []session.EventType{
		session.EventStarted,
		session.EventAnswerSelected,
		session.EventTick,
		session.EventSubmitted,
	}
	for _, typ := range want {
		select {
		case ev := <-events:
			if ev.Type != typ {
				t.Fatalf("expected event %q, got %q", typ, ev.Type)
			}
		default:
			t.Fatalf("expected event %q, channel empty", typ)
		}
	}
}
