package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/domain/session"
	"github.com/math-master/backend/internal/history"
	"github.com/math-master/backend/internal/identity"
	"github.com/math-master/backend/internal/notify"
	"github.com/math-master/backend/internal/provider"
	"github.com/math-master/backend/internal/worker"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrStillGenerating means the requested generation has not produced
	// a test yet.
	ErrStillGenerating = errors.New("test is still generating")
)

// GenerationStatus tracks an async test-generation request.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "generating"
	GenerationReady     GenerationStatus = "ready"
	GenerationDiscarded GenerationStatus = "discarded"
)

type generation struct {
	id          string
	status      GenerationStatus
	test        *mocktest.Test
	requestedAt time.Time
}

// GenerationView is the read-only snapshot handlers render.
type GenerationView struct {
	ID     string           `json:"id"`
	Status GenerationStatus `json:"status"`
	Test   *mocktest.Test   `json:"test,omitempty"`
}

const (
	generationWorkers = 2
	generationBuffer  = 8
)

// TestFlow orchestrates the mock-test lifecycle: async test acquisition
// through the provider chain, the live session registry, and result
// recording. It is the only component that touches more than one layer.
type TestFlow struct {
	provider  provider.TestProvider
	bank      *provider.SampleBank
	store     history.Store
	students  identity.Provider
	notifier  notify.Notifier
	audio     notify.AudioSink
	scheduler session.TickScheduler
	logger    *slog.Logger
	now       func() time.Time

	mu           sync.RWMutex
	generations  map[string]*generation
	sessions     map[string]*session.Session
	activeByUser map[string]string // username → session id

	pool *worker.Pool[*mocktest.Test]
}

// Options collects the injected collaborators.
type Options struct {
	Provider  provider.TestProvider
	Bank      *provider.SampleBank
	Store     history.Store
	Students  identity.Provider
	Notifier  notify.Notifier
	Audio     notify.AudioSink
	Scheduler session.TickScheduler
	Logger    *slog.Logger
	Now       func() time.Time
}

func NewTestFlow(opts Options) *TestFlow {
	if opts.Scheduler == nil {
		opts.Scheduler = session.TickerScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tf := &TestFlow{
		provider:     opts.Provider,
		bank:         opts.Bank,
		store:        opts.Store,
		students:     opts.Students,
		notifier:     opts.Notifier,
		audio:        opts.Audio,
		scheduler:    opts.Scheduler,
		logger:       opts.Logger,
		now:          opts.Now,
		generations:  make(map[string]*generation),
		sessions:     make(map[string]*session.Session),
		activeByUser: make(map[string]string),
		pool:         worker.NewPool[*mocktest.Test](generationWorkers, generationBuffer),
	}
	go tf.collectGenerations()
	return tf
}

// Close drains the generation pool. Live sessions keep their timers; the
// process is shutting down anyway.
func (tf *TestFlow) Close() {
	tf.pool.Stop()
}

// ── Test acquisition ────────────────────────────────────────────────────────

// RequestGeneration queues an async test generation and returns its id
// immediately, so the UI can show a "generating" state while the provider
// call is outstanding.
func (tf *TestFlow) RequestGeneration(params provider.Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	if params.StudentLevel == "" {
		params.StudentLevel = tf.students.Current().Level
	}

	gen := &generation{
		id:          uuid.NewString(),
		status:      GenerationPending,
		requestedAt: tf.now(),
	}
	tf.mu.Lock()
	tf.generations[gen.id] = gen
	tf.mu.Unlock()

	tf.pool.Submit(gen.id, func() *mocktest.Test {
		// Detached from the originating request: generation outlives it,
		// and abandoned generations are dropped on collection instead.
		test, err := tf.provider.GenerateTest(context.Background(), params)
		if err != nil {
			// Only invalid params can reach here and those were checked;
			// the chain itself always falls back to the sample bank.
			tf.logger.Error("test generation failed", "generation_id", gen.id, "error", err)
			return nil
		}
		return test
	})

	tf.logger.Info("test generation queued",
		"generation_id", gen.id,
		"question_count", params.QuestionCount,
		"difficulty", params.Difficulty,
	)
	return gen.id, nil
}

// collectGenerations routes pool results back into the registry. Results
// for generations the user abandoned no longer match an awaiting entry
// and are simply discarded.
func (tf *TestFlow) collectGenerations() {
	for res := range tf.pool.Results() {
		tf.mu.Lock()
		gen, ok := tf.generations[res.JobID]
		switch {
		case !ok || gen.status == GenerationDiscarded:
			delete(tf.generations, res.JobID)
			tf.mu.Unlock()
			tf.logger.Info("discarding test for abandoned generation", "generation_id", res.JobID)
		case res.Output == nil:
			gen.status = GenerationDiscarded
			tf.mu.Unlock()
		default:
			gen.status = GenerationReady
			gen.test = res.Output
			tf.mu.Unlock()
			tf.logger.Info("test ready", "generation_id", res.JobID, "test_id", res.Output.ID)
		}
	}
}

// Generation reports the state of an async generation.
func (tf *TestFlow) Generation(genID string) (GenerationView, error) {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	gen, ok := tf.generations[genID]
	if !ok {
		return GenerationView{}, ErrNotFound
	}
	return GenerationView{ID: gen.id, Status: gen.status, Test: gen.test}, nil
}

// AbandonGeneration marks a pending generation so its eventual result is
// discarded. In-flight provider requests are not cancelled.
func (tf *TestFlow) AbandonGeneration(genID string) error {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	gen, ok := tf.generations[genID]
	if !ok {
		return ErrNotFound
	}
	if gen.status == GenerationPending {
		gen.status = GenerationDiscarded
	} else {
		delete(tf.generations, genID)
	}
	return nil
}

// ── Sessions ────────────────────────────────────────────────────────────────

// StartSessionFromGeneration consumes a ready generation and starts a
// session on its test.
func (tf *TestFlow) StartSessionFromGeneration(genID string) (*session.Session, error) {
	tf.mu.Lock()
	gen, ok := tf.generations[genID]
	if !ok || gen.status == GenerationDiscarded {
		tf.mu.Unlock()
		return nil, ErrNotFound
	}
	if gen.status == GenerationPending {
		tf.mu.Unlock()
		return nil, ErrStillGenerating
	}
	test := gen.test
	delete(tf.generations, genID)
	tf.mu.Unlock()

	return tf.startSession(test)
}

// StartSessionFromPreset starts a quick-start session straight from the
// sample bank, skipping the AI provider entirely.
func (tf *TestFlow) StartSessionFromPreset(presetName string) (*session.Session, error) {
	preset, ok := provider.PresetByName(presetName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrNotFound, presetName)
	}

	test, err := tf.bank.GenerateTest(context.Background(), provider.Params{
		QuestionCount: preset.QuestionCount,
		Difficulty:    preset.Difficulty,
		Topics:        mocktest.AllTopics(),
		StudentLevel:  tf.students.Current().Level,
	})
	if err != nil {
		return nil, err
	}
	test.Title = preset.Title
	return tf.startSession(test)
}

func (tf *TestFlow) startSession(test *mocktest.Test) (*session.Session, error) {
	student := tf.students.Current()

	sess := session.New(uuid.NewString(), student, session.Config{
		Scheduler: tf.scheduler,
		Notifier:  tf.notifier,
		Audio:     tf.audio,
		Logger:    tf.logger,
		Now:       tf.now,
	})

	// Single-user, single-attempt: a new session abandons the previous
	// one, which also cancels its tick schedule.
	tf.mu.Lock()
	if prevID, ok := tf.activeByUser[student.Username]; ok {
		if prev, ok := tf.sessions[prevID]; ok {
			prev.Restart()
		}
		delete(tf.sessions, prevID)
	}
	tf.sessions[sess.ID()] = sess
	tf.activeByUser[student.Username] = sess.ID()
	tf.mu.Unlock()

	// Subscribe before Start so the submitted event cannot be missed.
	events, unsubscribe := sess.Subscribe()
	go tf.recordOnSubmit(sess, events, unsubscribe)

	if err := sess.Start(test); err != nil {
		tf.mu.Lock()
		delete(tf.sessions, sess.ID())
		delete(tf.activeByUser, student.Username)
		tf.mu.Unlock()
		return nil, err
	}
	return sess, nil
}

// recordOnSubmit watches a session's event stream and appends the Result
// to history when it completes. It covers the user-initiated and the
// timeout-forced submission path alike, and runs off the session lock.
// Abandonment is signalled by a restarted event; the watcher exits then,
// since the flow never starts a new attempt on the same session.
func (tf *TestFlow) recordOnSubmit(sess *session.Session, events <-chan session.Event, unsubscribe func()) {
	defer unsubscribe()

	for ev := range events {
		if ev.Type == session.EventRestarted {
			return
		}
		if ev.Type != session.EventSubmitted {
			continue
		}
		snap := sess.Snapshot()
		if snap.Result == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := tf.store.Save(ctx, sess.Student().Username, *snap.Result)
		cancel()
		if err != nil {
			// Persistence failure must not block the test flow; the
			// student still sees their result, the history entry is lost.
			tf.logger.Error("failed to record result",
				"session_id", sess.ID(),
				"test_id", snap.Result.TestID,
				"error", err,
			)
			if tf.notifier != nil {
				tf.notifier.Notify("Could not save this result to your history.", notify.LevelWarning)
			}
		}
		return
	}
}

// Session looks up a live session by id.
func (tf *TestFlow) Session(sessionID string) (*session.Session, error) {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	sess, ok := tf.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// ── History ─────────────────────────────────────────────────────────────────

// History lists the current student's results, most recent first.
func (tf *TestFlow) History(ctx context.Context) ([]mocktest.Result, error) {
	username := tf.students.Current().Username
	results, err := tf.store.List(ctx, username)
	if err != nil {
		tf.logger.Error("failed to load history", "username", username, "error", err)
		return nil, err
	}
	return results, nil
}

// Student exposes the identity context for handlers.
func (tf *TestFlow) Student() identity.Student {
	return tf.students.Current()
}
