package provider

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/id"
)

//go:embed bank.yaml
var bankYAML []byte

// secondsPerQuestion sizes the overall time limit of sample tests.
const secondsPerQuestion = 60

type bankQuestion struct {
	Text          string   `yaml:"text"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
}

type bankFile struct {
	Topics map[mocktest.Topic][]bankQuestion `yaml:"topics"`
}

// SampleBank synthesizes tests from the embedded static question bank.
// It is the fallback path of test acquisition and cannot fail: questions
// are drawn with replacement, so any requested count is satisfiable.
type SampleBank struct {
	topics map[mocktest.Topic][]bankQuestion

	mu  sync.Mutex
	rng *rand.Rand
}

var _ TestProvider = (*SampleBank)(nil)

// NewSampleBank parses the embedded bank. The rng seed is taken by the
// caller so tests can fix it.
func NewSampleBank(seed int64) (*SampleBank, error) {
	var bank bankFile
	if err := yaml.Unmarshal(bankYAML, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse embedded question bank: %w", err)
	}
	if len(bank.Topics) == 0 {
		return nil, fmt.Errorf("embedded question bank has no topics")
	}
	for topic, questions := range bank.Topics {
		if len(questions) == 0 {
			return nil, fmt.Errorf("embedded question bank topic %q is empty", topic)
		}
	}
	return &SampleBank{
		topics: bank.Topics,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// GenerateTest builds a sample test matching the requested parameters.
// The returned error is always nil; the signature exists to satisfy
// TestProvider.
func (b *SampleBank) GenerateTest(_ context.Context, params Params) (*mocktest.Test, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	topics := b.knownTopics(params.Topics)

	questions := make([]mocktest.Question, 0, params.QuestionCount)
	b.mu.Lock()
	for i := 0; i < params.QuestionCount; i++ {
		topic := topics[b.rng.Intn(len(topics))]
		pool := b.topics[topic]
		tmpl := pool[b.rng.Intn(len(pool))]

		questions = append(questions, mocktest.Question{
			ID:                 id.New(),
			Text:               tmpl.Text,
			Options:            append([]string(nil), tmpl.Options...),
			CorrectAnswer:      tmpl.CorrectAnswer,
			Explanation:        tmpl.Explanation,
			Topic:              topic,
			Difficulty:         params.Difficulty,
			Points:             params.Difficulty.Points(),
			RecommendedSeconds: params.Difficulty.RecommendedSeconds(),
		})
	}
	b.mu.Unlock()

	return &mocktest.Test{
		ID:               "sample-" + id.New(),
		Title:            fmt.Sprintf("Sample Grade 3 Math Test - %d questions", params.QuestionCount),
		Description:      "Basic knowledge check - sample paper",
		TimeLimitSeconds: params.QuestionCount * secondsPerQuestion,
		Questions:        questions,
	}, nil
}

// knownTopics filters the request down to topics present in the bank,
// defaulting to all of them when nothing usable was requested.
func (b *SampleBank) knownTopics(requested []mocktest.Topic) []mocktest.Topic {
	var topics []mocktest.Topic
	for _, t := range requested {
		if _, ok := b.topics[t]; ok {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		for _, t := range mocktest.AllTopics() {
			if _, ok := b.topics[t]; ok {
				topics = append(topics, t)
			}
		}
	}
	return topics
}
