package mocktest

import (
	"errors"
	"fmt"
)

// Topic is a curriculum category label attached to a question.
type Topic string

const (
	TopicNumbers      Topic = "numbers"
	TopicWordProblems Topic = "word_problems"
	TopicGeometry     Topic = "geometry"
	TopicMeasurement  Topic = "measurement"
)

// AllTopics lists every topic the sample bank covers, in curriculum order.
func AllTopics() []Topic {
	return []Topic{TopicNumbers, TopicWordProblems, TopicGeometry, TopicMeasurement}
}

// DisplayName returns the label shown to students.
func (t Topic) DisplayName() string {
	switch t {
	case TopicNumbers:
		return "Arithmetic"
	case TopicWordProblems:
		return "Word problems"
	case TopicGeometry:
		return "Geometry"
	case TopicMeasurement:
		return "Measurement"
	}
	return string(t)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points returns the score value of one question at this difficulty.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 15
	case DifficultyHard:
		return 20
	}
	return 10
}

// RecommendedSeconds returns the suggested time per question.
func (d Difficulty) RecommendedSeconds() int {
	switch d {
	case DifficultyEasy:
		return 30
	case DifficultyMedium:
		return 45
	case DifficultyHard:
		return 60
	}
	return 30
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const optionCount = 4

// Question is immutable once fetched.
type Question struct {
	ID                 string     `json:"id"`
	Text               string     `json:"text"`
	Options            []string   `json:"options"`
	CorrectAnswer      string     `json:"correct_answer"`
	Explanation        string     `json:"explanation"`
	Topic              Topic      `json:"topic"`
	Difficulty         Difficulty `json:"difficulty"`
	Points             int        `json:"points"`
	RecommendedSeconds int        `json:"recommended_time_seconds"`
}

// Test is created at setup time and owned exclusively by the active session.
type Test struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
	Questions        []Question `json:"questions"`
}

// QuestionByID returns the question with the given id, or false.
func (t *Test) QuestionByID(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

var ErrInvalidTest = errors.New("invalid test")

// Validate rejects malformed provider payloads before they reach the
// session or scoring. A test with undefined fields must fall back to the
// sample bank instead of propagating into evaluation.
func (t *Test) Validate() error {
	if len(t.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidTest)
	}
	if t.TimeLimitSeconds <= 0 {
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidTest)
	}
	seen := make(map[string]bool, len(t.Questions))
	for i, q := range t.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidTest, i)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidTest, q.ID)
		}
		seen[q.ID] = true
		if q.Text == "" {
			return fmt.Errorf("%w: question %q has no text", ErrInvalidTest, q.ID)
		}
		if len(q.Options) != optionCount {
			return fmt.Errorf("%w: question %q has %d options, want %d", ErrInvalidTest, q.ID, len(q.Options), optionCount)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: question %q correct answer not among options", ErrInvalidTest, q.ID)
		}
		if q.Points <= 0 {
			return fmt.Errorf("%w: question %q has non-positive points", ErrInvalidTest, q.ID)
		}
	}
	return nil
}
