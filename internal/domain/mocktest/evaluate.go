package mocktest

import (
	"math"
	"time"
)

// TopicScore accumulates per-topic correctness.
type TopicScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// AccuracyPercent returns the rounded per-topic accuracy.
func (ts TopicScore) AccuracyPercent() int {
	return int(math.Round(ts.rawAccuracy()))
}

// rawAccuracy is the unrounded percentage used for threshold checks, so
// a topic just under a boundary cannot round across it.
func (ts TopicScore) rawAccuracy() float64 {
	if ts.Total == 0 {
		return 0
	}
	return 100 * float64(ts.Correct) / float64(ts.Total)
}

// QuestionResult is one row of the per-question breakdown.
type QuestionResult struct {
	QuestionID    string     `json:"question_id"`
	Question      string     `json:"question"`
	UserAnswer    string     `json:"user_answer"`
	CorrectAnswer string     `json:"correct_answer"`
	Correct       bool       `json:"correct"`
	Explanation   string     `json:"explanation"`
	Topic         Topic      `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Result is the immutable scored snapshot of a completed test attempt.
type Result struct {
	TestID           string               `json:"test_id"`
	TestTitle        string               `json:"test_title"`
	Score            int                  `json:"score"`
	CorrectCount     int                  `json:"correct_count"`
	TotalQuestions   int                  `json:"total_questions"`
	AccuracyPercent  int                  `json:"accuracy_percent"`
	TimeSpentSeconds int                  `json:"time_spent_seconds"`
	TopicPerformance map[Topic]TopicScore `json:"topic_performance"`
	Breakdown        []QuestionResult     `json:"per_question_breakdown"`
	Strengths        []string             `json:"strengths"`
	Weaknesses       []string             `json:"weaknesses"`
	Recommendations  []string             `json:"recommendations"`
	PerformanceLevel string               `json:"performance_level"`
	PacingVerdict    string               `json:"pacing_verdict"`
	CompletedAt      time.Time            `json:"completed_at"`
}

// Evaluate scores a test against the given answers. It is pure and
// deterministic: identical inputs produce identical Results, which is what
// the scoring tests rely on. Unanswered questions count as incorrect; a
// forced timeout submission goes through the same path as a confirmed
// early one.
func Evaluate(test *Test, answers map[string]string, timeSpentSeconds int, completedAt time.Time) Result {
	topicPerf := make(map[Topic]TopicScore, 4)
	breakdown := make([]QuestionResult, 0, len(test.Questions))

	correctCount := 0
	score := 0

	for _, q := range test.Questions {
		userAnswer := answers[q.ID]
		correct := userAnswer == q.CorrectAnswer
		if correct {
			correctCount++
			score += q.Points
		}

		ts := topicPerf[q.Topic]
		ts.Total++
		if correct {
			ts.Correct++
		}
		topicPerf[q.Topic] = ts

		breakdown = append(breakdown, QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Text,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
			Explanation:   q.Explanation,
			Topic:         q.Topic,
			Difficulty:    q.Difficulty,
		})
	}

	accuracy := 0
	if len(test.Questions) > 0 {
		accuracy = int(math.Round(100 * float64(correctCount) / float64(len(test.Questions))))
	}

	return Result{
		TestID:           test.ID,
		TestTitle:        test.Title,
		Score:            score,
		CorrectCount:     correctCount,
		TotalQuestions:   len(test.Questions),
		AccuracyPercent:  accuracy,
		TimeSpentSeconds: timeSpentSeconds,
		TopicPerformance: topicPerf,
		Breakdown:        breakdown,
		Strengths:        identifyStrengths(test.Questions, topicPerf),
		Weaknesses:       identifyWeaknesses(test.Questions, topicPerf),
		Recommendations:  recommendations(test.Questions, topicPerf, accuracy),
		PerformanceLevel: PerformanceLevel(accuracy),
		PacingVerdict:    pacingVerdict(timeSpentSeconds, len(test.Questions)),
		CompletedAt:      completedAt,
	}
}

const (
	strengthThreshold = 80
	weaknessThreshold = 60
	practiceThreshold = 70
)

// topicsInOrder walks topics in first-appearance order so the derived
// lists come out deterministic regardless of map iteration.
func topicsInOrder(questions []Question) []Topic {
	var order []Topic
	seen := make(map[Topic]bool, 4)
	for _, q := range questions {
		if !seen[q.Topic] {
			seen[q.Topic] = true
			order = append(order, q.Topic)
		}
	}
	return order
}

func identifyStrengths(questions []Question, perf map[Topic]TopicScore) []string {
	var strengths []string
	for _, topic := range topicsInOrder(questions) {
		if perf[topic].rawAccuracy() >= strengthThreshold {
			strengths = append(strengths, topic.DisplayName())
		}
	}
	if len(strengths) == 0 {
		strengths = []string{"Staying focused through the whole test"}
	}
	return strengths
}

func identifyWeaknesses(questions []Question, perf map[Topic]TopicScore) []string {
	var weaknesses []string
	for _, topic := range topicsInOrder(questions) {
		if perf[topic].rawAccuracy() < weaknessThreshold {
			weaknesses = append(weaknesses, topic.DisplayName())
		}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"More practice across exercise types"}
	}
	return weaknesses
}

func recommendations(questions []Question, perf map[Topic]TopicScore, overallAccuracy int) []string {
	var recs []string
	if overallAccuracy < weaknessThreshold {
		recs = append(recs,
			"Review the fundamentals",
			"Do more exercises in the practice section",
		)
	}
	for _, topic := range topicsInOrder(questions) {
		if perf[topic].rawAccuracy() < practiceThreshold {
			recs = append(recs, "Practice more: "+topic.DisplayName())
		}
	}
	if len(recs) == 0 {
		recs = append(recs,
			"Keep up the study routine",
			"Try some advanced exercises",
		)
	}
	return recs
}

// PerformanceLevel maps overall accuracy to the student-facing rating.
func PerformanceLevel(accuracy int) string {
	switch {
	case accuracy >= 90:
		return "Excellent"
	case accuracy >= 80:
		return "Very good"
	case accuracy >= 70:
		return "Good"
	case accuracy >= 60:
		return "Fair"
	case accuracy >= 50:
		return "Average"
	}
	return "Needs improvement"
}

func pacingVerdict(timeSpentSeconds, totalQuestions int) string {
	if totalQuestions == 0 {
		return ""
	}
	avg := float64(timeSpentSeconds) / float64(totalQuestions)
	switch {
	case avg < 45:
		return "Good time management"
	case avg < 60:
		return "Fair time management"
	}
	return "Work on answering speed"
}
