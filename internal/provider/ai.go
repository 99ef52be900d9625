package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/id"
)

// AIProvider fetches AI-generated tests from the remote tutoring service.
type AIProvider struct {
	url    string       // e.g. "http://localhost:5000"
	client *http.Client // reused across calls
}

var _ TestProvider = (*AIProvider)(nil)

// NewAIProvider creates a provider that calls the given service endpoint.
func NewAIProvider(url string, timeout time.Duration) *AIProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AIProvider{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ── Wire types ──────────────────────────────────────────────────────────────

type generateRequest struct {
	QuestionCount int      `json:"question_count"`
	Difficulty    string   `json:"difficulty"`
	Topics        []string `json:"topics"`
	StudentLevel  string   `json:"student_level"`
}

type generateResponse struct {
	Success bool         `json:"success"`
	Test    *testPayload `json:"test"`
}

type testPayload struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	TimeLimitSeconds int               `json:"time_limit_seconds"`
	Questions        []questionPayload `json:"questions"`
}

type questionPayload struct {
	ID                 string   `json:"id"`
	Text               string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswer      string   `json:"correct_answer"`
	Explanation        string   `json:"explanation"`
	Topic              string   `json:"topic"`
	Difficulty         string   `json:"difficulty"`
	Points             int      `json:"points"`
	RecommendedSeconds int      `json:"time_recommended"`
}

// GenerateTest requests a test from the AI service and converts the
// untyped payload into the typed model at this boundary. Any transport
// failure, non-2xx status, or schema mismatch comes back as a
// ProviderError so the caller falls back to the sample bank instead of
// propagating undefined fields into scoring.
func (p *AIProvider) GenerateTest(ctx context.Context, params Params) (*mocktest.Test, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	topics := make([]string, len(params.Topics))
	for i, t := range params.Topics {
		topics[i] = string(t)
	}
	body, err := json.Marshal(generateRequest{
		QuestionCount: params.QuestionCount,
		Difficulty:    string(params.Difficulty),
		Topics:        topics,
		StudentLevel:  params.StudentLevel,
	})
	if err != nil {
		return nil, &ProviderError{Reason: "failed to marshal request", Wrapped: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/ai/mock-test/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Reason: "failed to create request", Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Reason: "provider unreachable", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Reason: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ProviderError{Reason: "invalid JSON from provider", Wrapped: err}
	}
	if !payload.Success || payload.Test == nil {
		return nil, &ProviderError{Reason: "provider reported no test"}
	}

	test := p.convert(payload.Test, params)
	if err := test.Validate(); err != nil {
		return nil, &ProviderError{Reason: "provider returned malformed test", Wrapped: err}
	}
	return test, nil
}

// convert maps the wire payload to the domain model, filling the gaps the
// generator tends to leave (missing ids, points, per-question times).
func (p *AIProvider) convert(payload *testPayload, params Params) *mocktest.Test {
	questions := make([]mocktest.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		difficulty := mocktest.Difficulty(q.Difficulty)
		if !difficulty.Valid() {
			difficulty = params.Difficulty
		}
		points := q.Points
		if points <= 0 {
			points = difficulty.Points()
		}
		recommended := q.RecommendedSeconds
		if recommended <= 0 {
			recommended = difficulty.RecommendedSeconds()
		}
		qid := q.ID
		if qid == "" {
			qid = id.New()
		}
		questions = append(questions, mocktest.Question{
			ID:                 qid,
			Text:               q.Text,
			Options:            q.Options,
			CorrectAnswer:      q.CorrectAnswer,
			Explanation:        q.Explanation,
			Topic:              mocktest.Topic(q.Topic),
			Difficulty:         difficulty,
			Points:             points,
			RecommendedSeconds: recommended,
		})
	}

	testID := payload.ID
	if testID == "" {
		testID = "ai-" + id.New()
	}
	timeLimit := payload.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = params.QuestionCount * secondsPerQuestion
	}
	return &mocktest.Test{
		ID:               testID,
		Title:            payload.Title,
		Description:      payload.Description,
		TimeLimitSeconds: timeLimit,
		Questions:        questions,
	}
}
