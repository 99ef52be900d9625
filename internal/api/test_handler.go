package api

import (
	"net/http"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/provider"
	"github.com/math-master/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type RequestTestRequest struct {
	QuestionCount int      `json:"question_count"`
	Difficulty    string   `json:"difficulty"`
	Topics        []string `json:"topics"`
}

type RequestTestResponse struct {
	GenerationID string `json:"generation_id"`
	Status       string `json:"status"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// requestTest queues async test generation.
//
//	@Summary  Request a new mock test
//	@Accept   json
//	@Produce  json
//	@Param    request body RequestTestRequest true "test parameters"
//	@Success  202 {object} RequestTestResponse
//	@Router   /tests [post]
func (h *Handler) requestTest(w http.ResponseWriter, r *http.Request) {
	var req RequestTestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	topics := make([]mocktest.Topic, 0, len(req.Topics))
	for _, t := range req.Topics {
		topics = append(topics, mocktest.Topic(t))
	}

	genID, err := h.flow.RequestGeneration(provider.Params{
		QuestionCount: req.QuestionCount,
		Difficulty:    mocktest.Difficulty(req.Difficulty),
		Topics:        topics,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusAccepted, RequestTestResponse{
		GenerationID: genID,
		Status:       string(service.GenerationPending),
	})
}

// getGeneration reports generation progress and, once ready, the test.
//
//	@Summary  Poll a test generation
//	@Produce  json
//	@Param    generationID path string true "generation id"
//	@Success  200 {object} service.GenerationView
//	@Router   /tests/{generationID} [get]
func (h *Handler) getGeneration(w http.ResponseWriter, r *http.Request) {
	genID := r.PathValue("generationID")

	view, err := h.flow.Generation(genID)
	if h.handleFlowError(w, err, "generation") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// abandonGeneration drops a pending generation; its eventual result is
// discarded.
//
//	@Summary  Abandon a test generation
//	@Param    generationID path string true "generation id"
//	@Success  204
//	@Router   /tests/{generationID} [delete]
func (h *Handler) abandonGeneration(w http.ResponseWriter, r *http.Request) {
	genID := r.PathValue("generationID")

	if h.handleFlowError(w, h.flow.AbandonGeneration(genID), "generation") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
