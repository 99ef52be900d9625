package api

import (
	"errors"
	"net/http"

	"github.com/math-master/backend/internal/domain/session"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	// Exactly one of GenerationID or Preset must be set.
	GenerationID string `json:"generation_id,omitempty"`
	Preset       string `json:"preset,omitempty"`
}

func (r *StartSessionRequest) Validate() error {
	if (r.GenerationID == "") == (r.Preset == "") {
		return errors.New("exactly one of generation_id or preset is required")
	}
	return nil
}

type SelectAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Option     string `json:"option"`
}

type NavigateRequest struct {
	Delta int `json:"delta"`
}

type SubmitRequest struct {
	Forced    bool `json:"forced"`
	Confirmed bool `json:"confirmed"`
}

// SubmitResponse carries either the result or, when confirmation gating
// applies, the summary the client must show before re-submitting with
// confirmed=true.
type SubmitResponse struct {
	Status               string                 `json:"status"`
	Result               any                    `json:"result,omitempty"`
	ConfirmationRequired *session.ConfirmPrompt `json:"confirmation_required,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startSession begins a timed attempt from a ready generation or a
// quick-start preset.
//
//	@Summary  Start a mock-test session
//	@Accept   json
//	@Produce  json
//	@Param    request body StartSessionRequest true "test source"
//	@Success  201 {object} session.Snapshot
//	@Router   /sessions [post]
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		sess *session.Session
		err  error
	)
	if req.GenerationID != "" {
		sess, err = h.flow.StartSessionFromGeneration(req.GenerationID)
	} else {
		sess, err = h.flow.StartSessionFromPreset(req.Preset)
	}
	if h.handleFlowError(w, err, "test") {
		return
	}

	respondJSON(w, http.StatusCreated, sess.Snapshot())
}

// getSession returns a point-in-time snapshot.
//
//	@Summary  Get session state
//	@Produce  json
//	@Param    sessionID path string true "session id"
//	@Success  200 {object} session.Snapshot
//	@Router   /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, sess.Snapshot())
}

// selectAnswer records the chosen option for a question of the active
// test. The current question index does not move.
//
//	@Summary  Select an answer
//	@Accept   json
//	@Param    sessionID path string true "session id"
//	@Param    request body SelectAnswerRequest true "answer"
//	@Success  200 {object} session.Snapshot
//	@Router   /sessions/{sessionID}/answers [post]
func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}

	var req SelectAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch err := sess.SelectAnswer(req.QuestionID, req.Option); {
	case errors.Is(err, session.ErrInvalidQuestion):
		respondError(w, http.StatusBadRequest, "question not in current test")
		return
	case errors.Is(err, session.ErrNotActive):
		respondError(w, http.StatusConflict, "session is not active")
		return
	case err != nil:
		h.logger.Error("select answer failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, sess.Snapshot())
}

// navigate moves between questions.
//
//	@Summary  Navigate to the previous or next question
//	@Accept   json
//	@Param    sessionID path string true "session id"
//	@Param    request body NavigateRequest true "delta, -1 or +1"
//	@Success  200 {object} session.Snapshot
//	@Router   /sessions/{sessionID}/navigate [post]
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}

	var req NavigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch err := sess.Navigate(req.Delta); {
	case errors.Is(err, session.ErrInvalidDelta):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, session.ErrNotActive):
		respondError(w, http.StatusConflict, "session is not active")
		return
	case err != nil:
		h.logger.Error("navigate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, sess.Snapshot())
}

// submit completes the attempt. An unforced submit of a partially
// answered test without confirmed=true returns the confirmation summary
// and leaves the session running.
//
//	@Summary  Submit the test
//	@Accept   json
//	@Produce  json
//	@Param    sessionID path string true "session id"
//	@Param    request body SubmitRequest true "submission flags"
//	@Success  200 {object} SubmitResponse
//	@Router   /sessions/{sessionID}/submit [post]
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}

	var req SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, prompt, err := sess.Submit(req.Forced, req.Confirmed)
	switch {
	case errors.Is(err, session.ErrNotActive):
		respondError(w, http.StatusConflict, "session is not active")
		return
	case err != nil:
		h.logger.Error("submit failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	case prompt != nil:
		respondJSON(w, http.StatusOK, SubmitResponse{
			Status:               "confirmation_required",
			ConfirmationRequired: prompt,
		})
		return
	}

	respondJSON(w, http.StatusOK, SubmitResponse{
		Status: "completed",
		Result: result,
	})
}

// restart abandons the attempt and returns the session to setup.
//
//	@Summary  Restart a session
//	@Param    sessionID path string true "session id"
//	@Success  200 {object} session.Snapshot
//	@Router   /sessions/{sessionID}/restart [post]
func (h *Handler) restart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}
	sess.Restart()
	respondJSON(w, http.StatusOK, sess.Snapshot())
}
