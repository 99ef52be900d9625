package api

import (
	"net/http"

	"github.com/math-master/backend/internal/domain/mocktest"
)

// HistoryResponse wraps the result list for the history endpoint.
type HistoryResponse struct {
	Results []mocktest.Result `json:"results"`
}

// listHistory returns the current student's past test results, most
// recent first.
//
//	@Summary  List past test results
//	@Produce  json
//	@Success  200 {object} HistoryResponse
//	@Failure  500 {object} errorResponse
//	@Router   /history [get]
func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	results, err := h.flow.History(r.Context())
	if h.handleFlowError(w, err, "history") {
		return
	}
	if results == nil {
		results = []mocktest.Result{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Results: results})
}
