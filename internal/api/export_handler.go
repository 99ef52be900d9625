package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// exportHistory writes the student's result history as an .xlsx
// spreadsheet for offline review or sharing with a tutor.
//
//	@Summary  Export result history as a spreadsheet
//	@Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success  200
//	@Failure  500 {object} errorResponse
//	@Router   /history/export [get]
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	results, err := h.flow.History(r.Context())
	if h.handleFlowError(w, err, "history") {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Test", "Score", "Correct", "Questions", "Accuracy %", "Time spent", "Level", "Completed at"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	for row, res := range results {
		values := []any{
			res.TestTitle,
			res.Score,
			res.CorrectCount,
			res.TotalQuestions,
			res.AccuracyPercent,
			formatDuration(res.TimeSpentSeconds),
			res.PerformanceLevel,
			res.CompletedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("math-master-history-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		h.logger.Error("spreadsheet export failed", "error", err)
	}
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}
