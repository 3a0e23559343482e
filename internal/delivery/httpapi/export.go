package httpapi

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/service"
)

// ExportResults streams the caller's test history for a certification as
// an xlsx workbook.
func (h *Handler) ExportResults(w http.ResponseWriter, r *http.Request) {
	certID := mux.Vars(r)["id"]

	results, err := h.results.History(r.Context(), userID(r), certID)
	if err != nil {
		h.logger.Warn("failed to load test results for export", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load test results")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Timestamp", "Score", "Total Questions", "Percentage", "Passed"}
	for i, hdr := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hdr)
	}

	for row, res := range results {
		pct := int(math.Round(res.Ratio() * 100))
		values := []any{
			res.Timestamp.Format("2006-01-02 15:04:05"),
			res.Score,
			res.TotalQuestions,
			pct,
			pct >= service.PassingPercent,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-results.xlsx", certID))

	if _, err := f.WriteTo(w); err != nil {
		h.logger.Warn("failed to write results workbook", zap.Error(err))
	}
}
