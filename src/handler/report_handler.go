package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradechat/src/model"
	"tradechat/src/repository"
	"tradechat/src/report"
)

type windowFetcher interface {
	FindByWindow(ctx context.Context, period string) ([]model.TradeLogRecord, error)
}

// TradeReportHandler serves GET /api/trade-report/{reportType} as a CSV
// attachment. Unrecognized period tokens fall back to the daily window.
func TradeReportHandler(repo windowFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := repository.NormalizePeriod(chi.URLParam(r, "reportType"))

		records, err := repo.FindByWindow(r.Context(), period)
		if err != nil {
			logger.WithError(err).Error("Failed to generate CSV report")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate CSV."})
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s_trade_report.csv"`, period))
		if _, err := w.Write([]byte(report.RenderCSV(records))); err != nil {
			logger.WithError(err).Error("Failed to write CSV response")
		}
	}
}

// DefaultTradeReportHandler wires the handler to the production repository.
func DefaultTradeReportHandler() http.HandlerFunc {
	return TradeReportHandler(repository.NewTradeLogRepository())
}
