// Package export writes a report-window CSV to disk, for the ops mailer and
// for ad hoc report distribution without going through the HTTP endpoint.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"tradechat/src/model"
	"tradechat/src/report"
	"tradechat/src/repository"
)

type windowFetcher interface {
	FindByWindow(ctx context.Context, period string) ([]model.TradeLogRecord, error)
}

type Exporter struct {
	Period string
	OutDir string

	repo windowFetcher
}

// Start fetches the window and writes "{period}_trade_report.csv" into the
// output directory. Same bytes the HTTP route serves.
func (e *Exporter) Start() error {
	period := repository.NormalizePeriod(e.Period)
	outDir := e.OutDir
	if outDir == "" {
		outDir = "."
	}

	repo := e.repo
	if repo == nil {
		repo = repository.NewTradeLogRepository()
	}

	records, err := repo.FindByWindow(context.Background(), period)
	if err != nil {
		return fmt.Errorf("failed to fetch report window: %w", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("%s_trade_report.csv", period))
	if err := os.WriteFile(path, []byte(report.RenderCSV(records)), 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"cmd":     "export",
		"period":  period,
		"records": len(records),
		"path":    path,
	}).Info("Trade report exported")

	return nil
}
