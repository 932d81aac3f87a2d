package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradechat/src/database"
	"tradechat/src/model"
)

const (
	// tradeLookupLimit bounds the per-trade history fetch; reportWindowLimit
	// bounds aggregate windows. Response-size pragmatism, not correctness.
	tradeLookupLimit  = 50
	reportWindowLimit = 1000

	// KnownTradeID is the identifier the diagnostics endpoint uses as a
	// sanity check; it exists in every environment's seed data.
	KnownTradeID = "tid00000553"
)

// FetchError wraps a connectivity or query failure so callers can turn it
// into a user-visible diagnostic instead of propagating a raw fault.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("trade log fetch failed (%s): %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TradeLogRepository reads the trade_log table. Each operation acquires a
// fresh scoped connection and releases it before returning.
type TradeLogRepository struct {
	open func() (*gorm.DB, func(), error)
}

// NewTradeLogRepository creates a repository backed by the configured store.
func NewTradeLogRepository() *TradeLogRepository {
	return &TradeLogRepository{open: database.Open}
}

// WithDB pins the repository to an existing *gorm.DB instance.
// Useful for tests or when reusing a session.
func (r *TradeLogRepository) WithDB(db *gorm.DB) *TradeLogRepository {
	return &TradeLogRepository{
		open: func() (*gorm.DB, func(), error) {
			return db, func() {}, nil
		},
	}
}

// FindByTradeID returns the processing history for one trade, newest first.
// An empty result means "trade not found" and is not an error.
func (r *TradeLogRepository) FindByTradeID(ctx context.Context, tradeID string) ([]model.TradeLogRecord, error) {
	logger.WithFields(map[string]interface{}{
		"repo":     "TradeLogRepository",
		"op":       "FindByTradeID",
		"trade_id": tradeID,
	}).Debug("Fetching trade history")

	db, release, err := r.open()
	if err != nil {
		return nil, &FetchError{Op: "FindByTradeID", Err: err}
	}
	defer release()

	var records []model.TradeLogRecord
	err = db.WithContext(ctx).
		Where("trade_id = ?", tradeID).
		Order("check_timestamp DESC").
		Limit(tradeLookupLimit).
		Find(&records).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeLogRepository",
			"op":       "FindByTradeID",
			"trade_id": tradeID,
		}).WithError(err).Error("Failed to fetch trade history")

		return nil, &FetchError{Op: "FindByTradeID", Err: err}
	}

	return quarantineUnknownStatuses(records), nil
}

// FindByWindow returns all records inside the resolved report window, newest
// first. Unknown period tokens fall back to the daily window.
func (r *TradeLogRepository) FindByWindow(ctx context.Context, period string) ([]model.TradeLogRecord, error) {
	normalized := NormalizePeriod(period)
	since := windowStart(normalized, time.Now())

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeLogRepository",
		"op":     "FindByWindow",
		"period": normalized,
		"since":  since,
	}).Debug("Fetching report window")

	db, release, err := r.open()
	if err != nil {
		return nil, &FetchError{Op: "FindByWindow", Err: err}
	}
	defer release()

	var records []model.TradeLogRecord
	err = db.WithContext(ctx).
		Where("check_timestamp >= ?", since).
		Order("check_timestamp DESC").
		Limit(reportWindowLimit).
		Find(&records).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "TradeLogRepository",
			"op":     "FindByWindow",
			"period": normalized,
		}).WithError(err).Error("Failed to fetch report window")

		return nil, &FetchError{Op: "FindByWindow", Err: err}
	}

	return quarantineUnknownStatuses(records), nil
}

// StoreDiagnostics is the result of the operational sanity probe served by
// the test-db endpoint.
type StoreDiagnostics struct {
	TableExists    bool                  `json:"tableExists"`
	RecordCount    int64                 `json:"recordCount"`
	SampleRecord   *model.TradeLogRecord `json:"sampleRecord"`
	SampleTradeIDs []string              `json:"sampleTradeIds"`
}

// Diagnose checks connectivity, table presence, the known-record count, one
// sample row and a short list of sample trade ids.
func (r *TradeLogRepository) Diagnose(ctx context.Context) (*StoreDiagnostics, error) {
	db, release, err := r.open()
	if err != nil {
		return nil, &FetchError{Op: "Diagnose", Err: err}
	}
	defer release()

	result := &StoreDiagnostics{SampleTradeIDs: []string{}}

	result.TableExists = db.WithContext(ctx).Migrator().HasTable(&model.TradeLogRecord{})
	if !result.TableExists {
		return result, nil
	}

	if err := db.WithContext(ctx).
		Model(&model.TradeLogRecord{}).
		Where("trade_id = ?", KnownTradeID).
		Count(&result.RecordCount).Error; err != nil {
		return nil, &FetchError{Op: "Diagnose", Err: err}
	}

	var sample []model.TradeLogRecord
	if err := db.WithContext(ctx).Limit(1).Find(&sample).Error; err != nil {
		return nil, &FetchError{Op: "Diagnose", Err: err}
	}
	if len(sample) > 0 {
		result.SampleRecord = &sample[0]
	}

	if err := db.WithContext(ctx).
		Model(&model.TradeLogRecord{}).
		Distinct("trade_id").
		Where("trade_id LIKE ?", "tid%").
		Limit(10).
		Pluck("trade_id", &result.SampleTradeIDs).Error; err != nil {
		return nil, &FetchError{Op: "Diagnose", Err: err}
	}

	return result, nil
}

// NormalizePeriod lowercases a report period token and falls back to "daily"
// for anything outside the recognized set.
func NormalizePeriod(period string) string {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "daily":
		return "daily"
	case "today":
		return "today"
	case "weekly":
		return "weekly"
	case "monthly":
		return "monthly"
	default:
		return "daily"
	}
}

// WindowLabel names the resolved window for report titles.
func WindowLabel(period string) string {
	switch NormalizePeriod(period) {
	case "weekly":
		return "Last 7 Days"
	case "monthly":
		return "Last 30 Days"
	default:
		return "Today"
	}
}

// windowStart resolves a normalized period to its inclusive lower bound.
// Daily/today start at local midnight, mirroring the agents' CURDATE() use.
func windowStart(period string, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "weekly":
		return midnight.AddDate(0, 0, -7)
	case "monthly":
		return midnight.AddDate(0, 0, -30)
	default:
		return midnight
	}
}

// quarantineUnknownStatuses drops rows whose status code is outside the fixed
// vocabulary instead of passing them through silently.
func quarantineUnknownStatuses(records []model.TradeLogRecord) []model.TradeLogRecord {
	out := records[:0]
	for _, rec := range records {
		if !model.KnownStatus(rec.Status) {
			logger.WithFields(map[string]interface{}{
				"repo":     "TradeLogRepository",
				"trade_id": rec.TradeID,
				"status":   rec.Status,
			}).Warn("Quarantined trade_log row with unexpected status code")
			continue
		}
		out = append(out, rec)
	}
	return out
}
