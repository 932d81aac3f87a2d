package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	logger "github.com/sirupsen/logrus"

	"tradechat/src/model"
	"tradechat/src/repository"
)

type storeDiagnoser interface {
	Diagnose(ctx context.Context) (*repository.StoreDiagnostics, error)
}

// diagnosticsResponse mirrors the shape the ops dashboard expects from the
// test-db endpoint.
type diagnosticsResponse struct {
	ConnectionStatus string                `json:"connectionStatus"`
	TableExists      bool                  `json:"tableExists"`
	RecordCount      int64                 `json:"recordCount"`
	SampleRecord     *model.TradeLogRecord `json:"sampleRecord"`
	SampleTradeIDs   []string              `json:"sampleTradeIds"`
	Error            *string               `json:"error"`
	EnvVars          map[string]string     `json:"envVars"`
}

// DiagnosticsHandler serves GET /api/test-db: store connectivity, table
// presence, a known-record sanity check, a sample row and sample ids.
// Operational troubleshooting only, not part of the chat contract.
func DiagnosticsHandler(repo storeDiagnoser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := diagnosticsResponse{
			ConnectionStatus: "failed",
			SampleTradeIDs:   []string{},
			EnvVars:          envVarPresence(),
		}

		status := http.StatusInternalServerError
		result, err := repo.Diagnose(r.Context())
		if err != nil {
			logger.WithError(err).Error("Database diagnostics failed")
			message := err.Error()
			response.Error = &message
		} else {
			status = http.StatusOK
			response.ConnectionStatus = "success"
			response.TableExists = result.TableExists
			response.RecordCount = result.RecordCount
			response.SampleRecord = result.SampleRecord
			response.SampleTradeIDs = result.SampleTradeIDs
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("Failed to encode diagnostics response")
		}
	}
}

func envVarPresence() map[string]string {
	vars := map[string]string{}
	for _, name := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_PORT", "DB_NAME"} {
		if os.Getenv(name) != "" {
			vars[name] = "Set"
		} else {
			vars[name] = "Missing"
		}
	}
	return vars
}

// DefaultDiagnosticsHandler wires the handler to the production repository.
func DefaultDiagnosticsHandler() http.HandlerFunc {
	return DiagnosticsHandler(repository.NewTradeLogRepository())
}
