package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradechat/src/repository"
)

type stubDiagnoser struct {
	result *repository.StoreDiagnostics
	err    error
}

func (s stubDiagnoser) Diagnose(ctx context.Context) (*repository.StoreDiagnostics, error) {
	return s.result, s.err
}

func TestDiagnosticsHandlerSuccess(t *testing.T) {
	h := DiagnosticsHandler(stubDiagnoser{result: &repository.StoreDiagnostics{
		TableExists:    true,
		RecordCount:    42,
		SampleTradeIDs: []string{"tid00000553"},
	}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/test-db", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var body diagnosticsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ConnectionStatus != "success" || !body.TableExists || body.RecordCount != 42 {
		t.Fatalf("unexpected diagnostics payload: %+v", body)
	}
	if len(body.SampleTradeIDs) != 1 || body.SampleTradeIDs[0] != "tid00000553" {
		t.Fatalf("unexpected sample ids: %+v", body.SampleTradeIDs)
	}
	for _, name := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_PORT", "DB_NAME"} {
		if _, ok := body.EnvVars[name]; !ok {
			t.Fatalf("missing env presence entry for %s: %+v", name, body.EnvVars)
		}
	}
}

func TestDiagnosticsHandlerFailure(t *testing.T) {
	h := DiagnosticsHandler(stubDiagnoser{err: fmt.Errorf("dial tcp: connection refused")})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/test-db", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on diagnostics failure, got %d", rec.Code)
	}

	var body diagnosticsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ConnectionStatus != "failed" {
		t.Fatalf("unexpected connection status %q", body.ConnectionStatus)
	}
	if body.Error == nil || *body.Error != "dial tcp: connection refused" {
		t.Fatalf("expected the failure message in the payload: %+v", body.Error)
	}
}
