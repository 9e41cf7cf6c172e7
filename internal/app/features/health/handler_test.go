package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/statcard/internal/app/features/health"
	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/dalemusser/statcard/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return errors.New("connection refused")
}

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Charts   *struct {
		Strategy   string `json:"strategy"`
		Registered bool   `json:"registered"`
	} `json:"charts,omitempty"`
	Message string `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestServe_DatabaseConnected(t *testing.T) {
	// Set up a test database to get a connected client
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	reg := statcard.NewRegistration(chartengine.NewRegistry(), logger)
	reg.Ensure()
	handler := health.NewHandler(db.Client(), reg, logger)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	// Verify content type
	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", contentType, "application/json")
	}

	resp := decode(t, rec)
	if resp.Status != "ok" {
		t.Errorf("status: got %q, want %q", resp.Status, "ok")
	}
	if resp.Database != "connected" {
		t.Errorf("database: got %q, want %q", resp.Database, "connected")
	}
	if resp.Charts == nil || !resp.Charts.Registered || resp.Charts.Strategy != statcard.StrategyBulkAdd {
		t.Errorf("charts: got %+v, want registered via %s", resp.Charts, statcard.StrategyBulkAdd)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	handler := &health.Handler{Client: failingPinger{}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	resp := decode(t, rec)
	if resp.Status != "error" || resp.Database != "disconnected" {
		t.Errorf("got status %q database %q", resp.Status, resp.Database)
	}
	if resp.Message != "Database unavailable" {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestServe_NoRegistrationYet(t *testing.T) {
	logger := zap.NewNop()
	reg := statcard.NewRegistration(chartengine.Sealed(chartengine.NewRegistry()), logger)
	handler := health.NewHandler(nil, reg, logger)

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	resp := decode(t, rec)
	if resp.Charts == nil {
		t.Fatal("expected charts status")
	}
	if resp.Charts.Registered {
		t.Error("expected registered=false before Ensure")
	}
	if resp.Charts.Strategy != statcard.StrategyNone {
		t.Errorf("strategy: got %q, want %q", resp.Charts.Strategy, statcard.StrategyNone)
	}
	if resp.Database != "not configured" {
		t.Errorf("database: got %q", resp.Database)
	}
}
