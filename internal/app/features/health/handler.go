package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the part of *mongo.Client the health check needs.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client Pinger
	Reg    *statcard.Registration
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the chart
// registration state and logger.
func NewHandler(client *mongo.Client, reg *statcard.Registration, logger *zap.Logger) *Handler {
	h := &Handler{Reg: reg, Log: logger}
	if client != nil {
		h.Client = client
	}
	return h
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string       `json:"status"`
	Database string       `json:"database"`
	Charts   *chartStatus `json:"charts,omitempty"`
	Message  string       `json:"message,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// chartStatus reports the doughnut registration state.
type chartStatus struct {
	Strategy   string `json:"strategy"`
	Registered bool   `json:"registered"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "charts":{"strategy":"add-controllers","registered":true} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}
	if h.Reg != nil {
		resp.Charts = &chartStatus{Strategy: h.Reg.Strategy(), Registered: h.Reg.Done()}
	}

	if h.Client == nil {
		resp.Database = "not configured"
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
