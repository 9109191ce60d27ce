package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
)

// handleHealth probes both backends and reports the aggregate.
func (gw *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if timeout := gw.config.HealthCheck.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	res := gw.health.Do(ctx)

	w.Header().Set(headers.ContentType, headers.ApplicationJSON)
	w.WriteHeader(res.StatusCode)
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		mainLog.WithError(err).Error("Failed to write health check response")
	}
}
