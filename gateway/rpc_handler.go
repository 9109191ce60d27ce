package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/dispatch"
	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httpctx"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httputil"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httputil/accesslog"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
	jsonrpcerrors "github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc/errors"
	"github.com/TykTechnologies/tyk-rpc-router/internal/uuid"
)

var routerLog = log.WithField("prefix", "router")

// requestID assigns a request id, keeping a valid caller supplied one. The
// id travels to the backend in X-Request-ID.
func (gw *Gateway) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.OrNew(r.Header.Get(headers.XRequestID))
		r.Header.Set(headers.XRequestID, id)
		next.ServeHTTP(w, httpctx.SetRequestID(r, id))
	})
}

// handleRPC classifies a JSON-RPC request and dispatches it. The response
// of the destination is returned unchanged.
func (gw *Gateway) handleRPC(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := httputil.NewStatusRecorder(w)
	record := accesslog.NewRecord().
		WithClientIP(r).
		WithMethod(r).
		WithPath(r).
		WithUserAgent(r).
		WithRequestID(httpctx.RequestID(r))

	defer func() {
		record.WithStatus(rec.Status()).WithLatency(time.Since(start))
		gw.logAccess(record)
	}()

	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(http.MethodPost)(rec, r)
		gw.metrics.ObserveRejected(http.StatusMethodNotAllowed)
		return
	}

	body, err := httputil.ReadBody(r, gw.config.HttpServerOptions.MaxRequestBodySize)
	if err != nil {
		if errors.Is(err, httputil.ErrContentTooLong) {
			httputil.EntityTooLarge(rec, r)
			gw.metrics.ObserveRejected(http.StatusRequestEntityTooLarge)
			return
		}
		routerLog.WithError(err).Debug("Failed to read request body")
		jsonrpcerrors.WriteParseError(rec, nil, jsonrpc.ErrMsgParseError)
		gw.metrics.ObserveRejected(http.StatusBadRequest)
		return
	}

	req, err := jsonrpc.Parse(body)
	if err != nil {
		routerLog.WithError(err).Debug("Rejecting malformed request")
		jsonrpcerrors.WriteParseError(rec, body, jsonrpc.ErrMsgParseError)
		gw.metrics.ObserveRejected(http.StatusBadRequest)
		return
	}

	decision := classifier.Explain(req)
	record.WithRPCMethod(req.Method)

	routerLog.WithFields(logrus.Fields{
		"rpc_method":  req.Method,
		"destination": decision.Destination.String(),
		"reason":      decision.Reason,
		"block_ref":   decision.BlockRef,
	}).Debug("Request classified")

	r = dispatch.WithBody(r, body)
	if timeout := gw.config.ProxyDefaultTimeout; timeout > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout*float64(time.Second)))
		defer cancel()
		r = r.WithContext(ctx)
	}

	out := gw.dispatcher.Forward(rec, r, req, decision.Destination)
	gw.metrics.ObserveRouted(decision, out, time.Since(start))

	record.WithRouting(decision.Destination.String(), string(decision.Reason), string(decision.BlockRef), string(out.Mode))
	if out.Classification != nil {
		record.WithFields(out.Classification.Fields())
	}
	if out.Err != nil {
		routerLog.WithFields(out.Classification.Fields()).WithError(out.Err).Error("Dispatch failed")
	}
}

func (gw *Gateway) logAccess(record *accesslog.Record) {
	if !gw.config.AccessLogs.Enabled {
		return
	}
	log.WithFields(accesslog.Filter(record.Fields(), gw.config.AccessLogs.Template)).Info()
}
