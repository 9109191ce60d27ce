package gateway

import (
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httpctx"
	tykhttputil "github.com/TykTechnologies/tyk-rpc-router/internal/httputil"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
	jsonrpcerrors "github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc/errors"
)

var bufferPool = tykhttputil.NewSyncBufferPool(tykhttputil.DefaultBufferSize)

// newBackendProxy returns a reverse proxy that POSTs to target whatever
// path the inbound request had.
func newBackendProxy(dest classifier.Destination, target *url.URL, transport http.RoundTripper, flushInterval time.Duration) *httputil.ReverseProxy {
	logger := log.WithFields(logrus.Fields{
		"prefix":      "dispatch",
		"destination": dest.String(),
	})

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = target.Path
			pr.Out.URL.RawPath = target.RawPath
			pr.Out.Header.Set(headers.XRouterDestination, dest.String())
			pr.SetXForwarded()
		},
		Transport:     transport,
		FlushInterval: flushInterval,
		BufferPool:    bufferPool,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			ec := errors.ClassifyUpstreamError(err, dest.String(), target.Host)
			logger.WithFields(ec.Fields()).WithError(err).Error("Backend request failed")

			var body []byte
			if r.GetBody != nil {
				if rc, gerr := r.GetBody(); gerr == nil {
					body, _ = io.ReadAll(rc)
					rc.Close()
				}
			}
			jsonrpcerrors.WriteJSONRPCError(w, jsonrpcerrors.RequestID(body), http.StatusBadGateway, jsonrpc.ErrMsgUpstream)
		},
	}
}

// internalOnly serves next only for requests dispatched by the router.
// Anyone else gets a 404, as if the route did not exist.
func internalOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httpctx.IsInternalRouting(r) {
			tykhttputil.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
