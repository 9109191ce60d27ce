// Package gateway is the HTTP surface of the router: the JSON-RPC ingress,
// the internal destination routes, health and metrics.
package gateway

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/TykTechnologies/tyk-rpc-router/common/option"
	"github.com/TykTechnologies/tyk-rpc-router/config"
	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/dispatch"
	"github.com/TykTechnologies/tyk-rpc-router/internal/healthcheck"
	logger "github.com/TykTechnologies/tyk-rpc-router/log"
)

var (
	log     = logger.Get()
	mainLog = log.WithField("prefix", "main")
)

// Gateway wires the classifier, the dispatcher and the destinations.
type Gateway struct {
	config *config.Config

	dispatcher *dispatch.Dispatcher
	metrics    *Metrics
	health     *healthcheck.Runner
	backends   map[classifier.Destination]http.Handler

	transport      http.RoundTripper
	tracerProvider trace.TracerProvider

	handler http.Handler
}

// WithTransport sets the round tripper used for backend calls.
func WithTransport(rt http.RoundTripper) option.Option[Gateway] {
	return func(gw *Gateway) {
		gw.transport = rt
	}
}

// WithTracerProvider sets the provider for dispatch spans.
func WithTracerProvider(tp trace.TracerProvider) option.Option[Gateway] {
	return func(gw *Gateway) {
		gw.tracerProvider = tp
	}
}

// NewGateway validates conf and builds the router.
func NewGateway(conf *config.Config, opts ...option.Option[Gateway]) (*Gateway, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	gw := option.New(opts).Build(Gateway{
		config:    conf,
		metrics:   NewMetrics(),
		transport: http.DefaultTransport,
	})

	targets := map[classifier.Destination]string{
		classifier.Proxy:  conf.Proxy.URL,
		classifier.Tracer: conf.Tracer.URL,
	}

	flushInterval := time.Duration(conf.HttpServerOptions.FlushInterval) * time.Millisecond
	gw.backends = make(map[classifier.Destination]http.Handler, len(targets))
	for dest, raw := range targets {
		target, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s url: %w", dest, err)
		}
		gw.backends[dest] = internalOnly(newBackendProxy(dest, target, gw.transport, flushInterval))
	}

	router, err := gw.newRouter(targets)
	if err != nil {
		return nil, err
	}

	var dispatchOpts []option.Option[dispatch.Dispatcher]
	if gw.tracerProvider != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithTracer(gw.tracerProvider))
	}
	gw.dispatcher = dispatch.New(router, dispatchOpts...)

	gw.health = healthcheck.NewRunner(log.WithField("prefix", "healthcheck"))
	client := &http.Client{Transport: gw.transport}
	for _, dest := range classifier.Destinations() {
		gw.health.Require(healthcheck.NewRPCCheck(dest.String(), targets[dest], client))
	}

	gw.handler = gw.buildHandler()
	return gw, nil
}

func (gw *Gateway) newRouter(targets map[classifier.Destination]string) (dispatch.Router, error) {
	mode, err := dispatch.ParseMode(gw.config.DispatchMode)
	if err != nil {
		return nil, err
	}

	mainLog.WithField("mode", mode).Info("Dispatch mode selected")

	if mode == dispatch.ModeForward {
		return dispatch.NewForwardRouter(targets, dispatch.WithClient(&http.Client{Transport: gw.transport}))
	}
	return dispatch.NewInternalRouter(gw.backends), nil
}

func (gw *Gateway) buildHandler() http.Handler {
	conf := gw.config

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gw.metrics.ObserveRejected(http.StatusNotFound)
		http.NotFound(w, r)
	})

	for dest, backend := range gw.backends {
		router.Handle(dest.Path(), backend)
	}

	if conf.HealthCheck.Enable {
		router.HandleFunc(conf.HealthCheck.Path, gw.handleHealth).Methods(http.MethodGet, http.MethodHead)
	}

	if conf.Metrics.Enable {
		router.Handle(conf.Metrics.Path, gw.metrics.Handler()).Methods(http.MethodGet)
	}

	chain := alice.New(gw.requestID)
	if conf.CORS.Enable {
		chain = chain.Append(cors.New(cors.Options{
			AllowedOrigins:     conf.CORS.AllowedOrigins,
			AllowedMethods:     conf.CORS.AllowedMethods,
			AllowedHeaders:     conf.CORS.AllowedHeaders,
			ExposedHeaders:     conf.CORS.ExposedHeaders,
			AllowCredentials:   conf.CORS.AllowCredentials,
			MaxAge:             conf.CORS.MaxAge,
			OptionsPassthrough: conf.CORS.OptionsPassthrough,
			Debug:              conf.CORS.Debug,
		}).Handler)
	}
	router.Handle(conf.ListenPath, chain.ThenFunc(gw.handleRPC))

	var h http.Handler = router
	if conf.HttpServerOptions.EnableHTTP2 {
		h = h2c.NewHandler(h, &http2.Server{})
	}
	return h
}

// Handler returns the root handler of the gateway.
func (gw *Gateway) Handler() http.Handler {
	return gw.handler
}

// Metrics returns the gateway collectors.
func (gw *Gateway) Metrics() *Metrics {
	return gw.metrics
}
