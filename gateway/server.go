package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pires/go-proxyproto"
	"golang.org/x/sync/errgroup"

	"github.com/TykTechnologies/tyk-rpc-router/config"
	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
)

// Start builds the gateway from conf and serves it until ctx is done.
func Start(ctx context.Context, conf *config.Config) error {
	gw, err := NewGateway(conf)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(conf.ListenAddress, strconv.Itoa(conf.ListenPort))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	return gw.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. ln is wrapped for the PROXY protocol when enabled.
func (gw *Gateway) Serve(ctx context.Context, ln net.Listener) error {
	opts := gw.config.HttpServerOptions
	if opts.EnableProxyProtocol {
		mainLog.Info("PROXY protocol is enabled")
		ln = &proxyproto.Listener{Listener: ln}
	}

	srv := &http.Server{
		Handler:           gw.Handler(),
		ReadTimeout:       time.Duration(opts.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(opts.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(opts.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		mainLog.Infof("Router listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := time.Duration(gw.config.GracefulShutdownTimeoutDuration) * time.Second
		if timeout <= 0 {
			return srv.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		mainLog.Info("Shutting down router...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		mainLog.Info("Router stopped")
		return nil
	})

	return g.Wait()
}
