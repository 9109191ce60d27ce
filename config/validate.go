package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
	logger "github.com/TykTechnologies/tyk-rpc-router/log"
)

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ListenPort < 1 || c.ListenPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("listen_port %d out of range", c.ListenPort))
	}

	if !strings.HasPrefix(c.ListenPath, "/") {
		result = multierror.Append(result, fmt.Errorf("listen_path %q must start with /", c.ListenPath))
	}

	reserved := []string{"/proxy", "/tracer", c.HealthCheck.Path, c.Metrics.Path}
	for _, p := range reserved {
		if p != "" && c.ListenPath == p {
			result = multierror.Append(result, fmt.Errorf("listen_path %q is reserved", c.ListenPath))
		}
	}

	switch c.DispatchMode {
	case "", DispatchInternal, DispatchForward:
	default:
		result = multierror.Append(result, fmt.Errorf("dispatch_mode %q must be %q or %q", c.DispatchMode, DispatchInternal, DispatchForward))
	}

	if err := validateBackendURL("proxy.url", c.Proxy.URL); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateBackendURL("tracer.url", c.Tracer.URL); err != nil {
		result = multierror.Append(result, err)
	}

	if c.ProxyDefaultTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("proxy_default_timeout must not be negative"))
	}

	if c.HttpServerOptions.MaxRequestBodySize < 0 {
		result = multierror.Append(result, fmt.Errorf("http_server_options.max_request_body_size must not be negative"))
	}

	if !logger.ValidLevel(c.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("log_level %q is not supported", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "json" {
		result = multierror.Append(result, fmt.Errorf("log_format %q must be empty or json", c.LogFormat))
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = errors.Formatter
	return result
}

func validateBackendURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must be an http or https url", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q has no host", field, raw)
	}
	return nil
}
