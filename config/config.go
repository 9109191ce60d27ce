// Package config holds the router configuration. It is read from a JSON
// file and overlaid with TYK_RR_ prefixed environment variables.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"

	logger "github.com/TykTechnologies/tyk-rpc-router/log"
)

var log = logger.Get()

const envPrefix = "TYK_RR"

// Dispatch modes.
const (
	DispatchInternal = "internal"
	DispatchForward  = "forward"
)

// BackendConfig describes one destination backend.
type BackendConfig struct {
	// URL is where JSON-RPC requests for this destination are POSTed.
	URL string `json:"url"`
}

type HttpServerOptionsConfig struct {
	// ReadTimeout and WriteTimeout are in seconds.
	ReadTimeout  int `json:"read_timeout"`
	WriteTimeout int `json:"write_timeout"`
	// MaxRequestBodySize caps the inbound body in bytes. 0 disables the check.
	MaxRequestBodySize  int64 `json:"max_request_body_size"`
	EnableProxyProtocol bool  `json:"enable_proxy_protocol"`
	// EnableHTTP2 accepts cleartext HTTP/2 (h2c) next to HTTP/1.1.
	EnableHTTP2 bool `json:"enable_http2"`
	// FlushInterval is the reverse proxy flush interval in milliseconds.
	FlushInterval int `json:"flush_interval"`
}

type CORSConfig struct {
	Enable             bool     `json:"enable"`
	AllowedOrigins     []string `json:"allowed_origins"`
	AllowedMethods     []string `json:"allowed_methods"`
	AllowedHeaders     []string `json:"allowed_headers"`
	ExposedHeaders     []string `json:"exposed_headers"`
	AllowCredentials   bool     `json:"allow_credentials"`
	MaxAge             int      `json:"max_age"`
	OptionsPassthrough bool     `json:"options_passthrough"`
	Debug              bool     `json:"debug"`
}

type HealthCheckConfig struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
	// Timeout bounds a single probe, in seconds.
	Timeout int `json:"timeout"`
}

type MetricsConfig struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
}

type AccessLogsConfig struct {
	Enabled bool `json:"enabled"`
	// Template lists the fields to keep. Empty keeps all.
	Template []string `json:"template"`
}

// Config is the router configuration.
type Config struct {
	// OriginalPath is the file the configuration was loaded from.
	OriginalPath string `json:"-" ignored:"true"`

	ListenAddress string `json:"listen_address"`
	ListenPort    int    `json:"listen_port"`
	// ListenPath is where JSON-RPC requests are accepted.
	ListenPath string `json:"listen_path"`

	// DispatchMode is "internal" or "forward".
	DispatchMode string        `json:"dispatch_mode"`
	Proxy        BackendConfig `json:"proxy"`
	Tracer       BackendConfig `json:"tracer"`
	// ProxyDefaultTimeout bounds a backend call, in seconds. 0 means no limit.
	ProxyDefaultTimeout float64 `json:"proxy_default_timeout"`
	// GracefulShutdownTimeoutDuration is in seconds.
	GracefulShutdownTimeoutDuration int `json:"graceful_shutdown_timeout_duration"`

	HttpServerOptions HttpServerOptionsConfig `json:"http_server_options"`
	CORS              CORSConfig              `json:"cors"`
	HealthCheck       HealthCheckConfig       `json:"health_check"`
	Metrics           MetricsConfig           `json:"metrics"`
	AccessLogs        AccessLogsConfig        `json:"access_logs"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Default is the configuration written when no file exists.
var Default = Config{
	ListenPort:   8080,
	ListenPath:   "/",
	DispatchMode: DispatchInternal,
	Proxy: BackendConfig{
		URL: "http://127.0.0.1:8545",
	},
	Tracer: BackendConfig{
		URL: "http://127.0.0.1:8546",
	},
	ProxyDefaultTimeout:             30,
	GracefulShutdownTimeoutDuration: 30,
	HttpServerOptions: HttpServerOptionsConfig{
		ReadTimeout:        120,
		WriteTimeout:       120,
		MaxRequestBodySize: 10 << 20,
	},
	CORS: CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	},
	HealthCheck: HealthCheckConfig{
		Enable:  true,
		Path:    "/health",
		Timeout: 5,
	},
	Metrics: MetricsConfig{
		Enable: true,
		Path:   "/metrics",
	},
	AccessLogs: AccessLogsConfig{
		Enabled: true,
	},
	LogLevel: "info",
}

// WriteConf writes conf to path as indented JSON.
func WriteConf(path string, conf *Config) error {
	bs, err := json.MarshalIndent(conf, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}

// WriteDefault will set conf to the default config and write it to disk
// in path, if the path is non-empty.
func WriteDefault(path string, conf *Config) error {
	if err := resetToDefault(conf); err != nil {
		return err
	}
	if err := envconfig.Process(envPrefix, conf); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return WriteConf(path, conf)
}

// Load will load a configuration file, trying each of the paths given
// and using the first one that is a regular file and can be opened.
//
// If none exists, a default config will be written to the first path in
// the list.
//
// An error will be returned only if any of the paths existed but was
// not a valid config file.
func Load(paths []string, conf *Config) error {
	var (
		r    io.ReadCloser
		from string
	)
	for _, path := range paths {
		f, err := os.Open(path)
		if err == nil {
			r, from = f, path
			break
		}
		if os.IsNotExist(err) {
			continue
		}
		return err
	}
	if r == nil {
		if len(paths) == 0 {
			return WriteDefault("", conf)
		}
		path := paths[0]
		log.Warnf("No config file found, writing default to %s", path)
		if err := WriteDefault(path, conf); err != nil {
			return err
		}
		log.Info("Loading default configuration...")
		return Load([]string{path}, conf)
	}
	defer r.Close()

	if err := resetToDefault(conf); err != nil {
		return err
	}
	if err := json.NewDecoder(r).Decode(conf); err != nil {
		return fmt.Errorf("couldn't unmarshal config: %w", err)
	}
	conf.OriginalPath = from
	if err := envconfig.Process(envPrefix, conf); err != nil {
		return fmt.Errorf("failed to process config env vars: %w", err)
	}
	return nil
}

// resetToDefault sets conf to a deep copy of Default, so that decoding into
// conf never touches the slices of Default.
func resetToDefault(conf *Config) error {
	b, err := json.Marshal(Default)
	if err != nil {
		return err
	}
	*conf = Config{}
	return json.Unmarshal(b, conf)
}
