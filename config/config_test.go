package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValueAndWriteDefaultConf(t *testing.T) {
	cases := []struct {
		FieldName   string
		EnvVarName  string
		FieldGetter func(*Config) interface{}

		defaultValue  interface{}
		expectedValue interface{}
	}{
		{
			"ListenPort", "TYK_RR_LISTENPORT",
			func(c *Config) interface{} { return c.ListenPort },
			8080, 9090,
		},
		{
			"DispatchMode", "TYK_RR_DISPATCHMODE",
			func(c *Config) interface{} { return c.DispatchMode },
			DispatchInternal, DispatchForward,
		},
		{
			"TracerURL", "TYK_RR_TRACER_URL",
			func(c *Config) interface{} { return c.Tracer.URL },
			"http://127.0.0.1:8546", "http://tracer:8545",
		},
		{
			"MaxRequestBodySize", "TYK_RR_HTTPSERVEROPTIONS_MAXREQUESTBODYSIZE",
			func(c *Config) interface{} { return c.HttpServerOptions.MaxRequestBodySize },
			int64(10 << 20), int64(1024),
		},
		{
			"HealthCheckEnable", "TYK_RR_HEALTHCHECK_ENABLE",
			func(c *Config) interface{} { return c.HealthCheck.Enable },
			true, false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.FieldName, func(t *testing.T) {
			conf := &Config{}
			require.NoError(t, WriteDefault("", conf))
			assert.Equal(t, tc.defaultValue, tc.FieldGetter(conf))

			t.Setenv(tc.EnvVarName, toEnv(tc.expectedValue))
			require.NoError(t, WriteDefault("", conf))
			assert.Equal(t, tc.expectedValue, tc.FieldGetter(conf))
		})
	}
}

func toEnv(v interface{}) string {
	b, _ := json.Marshal(v)
	if s, ok := v.(string); ok {
		return s
	}
	return string(b)
}

func TestLoad_WritesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tyk-rpc-router.conf")

	conf := &Config{}
	require.NoError(t, Load([]string{path, filepath.Join(dir, "other.conf")}, conf))

	assert.FileExists(t, path)
	assert.Equal(t, path, conf.OriginalPath)
	assert.Equal(t, Default.ListenPort, conf.ListenPort)
	assert.Equal(t, Default.CORS.AllowedOrigins, conf.CORS.AllowedOrigins)
	assert.NoError(t, conf.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "router.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"listen_port": 9000,
		"dispatch_mode": "forward",
		"proxy": {"url": "http://proxy:8545"},
		"cors": {"enable": true, "allowed_origins": ["https://app.example"]}
	}`), 0644))

	t.Setenv("TYK_RR_TRACER_URL", "http://tracer:8545")

	conf := &Config{}
	require.NoError(t, Load([]string{filepath.Join(dir, "missing.conf"), path}, conf))

	assert.Equal(t, path, conf.OriginalPath)
	assert.Equal(t, 9000, conf.ListenPort)
	assert.Equal(t, DispatchForward, conf.DispatchMode)
	assert.Equal(t, "http://proxy:8545", conf.Proxy.URL)
	assert.Equal(t, "http://tracer:8545", conf.Tracer.URL)
	assert.Equal(t, []string{"https://app.example"}, conf.CORS.AllowedOrigins)
	assert.Equal(t, "/health", conf.HealthCheck.Path)

	assert.Equal(t, []string{"*"}, Default.CORS.AllowedOrigins)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{"listen_port":`), 0644))

	err := Load([]string{path}, &Config{})
	assert.ErrorContains(t, err, "couldn't unmarshal config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		conf := &Config{}
		require.NoError(t, resetToDefault(conf))
		return conf
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.ListenPort = 0 }, "listen_port 0 out of range"},
		{"path", func(c *Config) { c.ListenPath = "rpc" }, `listen_path "rpc" must start with /`},
		{"reserved path", func(c *Config) { c.ListenPath = "/tracer" }, `listen_path "/tracer" is reserved`},
		{"mode", func(c *Config) { c.DispatchMode = "redirect" }, `dispatch_mode "redirect"`},
		{"missing url", func(c *Config) { c.Proxy.URL = "" }, "proxy.url is required"},
		{"bad scheme", func(c *Config) { c.Tracer.URL = "ws://tracer" }, "must be an http or https url"},
		{"body size", func(c *Config) { c.HttpServerOptions.MaxRequestBodySize = -1 }, "max_request_body_size"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, `log_level "trace"`},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, `log_format "xml"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf := valid()
			tc.mutate(conf)
			assert.ErrorContains(t, conf.Validate(), tc.want)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	conf := &Config{}
	err := conf.Validate()
	require.Error(t, err)

	assert.ErrorContains(t, err, "listen_port 0 out of range")
	assert.ErrorContains(t, err, "proxy.url is required")
	assert.ErrorContains(t, err, "tracer.url is required")
}
