package healthcheck_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/TykTechnologies/tyk-rpc-router/internal/healthcheck"
)

type fixedCheck struct {
	name string
	err  error
}

func staticCheck(name string, err error) fixedCheck {
	return fixedCheck{name: name, err: err}
}

func (f fixedCheck) Name() string { return f.name }

func (f fixedCheck) Result(context.Context) error { return f.err }

func clearTimestamps(r *healthcheck.Response) {
	for i := range r.Components {
		r.Components[i].ObservationTS = time.Time{}
	}
}

func TestRunner_Info(t *testing.T) {
	name := "TestRunner check"
	logger, hook := logtest.NewNullLogger()

	runner := healthcheck.NewRunner(logger)
	runner.Info(staticCheck(name, io.EOF))

	result := runner.Do(context.Background())
	clearTimestamps(&result)

	want := healthcheck.Response{
		Status:     healthcheck.StatusPass,
		StatusCode: http.StatusOK,
		Components: []healthcheck.CheckResult{
			{
				Name:   name,
				Status: healthcheck.StatusPass,
			},
		},
	}

	assert.Equal(t, want, result)
	if assert.Len(t, hook.Entries, 1) {
		assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	}
}

func TestRunner_Optional(t *testing.T) {
	name := "TestRunner check"
	logger, hook := logtest.NewNullLogger()

	runner := healthcheck.NewRunner(logger)
	runner.Optional(staticCheck(name, io.EOF))

	result := runner.Do(context.Background())
	clearTimestamps(&result)

	want := healthcheck.Response{
		Status:     healthcheck.StatusWarn,
		StatusCode: http.StatusMultiStatus,
		Components: []healthcheck.CheckResult{
			{
				Name:   name,
				Status: healthcheck.StatusWarn,
				Output: io.EOF.Error(),
			},
		},
	}

	assert.Equal(t, want, result)
	if assert.Len(t, hook.Entries, 1) {
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	}
}

func TestRunner_Required(t *testing.T) {
	name := "TestRunner check"
	logger, _ := logtest.NewNullLogger()

	runner := healthcheck.NewRunner(logger)
	runner.Require(staticCheck(name, io.EOF))

	result := runner.Do(context.Background())
	clearTimestamps(&result)

	want := healthcheck.Response{
		Status:     healthcheck.StatusFail,
		StatusCode: http.StatusServiceUnavailable,
		Components: []healthcheck.CheckResult{
			{
				Name:   name,
				Status: healthcheck.StatusFail,
				Output: io.EOF.Error(),
			},
		},
	}

	assert.Equal(t, want, result)
}

func TestRunner_FailWinsOverWarn(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	runner := healthcheck.NewRunner(logger, staticCheck("tracer", io.EOF))
	runner.Optional(staticCheck("proxy", io.EOF))
	runner.Require(staticCheck("ok", nil))

	result := runner.Do(context.Background())
	clearTimestamps(&result)

	assert.Equal(t, healthcheck.StatusFail, result.Status)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
	assert.Equal(t, []string{"tracer", "proxy", "ok"}, []string{
		result.Components[0].Name,
		result.Components[1].Name,
		result.Components[2].Name,
	})
}
