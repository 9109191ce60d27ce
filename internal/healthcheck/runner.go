package healthcheck

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

type level int

const (
	levelInfo level = iota
	levelOptional
	levelRequired
)

type registered struct {
	check Checker
	level level
}

// Runner is an object holding Checker implementations.
type Runner struct {
	checks []registered

	logger Logger
}

// NewRunner creates a new runner for Checkers. It requires
// a passed logger, and optionally takes required checks.
func NewRunner(logger Logger, required ...Checker) *Runner {
	r := &Runner{logger: logger}
	r.Require(required...)
	return r
}

// Require adds a new required Checker to the runner.
// The checks must pass.
func (r *Runner) Require(check ...Checker) {
	r.add(levelRequired, check)
}

// Optional adds a new optional Checker to the runner.
// If the checks fail, a warning is emitted.
func (r *Runner) Optional(check ...Checker) {
	r.add(levelOptional, check)
}

// Info adds a new info Checker to the runner.
// The checks can fail and get logged.
func (r *Runner) Info(check ...Checker) {
	r.add(levelInfo, check)
}

func (r *Runner) add(l level, checks []Checker) {
	for _, c := range checks {
		r.checks = append(r.checks, registered{check: c, level: l})
	}
}

// Do runs all health checks concurrently. Components are reported in
// registration order.
func (r *Runner) Do(ctx context.Context) Response {
	errs := make([]error, len(r.checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range r.checks {
		i, c := i, c
		g.Go(func() error {
			errs[i] = c.check.Result(gctx)
			return nil
		})
	}
	_ = g.Wait()

	result := Response{
		Status:     StatusPass,
		StatusCode: http.StatusOK,
	}

	for i, c := range r.checks {
		err := errs[i]
		status := StatusPass

		switch {
		case err == nil:
		case c.level == levelInfo:
			r.logger.Infof("[info] HealthCheck %s reports: %s", c.check.Name(), err)
			err = nil
		case c.level == levelOptional:
			r.logger.Warnf("[warn] HealthCheck %s reports: %s", c.check.Name(), err)
			status = StatusWarn
			// 207 on a failing optional check, unless something already failed
			if result.Status != StatusFail {
				result.Status = StatusWarn
				result.StatusCode = http.StatusMultiStatus
			}
		default:
			status = StatusFail
			result.Status = StatusFail
			result.StatusCode = http.StatusServiceUnavailable
		}

		result.Components = append(result.Components, NewCheckResult(c.check.Name(), status, err))
	}

	return result
}
