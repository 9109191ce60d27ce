// Package errors re-exports the standard errors helpers and classifies
// upstream failures into response flags.
package errors

import (
	"errors"
	"strings"
)

var (
	New            = errors.New
	Is             = errors.Is
	As             = errors.As
	Join           = errors.Join
	Unwrap         = errors.Unwrap
	ErrUnsupported = errors.ErrUnsupported
)

// Formatter joins errs one per line. It is used as the multierror format
// for configuration validation.
func Formatter(errs []error) string {
	var result strings.Builder
	for i, err := range errs {
		if i > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(err.Error())
	}

	return result.String()
}
