package errors

import (
	"github.com/sirupsen/logrus"
)

// ResponseFlag is a short code describing why a backend exchange failed.
// The codes follow Envoy's response flags.
type ResponseFlag string

const (
	// TLS errors
	TLE ResponseFlag = "TLE" // certificate expired
	TLI ResponseFlag = "TLI" // certificate invalid
	TLM ResponseFlag = "TLM" // hostname mismatch
	TLH ResponseFlag = "TLH" // handshake failed
	TLP ResponseFlag = "TLP" // protocol error

	// Connection errors
	UCF ResponseFlag = "UCF" // connection refused
	UCT ResponseFlag = "UCT" // connection timeout
	URR ResponseFlag = "URR" // connection reset
	URT ResponseFlag = "URT" // request timeout
	EPI ResponseFlag = "EPI" // broken pipe
	NRH ResponseFlag = "NRH" // no route to host
	DNS ResponseFlag = "DNS" // name resolution failed

	// CDC is used when the client went away before the backend answered.
	CDC ResponseFlag = "CDC"
	// URS is used for 5xx answers from a reachable backend.
	URS ResponseFlag = "URS"
	// UPE is the generic fallback.
	UPE ResponseFlag = "UPE"
)

func (f ResponseFlag) String() string {
	return string(f)
}

// ErrorClassification describes a failed exchange with a backend.
type ErrorClassification struct {
	Flag ResponseFlag
	// Details is a snake_case description, e.g. "connection_refused".
	Details string
	// Destination is the backend name, e.g. "tracer".
	Destination string
	// Target is the backend host that was being accessed.
	Target string
	// UpstreamStatus is the HTTP status of the backend answer, 0 when
	// there was none.
	UpstreamStatus int
}

// NewErrorClassification creates a classification with flag and details.
func NewErrorClassification(flag ResponseFlag, details string) *ErrorClassification {
	return &ErrorClassification{
		Flag:    flag,
		Details: details,
	}
}

// WithDestination sets the backend name.
func (ec *ErrorClassification) WithDestination(destination string) *ErrorClassification {
	ec.Destination = destination
	return ec
}

// WithTarget sets the backend host.
func (ec *ErrorClassification) WithTarget(target string) *ErrorClassification {
	ec.Target = target
	return ec
}

// WithUpstreamStatus sets the backend HTTP status.
func (ec *ErrorClassification) WithUpstreamStatus(status int) *ErrorClassification {
	ec.UpstreamStatus = status
	return ec
}

// Fields returns the classification as log fields. Empty values are left out.
func (ec *ErrorClassification) Fields() logrus.Fields {
	if ec == nil {
		return logrus.Fields{}
	}

	fields := logrus.Fields{
		"response_flag": ec.Flag.String(),
		"error_details": ec.Details,
	}
	if ec.Destination != "" {
		fields["destination"] = ec.Destination
	}
	if ec.Target != "" {
		fields["upstream_target"] = ec.Target
	}
	if ec.UpstreamStatus != 0 {
		fields["upstream_status"] = ec.UpstreamStatus
	}
	return fields
}
