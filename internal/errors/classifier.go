package errors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// ClassifyUpstreamError classifies an error returned while forwarding a
// request to a backend. It returns nil if err is nil.
//
// Checks run in order: TLS, syscall, DNS, context, net timeouts, then the
// error string. UPE is returned when nothing matches.
func ClassifyUpstreamError(err error, destination, target string) *ErrorClassification {
	if err == nil {
		return nil
	}

	var urlErr *url.Error
	if As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if As(err, &opErr) {
		err = opErr.Err
	}

	ec := classify(err)
	return ec.WithDestination(destination).WithTarget(target)
}

// ClassifyUpstreamResponse classifies a 5xx answer from a reachable backend.
func ClassifyUpstreamResponse(statusCode int, destination, target string) *ErrorClassification {
	return NewErrorClassification(URS, "upstream_response_5xx").
		WithDestination(destination).
		WithTarget(target).
		WithUpstreamStatus(statusCode)
}

func classify(err error) *ErrorClassification {
	if ec := classifyTLSError(err); ec != nil {
		return ec
	}

	var errno syscall.Errno
	if As(err, &errno) {
		if ec := classifyErrno(errno); ec != nil {
			return ec
		}
	}

	var dnsErr *net.DNSError
	if As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return NewErrorClassification(DNS, "dns_not_found")
		}
		return NewErrorClassification(DNS, "dns_resolution_failed")
	}

	// context.DeadlineExceeded is also a net.Error.
	if Is(err, context.DeadlineExceeded) {
		return NewErrorClassification(URT, "context_deadline_exceeded")
	}

	if Is(err, context.Canceled) {
		return NewErrorClassification(CDC, "client_disconnected")
	}

	var netErr net.Error
	if As(err, &netErr) && netErr.Timeout() {
		return NewErrorClassification(URT, "request_timeout")
	}

	if ec := classifyByErrorString(err); ec != nil {
		return ec
	}

	return NewErrorClassification(UPE, "upstream_error")
}

func classifyTLSError(err error) *ErrorClassification {
	var certInvalidErr x509.CertificateInvalidError
	if As(err, &certInvalidErr) {
		if certInvalidErr.Reason == x509.Expired {
			return NewErrorClassification(TLE, "tls_certificate_expired")
		}
		return NewErrorClassification(TLI, "tls_certificate_invalid")
	}

	var hostnameErr x509.HostnameError
	if As(err, &hostnameErr) {
		return NewErrorClassification(TLM, "tls_hostname_mismatch")
	}

	var unknownAuthErr x509.UnknownAuthorityError
	if As(err, &unknownAuthErr) {
		return NewErrorClassification(TLI, "tls_unknown_authority")
	}

	var recordHeaderErr tls.RecordHeaderError
	if As(err, &recordHeaderErr) {
		return NewErrorClassification(TLP, "tls_protocol_error")
	}

	return nil
}

func classifyErrno(errno syscall.Errno) *ErrorClassification {
	switch errno {
	case syscall.ECONNREFUSED:
		return NewErrorClassification(UCF, "connection_refused")
	case syscall.ETIMEDOUT:
		return NewErrorClassification(UCT, "connection_timeout")
	case syscall.ECONNRESET:
		return NewErrorClassification(URR, "connection_reset")
	case syscall.ENETUNREACH:
		return NewErrorClassification(NRH, "network_unreachable")
	case syscall.EHOSTUNREACH:
		return NewErrorClassification(NRH, "host_unreachable")
	case syscall.EPIPE:
		return NewErrorClassification(EPI, "broken_pipe")
	}
	return nil
}

func classifyByErrorString(err error) *ErrorClassification {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout awaiting response headers"):
		return NewErrorClassification(URT, "response_headers_timeout")
	case strings.Contains(errStr, "no such host"):
		return NewErrorClassification(DNS, "dns_not_found")
	case strings.Contains(errStr, "connection refused"):
		return NewErrorClassification(UCF, "connection_refused")
	case strings.Contains(errStr, "connection reset"):
		return NewErrorClassification(URR, "connection_reset")
	case strings.Contains(errStr, "broken pipe"):
		return NewErrorClassification(EPI, "broken_pipe")
	case strings.Contains(errStr, "handshake failure"),
		strings.Contains(errStr, "first record does not look like a tls handshake"):
		return NewErrorClassification(TLH, "tls_handshake_failure")
	}

	return nil
}
