package httputil

import (
	"errors"
	"io"
	"net/http"
)

// ErrContentTooLong is returned when a body exceeds the configured limit.
var ErrContentTooLong = errors.New("request entity too large")

// ReadBody reads the whole request body, failing with ErrContentTooLong
// once more than limit bytes were seen. A limit <= 0 disables the check.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	if limit <= 0 {
		return io.ReadAll(r.Body)
	}

	if r.ContentLength > limit {
		return nil, ErrContentTooLong
	}

	// one extra byte tells an exact fit from an overflow
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, ErrContentTooLong
	}
	return body, nil
}
