package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrRequestBodyTooLarge is returned by ReadJSONBody when the body exceeds
// MaxRequestBodyBytes.
var ErrRequestBodyTooLarge = errors.New("request body too large")

// ReadJSONBody reads the raw request body without interpreting it, leaving
// validation to the caller. An absent body yields an empty message.
func ReadJSONBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrRequestBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return json.RawMessage(body), nil
}
