package ai

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("empty model response")
	ErrNoJSONObject  = errors.New("no json object in model response")
)

// ExtractionError reports a failed or unusable model call. Raw holds the
// model's text when one was received.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("extraction failed: %v (raw: %q)", e.Err, e.Raw)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
