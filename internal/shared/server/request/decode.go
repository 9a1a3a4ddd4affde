package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	// ErrEmptyBody is returned when the request carries no JSON object or an empty one.
	ErrEmptyBody = errors.New("no JSON data provided")

	// ErrMalformedBody is returned when the body is not valid JSON for the target.
	ErrMalformedBody = errors.New("invalid JSON body")
)

// DecodeObject reads a non-empty JSON object from the request body into dst
// and runs binding validation on it.
func DecodeObject(c *gin.Context, dst any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyBody
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(probe) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return err
	}
	return nil
}

// Message returns the client-facing text for a DecodeObject error.
func Message(err error, validationMessage string) string {
	switch {
	case errors.Is(err, ErrEmptyBody):
		return "No JSON data provided"
	case errors.Is(err, ErrMalformedBody):
		return "Invalid JSON body"
	default:
		return validationMessage
	}
}
