package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"interview-coach/internal/shared/metrics"
	"interview-coach/internal/shared/telemetry"
)

// ErrInvalidOutput marks model output that failed parsing or schema validation.
var ErrInvalidOutput = errors.New("invalid llm output")

// Schema is a compiled JSON schema for one call site's response shape.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// MustSchema compiles a JSON schema document and panics if it is invalid.
func MustSchema(name, src string) *Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("llm: compile schema %s: %v", name, err))
	}
	return &Schema{name: name, schema: compiled}
}

// Name returns the schema name used in logs.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Validate checks doc against the schema.
func (s *Schema) Validate(doc string) error {
	if s == nil || s.schema == nil {
		return nil
	}
	res, err := s.schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(msgs, "; "))
}

// Result is either a decoded payload or the call site's default record.
type Result[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

// Decode parses raw model text into T. Any failure yields fallback with Fallback set.
func Decode[T any](raw string, schema *Schema, fallback T) Result[T] {
	doc := StripFences(raw)
	if doc == "" {
		return Result[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("%w: empty response", ErrInvalidOutput)}
	}
	if !json.Valid([]byte(doc)) {
		return Result[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("%w: not json", ErrInvalidOutput)}
	}
	if err := schema.Validate(doc); err != nil {
		return Result[T]{Value: fallback, Fallback: true, Err: err}
	}
	var out T
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return Result[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("%w: %v", ErrInvalidOutput, err)}
	}
	return Result[T]{Value: out}
}

// Ask sends prompt to client and decodes the reply. Transport errors resolve to fallback too.
func Ask[T any](ctx context.Context, client Client, prompt string, schema *Schema, fallback T) Result[T] {
	var res Result[T]
	if client == nil {
		res = Result[T]{Value: fallback, Fallback: true, Err: ErrUnavailable}
	} else if raw, err := client.Complete(ctx, prompt); err != nil {
		res = Result[T]{Value: fallback, Fallback: true, Err: err}
	} else {
		res = Decode(raw, schema, fallback)
	}

	if res.Fallback {
		metrics.IncLLMFallback()
		telemetry.Warn("llm.fallback", map[string]any{
			"schema": schema.Name(),
			"error":  res.Err,
		})
	}
	return res
}

// StripFences removes a surrounding markdown code fence from model output.
func StripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```JSON")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimLeft(clean, "\r\n")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}
	return strings.TrimSpace(clean)
}
