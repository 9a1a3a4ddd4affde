package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client abstracts LLM providers. Complete returns the raw model text for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnavailable is returned when no provider is configured or it failed to initialize.
var ErrUnavailable = errors.New("llm provider unavailable")

// Unavailable is the client used when provider wiring failed. Every call errors,
// so call sites resolve to their default records.
type Unavailable struct {
	Reason string
}

// Complete returns ErrUnavailable.
func (u Unavailable) Complete(ctx context.Context, prompt string) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

type timeoutClient struct {
	next    Client
	timeout time.Duration
}

// WithTimeout bounds every Complete call made through c.
func WithTimeout(c Client, timeout time.Duration) Client {
	if c == nil || timeout <= 0 {
		return c
	}
	return &timeoutClient{next: c, timeout: timeout}
}

func (t *timeoutClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Complete(ctx, prompt)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	_ Client = Unavailable{}
	_ Client = (*timeoutClient)(nil)
	_ Client = ClientFunc(nil)
)
