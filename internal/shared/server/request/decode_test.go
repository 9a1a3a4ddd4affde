package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type sample struct {
	Name *string `json:"name" binding:"required"`
	Age  int     `json:"age"`
}

func contextWithBody(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return c
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"name":"ada","age":3}`},
		{name: "empty string value allowed", body: `{"name":""}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "null", body: "null", wantErr: ErrEmptyBody},
		{name: "empty object", body: " {} ", wantErr: ErrEmptyBody},
		{name: "array", body: `[1,2]`, wantErr: ErrMalformedBody},
		{name: "garbage", body: `{nope`, wantErr: ErrMalformedBody},
		{name: "wrong type", body: `{"name":"a","age":"x"}`, wantErr: ErrMalformedBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst sample
			err := DecodeObject(contextWithBody(tt.body), &dst)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeObjectRunsValidation(t *testing.T) {
	var dst sample
	err := DecodeObject(contextWithBody(`{"age":3}`), &dst)
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if errors.Is(err, ErrEmptyBody) || errors.Is(err, ErrMalformedBody) {
		t.Fatalf("expected validator error, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(ErrEmptyBody, "x"); got != "No JSON data provided" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Message(ErrMalformedBody, "x"); got != "Invalid JSON body" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Message(errors.New("field missing"), "Missing required fields"); got != "Missing required fields" {
		t.Fatalf("unexpected message %q", got)
	}
}
