package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAPIError_ParsesServiceBody(t *testing.T) {
	t.Parallel()
	e := NewAPIError("morphology", 401, []byte(`{"code":"unauthorized","message":"invalid key"}`))
	if e.StatusCode != 401 || e.Message != "invalid key" || e.Code != "unauthorized" {
		t.Fatalf("unexpected error: %+v", e)
	}
	if e.Error() != "morphology: HTTP 401 (unauthorized): invalid key" {
		t.Fatalf("unexpected message: %s", e.Error())
	}
}

func TestNewAPIError_NonJSONBody(t *testing.T) {
	t.Parallel()
	e := NewAPIError("entities", 502, []byte("<html>bad gateway</html>"))
	if e.Body != "<html>bad gateway</html>" {
		t.Fatalf("raw body not kept: %q", e.Body)
	}
	if e.Message != "entities failed: HTTP 502" {
		t.Fatalf("unexpected fallback message: %q", e.Message)
	}
}

func TestCategory(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want ErrorCategory
	}{
		{NewTransportError("op", context.DeadlineExceeded), Recoverable},
		{NewAPIError("op", 400, nil), Irrecoverable},
		{NewAPIError("op", 401, nil), Irrecoverable},
		{NewAPIError("op", 408, nil), Recoverable},
		{NewAPIError("op", 429, nil), Recoverable},
		{NewAPIError("op", 500, nil), Recoverable},
		{NewAPIError("op", 503, nil), Recoverable},
		{&ValidationError{Operation: "op", Missing: []string{"content"}}, Irrecoverable},
		{fmt.Errorf("wrapped: %w", NewAPIError("op", 503, nil)), Recoverable},
		{stderrors.New("plain"), Irrecoverable},
	}
	for _, c := range cases {
		if got := Category(c.err); got != c.want {
			t.Fatalf("Category(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestTransportError_PreservesCause(t *testing.T) {
	t.Parallel()
	cause := stderrors.New("connection refused")
	e := NewTransportError("ping", cause)
	if !stderrors.Is(e, cause) {
		t.Fatal("cause identity lost")
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()
	e := &ValidationError{Operation: "entities", Missing: []string{"content"}}
	if e.Error() != "entities: missing required parameter(s): content" {
		t.Fatalf("unexpected message: %s", e.Error())
	}
	e = &ValidationError{Operation: "entities", Conflicting: []string{"content", "contentUri"}}
	if e.Error() != "entities: mutually exclusive parameters supplied: content, contentUri" {
		t.Fatalf("unexpected message: %s", e.Error())
	}
}

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()
	if Recoverable.String() != "Recoverable" || Irrecoverable.String() != "Irrecoverable" {
		t.Fatal("unexpected category names")
	}
	if ErrorCategory(7).String() != "Unknown(7)" {
		t.Fatal("unexpected unknown category name")
	}
}
