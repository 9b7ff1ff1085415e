package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(ErrExternalService, "modality", "analyze", "image backend", inner)
	if !errors.Is(err, ErrExternalService) {
		t.Error("expected marker to survive wrapping")
	}
	if !errors.Is(err, inner) {
		t.Error("expected inner error to survive wrapping")
	}
	msg := err.Error()
	if !strings.Contains(msg, "modality: analyze: image backend") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "history", "lookup", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Error("nil marker should default to transient")
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrTimeout, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Errorf("got %q ok=%v", id, ok)
	}

	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("expected no request id on bare context")
	}

	if ctx2 := WithRequestID(context.Background(), ""); ctx2 != context.Background() {
		t.Error("empty id should not allocate a new context")
	}
}
