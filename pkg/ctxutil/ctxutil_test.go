package ctxutil

import (
	"context"
	"testing"
)

func TestWithActorID_And_ActorIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithActorID(context.Background(), "actor-42")

	got, ok := ActorIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for set actor ID")
	}
	if got != "actor-42" {
		t.Fatalf("expected actor-42, got %s", got)
	}
}

func TestActorIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ActorIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestActorIDFromCtx_EmptyValue(t *testing.T) {
	t.Parallel()

	ctx := WithActorID(context.Background(), "")
	if _, ok := ActorIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for empty actor ID")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromCtx(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %s", got)
	}

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
