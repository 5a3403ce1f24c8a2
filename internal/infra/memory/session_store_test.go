package memory

import (
	"testing"

	"go.uber.org/zap"

	"image-quiz-service/internal/app"
	"image-quiz-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	session := app.NewController("s1", domain.SinkFunc(func(domain.Command) {}), app.Options{}, zap.NewNop())

	store.Add(session)
	if got, ok := store.Get("s1"); !ok || got != session {
		t.Fatalf("expected session present")
	}
	if store.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Count())
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty store")
	}
}
