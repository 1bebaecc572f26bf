package subscription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	saved []Subscription
}

func (m *memStore) Save(ctx context.Context, sub *Subscription) error {
	if sub.ID == "" {
		sub.ID = "generated"
	}
	m.saved = append(m.saved, *sub)
	return nil
}

func (m *memStore) All(ctx context.Context) ([]Subscription, error) {
	return m.saved, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(store, logger.New(logger.Config{Format: "text"}))
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func TestSaveSubscription(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	body := `{"subscription":{"endpoint":"https://push.example.com/abc","keys":{"p256dh":"pub","auth":"secret"}},"userName":"Priya"}`
	req := httptest.NewRequest(http.MethodPost, "/api/subscription/save", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Saved") {
		t.Errorf("body missing confirmation: %s", w.Body.String())
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one saved subscription, got %d", len(store.saved))
	}
	got := store.saved[0]
	if got.UserName != "Priya" {
		t.Errorf("userName = %q, want Priya", got.UserName)
	}
	// The endpoint object must be stored verbatim as an opaque blob.
	if !strings.Contains(got.Payload, `"endpoint":"https://push.example.com/abc"`) {
		t.Errorf("payload not stored opaquely: %s", got.Payload)
	}
}

func TestSaveSubscriptionMissingBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "null subscription", body: `{"subscription":null}`},
		{name: "not json", body: `???`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			router := newTestRouter(store)

			req := httptest.NewRequest(http.MethodPost, "/api/subscription/save", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(store.saved) != 0 {
				t.Error("store mutated on invalid request")
			}
		})
	}
}
