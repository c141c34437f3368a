package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

func testCompliment() domain.Compliment {
	return domain.Compliment{
		ID:       "c1",
		Text:     "Nice work today.",
		Category: domain.CategoryEncouraging,
		IsCustom: true,
	}
}

func TestWebhookDeliver(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, 5*time.Second, zap.NewNop())
	settings := domain.Settings{Vibration: true, Silent: true}

	if err := wh.Deliver(context.Background(), testCompliment(), settings); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if got.ID != "c1" || got.Text != "Nice work today." || got.Category != "encouraging" {
		t.Fatalf("payload = %+v", got)
	}
	if !got.Silent || !got.Vibration || got.Sound {
		t.Fatalf("settings flags lost: %+v", got)
	}
}

func TestWebhookNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, 5*time.Second, zap.NewNop())
	if err := wh.Deliver(context.Background(), testCompliment(), domain.Settings{}); err == nil {
		t.Fatal("expected error for 502")
	}
}

// A failing channel must not fail the fan-out.
func TestMultiSwallowsChannelFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewMulti(zap.NewNop(),
		NewWebhook(srv.URL, time.Second, zap.NewNop()),
		NewBanner(zap.NewNop()),
	)
	if err := m.Deliver(context.Background(), testCompliment(), domain.Settings{}); err != nil {
		t.Fatalf("multi must be best-effort, got %v", err)
	}
}
