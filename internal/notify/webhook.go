package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Webhook POSTs each delivered compliment to a configured URL, so any
// automation (home dashboard, ntfy, phone push bridge) can present it.
type Webhook struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// webhookPayload is the JSON body sent to the configured URL. The
// presentation flags ride along so the receiving end can honor them.
type webhookPayload struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	IsCustom  bool      `json:"isCustom"`
	Sound     bool      `json:"sound"`
	Vibration bool      `json:"vibration"`
	Silent    bool      `json:"silent"`
	SentAt    time.Time `json:"sentAt"`
}

// NewWebhook creates a webhook dispatcher. timeout zero falls back to 10s.
func NewWebhook(url string, timeout time.Duration, log *zap.Logger) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Deliver(ctx context.Context, c domain.Compliment, settings domain.Settings) error {
	body, err := json.Marshal(webhookPayload{
		ID:        c.ID,
		Text:      c.Text,
		Category:  string(c.Category),
		IsCustom:  c.IsCustom,
		Sound:     settings.Sound,
		Vibration: settings.Vibration,
		Silent:    settings.Silent,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain a little for connection reuse and error context.
	preview, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(preview))
	}

	w.log.Debug("webhook delivered",
		zap.String("compliment_id", c.ID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
