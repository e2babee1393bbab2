package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// WebhookNotifier posts notifications as JSON to an external URL. Delivery
// runs in the background and failures are only logged.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	logger  ports.LoggerPort
	timeout time.Duration
}

func NewWebhookNotifier(url string, timeout time.Duration, logger ports.LoggerPort) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		timeout: timeout,
	}
}

func (w *WebhookNotifier) Notify(n domain.Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		if err := w.Send(ctx, n); err != nil {
			w.logger.Warn("Failed to deliver notification webhook", map[string]interface{}{
				"url":   w.url,
				"title": n.Title,
				"error": err.Error(),
			})
		}
	}()
}

// Send delivers n synchronously.
func (w *WebhookNotifier) Send(ctx context.Context, n domain.Notification) error {
	const op = "WebhookNotifier.Send"

	jsonData, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: webhook returned status %d: %s", op, resp.StatusCode, string(bodyBytes))
	}
	return nil
}
