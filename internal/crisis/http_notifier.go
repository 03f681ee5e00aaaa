package crisis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPNotifier implementa Notifier contra el webhook del equipo de crisis.
type HTTPNotifier struct {
	webhookURL string
	apiKey     string
	client     *http.Client
	logger     *zap.Logger
}

// NewHTTPNotifier construye un notificador apuntando al webhook configurado.
func NewHTTPNotifier(webhookURL, apiKey string, logger *zap.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		webhookURL: strings.TrimRight(webhookURL, "/"),
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func (n *HTTPNotifier) Escalate(ctx context.Context, alert Alert) error {
	bodyBytes, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL+"/alerts", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		if n.logger != nil {
			n.logger.Warn("crisis webhook error response",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody),
			)
		}
		return fmt.Errorf("crisis webhook error: status=%d", resp.StatusCode)
	}

	return nil
}
