package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.telegram.org"

// TelegramNotifier pushes operator alerts through the Bot API sendMessage method.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

func (n *TelegramNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(alert),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&result); err == nil && !result.OK {
		return fmt.Errorf("telegram returned ok=false: %s", result.Description)
	}

	logrus.WithField("alert_type", alert.Type).Info("Alert sent to Telegram")
	return nil
}

func renderMessage(alert domain.Alert) string {
	var b strings.Builder
	b.WriteString("[USD/NGN FX Alert]\n")
	fmt.Fprintf(&b, "Type: %s\n", alert.Type)
	fmt.Fprintf(&b, "Time: %s UTC\n", alert.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(alert.Message)

	keys := make([]string, 0, len(alert.Context))
	for k := range alert.Context {
		if k != "alert_type" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s: %v", k, alert.Context[k])
	}
	return b.String()
}

func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}
