package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ngnfx/internal/domain"

	"github.com/stretchr/testify/require"
)

func failsafeAlert() domain.Alert {
	return domain.Alert{
		Type:      domain.AlertFailsafeTriggered,
		Message:   "All FX rate sources failed - no fallback available",
		Context:   map[string]any{"alert_type": domain.AlertFailsafeTriggered, "cycle_id": "abc"},
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTelegramNotifier_Success(t *testing.T) {
	received := make(map[string]string)
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token", "chat", srv.URL+"/", time.Second)
	require.NoError(t, n.Notify(context.Background(), failsafeAlert()))

	require.Equal(t, "/bottoken/sendMessage", path)
	require.Equal(t, "chat", received["chat_id"])
	require.Contains(t, received["text"], "failsafe_triggered")
	require.Contains(t, received["text"], "no fallback available")
	require.Contains(t, received["text"], "cycle_id: abc")
}

func TestTelegramNotifier_OKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token", "chat", srv.URL, time.Second)
	err := n.Notify(context.Background(), failsafeAlert())
	require.ErrorContains(t, err, "chat not found")
}

func TestTelegramNotifier_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token", "chat", srv.URL, time.Second)
	require.Error(t, n.Notify(context.Background(), failsafeAlert()))
}
