package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/logging"
)

func TestHub_PublishDeliversToRecipient(t *testing.T) {
	hub := NewHub(logging.NewNopLogger(), nil, nil)
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("user"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=u1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Connections("u1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(&entities.Notification{UserID: "u2", Title: "para outro usuário"})
	hub.Publish(&entities.Notification{
		ID:       "n1",
		UserID:   "u1",
		Type:     entities.NotificationFollower,
		Title:    "Novo seguidor! 👥",
		Metadata: `{"followerId":"u3"}`,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	require.Equal(t, "notification", event.Type)
	require.Equal(t, "n1", event.Data.ID)
	require.Equal(t, "seguidor", event.Data.Tipo)
	require.JSONEq(t, `{"followerId":"u3"}`, string(event.Data.Metadata))
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(logging.NewNopLogger(), nil, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, "u1")
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Connections("u1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Connections("u1") == 0 }, 2*time.Second, 10*time.Millisecond)
}
