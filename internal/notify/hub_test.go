package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"livedocs/internal/document/model"
	"livedocs/internal/document/repository"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read message from WebSocket")
	require.NoError(t, json.Unmarshal(p, &msg))
	return msg
}

func dial(t *testing.T, wsURL, email string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?email="+email, nil)
	require.NoError(t, err, "client %s failed to connect", email)
	return conn
}

func TestHubPushesToTargetUserOnly(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Identity is established by middleware in production; tests pass it
		// in the query string.
		ServeWs(hub, w, r, r.URL.Query().Get("email"))
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	bob := dial(t, wsURL, "bob@x.com")
	defer bob.Close()
	alice := dial(t, wsURL, "alice@x.com")
	defer alice.Close()

	// Registration runs through the hub's channel; give it a beat.
	time.Sleep(100 * time.Millisecond)

	n := model.Notification{
		ID:          "n-1",
		TargetEmail: "bob@x.com",
		Kind:        model.NotificationKindDocumentAccess,
		RoomID:      "doc-1",
		Activity: model.NotificationActivity{
			Role:      "viewer",
			Title:     "You have been granted viewer access to the document by Alice",
			UpdatedBy: "Alice",
		},
		CreatedAt: time.Now(),
	}
	hub.Push(n)

	msg := readMessage(t, bob)
	assert.Equal(t, NotificationType, msg.Type)

	var got model.Notification
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, "n-1", got.ID)
	assert.Equal(t, "bob@x.com", got.TargetEmail)
	assert.Equal(t, "viewer", got.Activity.Role)

	// Alice must not receive bob's notification.
	alice.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := alice.ReadMessage()
	assert.Error(t, err, "expected read timeout for the untargeted user")
}

func TestSinkPersistsThenPushes(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, r.URL.Query().Get("email"))
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	bob := dial(t, wsURL, "bob@x.com")
	defer bob.Close()
	time.Sleep(100 * time.Millisecond)

	store := repository.NewMemoryNotificationStore()
	sink := NewSink(store, hub)

	n := model.Notification{ID: "n-2", TargetEmail: "bob@x.com", Kind: model.NotificationKindDocumentAccess, CreatedAt: time.Now()}
	require.NoError(t, sink.Notify(context.Background(), n))

	// Durable copy landed in the inbox.
	list, err := store.ListByTarget(context.Background(), "bob@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "n-2", list[0].ID)

	// Live copy reached the open connection.
	msg := readMessage(t, bob)
	assert.Equal(t, NotificationType, msg.Type)
}

// A user with no open connection still gets the durable inbox entry; Push is
// a no-op for them.
func TestSinkWithoutConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	store := repository.NewMemoryNotificationStore()
	sink := NewSink(store, hub)

	n := model.Notification{ID: "n-3", TargetEmail: "offline@x.com", CreatedAt: time.Now()}
	require.NoError(t, sink.Notify(context.Background(), n))

	list, err := store.ListByTarget(context.Background(), "offline@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
