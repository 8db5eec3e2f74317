package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/models"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func dialFeed(t *testing.T, hub *Hub, postID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(conn, postID)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForSubscriber(t *testing.T, hub *Hub, postID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.FeedSize(postID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	conn := dialFeed(t, hub, "post-1")
	waitForSubscriber(t, hub, "post-1")

	hub.PublishComment(&models.Comment{
		ID:      "comment-1",
		PostID:  "post-1",
		Nick:    "alice",
		Content: "first!",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "comment", event.Type)
	assert.Equal(t, "post-1", event.PostID)
	require.NotNil(t, event.Comment)
	assert.Equal(t, "comment-1", event.Comment.ID)
	assert.Equal(t, "alice", event.Comment.Nick)
}

func TestHub_PublishIsScopedToPost(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	conn := dialFeed(t, hub, "post-a")
	waitForSubscriber(t, hub, "post-a")

	// A comment on another post must not reach this feed
	hub.PublishComment(&models.Comment{ID: "c1", PostID: "post-b", Nick: "bob"})
	hub.PublishComment(&models.Comment{ID: "c2", PostID: "post-a", Nick: "carol"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "post-a", event.PostID)
	assert.Equal(t, "c2", event.Comment.ID)
}

func TestHub_SubscribeAfterFeedStopped(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	// Stop the feed the way the idle sweeper does, after its loop has
	// fully exited. A subscriber arriving now must not hang on the dead
	// feed's register channel.
	f := hub.getOrCreateFeed("post-a")
	close(f.stop)
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("feed loop never exited")
	}

	conn := dialFeed(t, hub, "post-a")
	waitForSubscriber(t, hub, "post-a")

	// The replacement feed is live end to end
	hub.PublishComment(&models.Comment{ID: "c1", PostID: "post-a", Nick: "dave"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "c1", event.Comment.ID)
}

func TestHub_PublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	// Nothing is watching, publish must not block or panic
	hub.PublishComment(&models.Comment{ID: "c1", PostID: "post-quiet"})
	assert.Equal(t, 0, hub.FeedSize("post-quiet"))
}
