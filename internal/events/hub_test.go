package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub()
	a, cancelA := hub.Subscribe(4)
	b, cancelB := hub.Subscribe(4)
	defer cancelA()
	defer cancelB()

	hub.Publish(Change{Collection: "musicstore.tutors", Op: OpCreate, ID: "t1"})

	for _, ch := range []<-chan Change{a, b} {
		got := <-ch
		assert.Equal(t, "musicstore.tutors", got.Collection)
		assert.Equal(t, OpCreate, got.Op)
		assert.False(t, got.At.IsZero())
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(Change{ID: "1"})
	hub.Publish(Change{ID: "2"})

	assert.Equal(t, "1", (<-ch).ID)
	select {
	case c := <-ch:
		t.Fatalf("unexpected second event %+v", c)
	default:
	}
}

func TestHub_CancelAndClose(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	assert.Equal(t, 1, hub.SubscriberCount())

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount())

	other, _ := hub.Subscribe(1)
	hub.Close()
	_, ok = <-other
	assert.False(t, ok)

	late, _ := hub.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestWSHandler_StreamsChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	NewWSHandler(hub).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/changes?collection=musicstore.products"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Change{Collection: "musicstore.tutors", Op: OpCreate, ID: "skip"})
	hub.Publish(Change{Collection: "musicstore.products", Op: OpDelete, ID: "p1"})

	var got Change
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, OpDelete, got.Op)
}
