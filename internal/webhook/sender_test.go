package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversPayload(t *testing.T) {
	received := make(chan Payload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
	}))
	defer srv.Close()

	s := NewSender(srv.URL)
	s.Emit("bet_placed", map[string]any{"user": "alice", "amount": float64(500)})

	select {
	case p := <-received:
		assert.Equal(t, "bet_placed", p.Event)
		assert.Equal(t, "alice", p.Fields["user"])
		assert.Equal(t, float64(500), p.Fields["amount"])
		assert.False(t, p.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was never delivered")
	}
}

func TestEmitToleratesMissingURL(t *testing.T) {
	// Must not panic or block.
	NewSender("").Emit("game_opened", nil)

	var s *Sender
	s.Emit("game_opened", nil)
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, Test(srv.URL))
	srv.Close()
	assert.Error(t, Test(srv.URL))
}
