package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/station_control_console/internal/adapter/logger"
	"github.com/sm8ta/station_control_console/internal/core/domain"
)

func TestInboxDrain(t *testing.T) {
	inbox := NewInbox(0)

	assert.NotNil(t, inbox.Drain())
	assert.Empty(t, inbox.Drain())

	inbox.Notify(domain.Notification{Title: "a", Color: domain.Red})
	inbox.Notify(domain.Notification{Title: "b", Color: domain.Green})

	got := inbox.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
	assert.Empty(t, inbox.Drain())
}

func TestInboxDropsOldest(t *testing.T) {
	inbox := NewInbox(3)

	for i := 0; i < 5; i++ {
		inbox.Notify(domain.Notification{Title: fmt.Sprint(i)})
	}

	got := inbox.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Title)
	assert.Equal(t, "4", got[2].Title)
}

type recorder struct {
	seen []domain.Notification
}

func (r *recorder) Notify(n domain.Notification) {
	r.seen = append(r.seen, n)
}

func TestFanout(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	fan := Fanout{first, nil, second, NewLogNotifier(logger.NewDiscard())}

	n := domain.Notification{Title: "Paises", Message: "x", Color: domain.Red}
	fan.Notify(n)

	assert.Equal(t, []domain.Notification{n}, first.seen)
	assert.Equal(t, []domain.Notification{n}, second.seen)
}

func TestWebhookSend(t *testing.T) {
	received := make(chan domain.Notification, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var n domain.Notification
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&n))
		received <- n
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hook := NewWebhookNotifier(srv.URL, time.Second, logger.NewDiscard())
	n := domain.Notification{Title: "Novo Funcionário", Message: "ok", Color: domain.Green}

	require.NoError(t, hook.Send(context.Background(), n))
	assert.Equal(t, n, <-received)
}

func TestWebhookSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("down"))
	}))
	defer srv.Close()

	hook := NewWebhookNotifier(srv.URL, time.Second, logger.NewDiscard())

	err := hook.Send(context.Background(), domain.Notification{Title: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "down")
}

func TestWebhookNotifyIsAsynchronous(t *testing.T) {
	received := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
	}))
	defer srv.Close()

	NewWebhookNotifier(srv.URL, time.Second, logger.NewDiscard()).Notify(domain.Notification{Title: "x"})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}
}
