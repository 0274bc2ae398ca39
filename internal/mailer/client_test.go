package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSend(t *testing.T) {
	var got Message
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", time.Second, zap.NewNop())
	err := c.Send(context.Background(), Message{Template: TemplateOrderConfirmation, To: "a@b.c", Data: map[string]string{"order_id": "o1"}})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, TemplateOrderConfirmation, got.Template)
	assert.Equal(t, "a@b.c", got.To)
}

func TestSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, "", time.Second, zap.NewNop()).Send(context.Background(), Message{Template: "x"})
	assert.ErrorContains(t, err, "502")
}

func TestSend_Disabled(t *testing.T) {
	c := New("", "", time.Second, zap.NewNop())
	assert.ErrorIs(t, c.Send(context.Background(), Message{}), ErrDisabled)
	c.Fire(Message{})
	c.Wait()
}

func TestFire_FailureDoesNotPropagate(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second, zap.NewNop())
	c.Fire(Message{Template: TemplateOrderConfirmation, To: "admin@zenzee.id"})
	c.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
