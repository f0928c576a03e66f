package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendPayloadShape(t *testing.T) {
	var got map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Send(context.Background(), Message{
		To:    "ExponentPushToken[abc]",
		Title: "알림 반응",
		Body:  "senior1님이 알림을 확인했습니다.",
		Data:  map[string]interface{}{"type": "alarmResponse"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", got["to"])
	assert.Equal(t, "default", got["sound"]) // filled in when empty
	assert.Equal(t, "알림 반응", got["title"])
	assert.Equal(t, "senior1님이 알림을 확인했습니다.", got["body"])
	assert.Equal(t, map[string]interface{}{"type": "alarmResponse"}, got["data"])
}

func TestClientSendRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":"PUSH_TOO_MANY_EXPERIENCE_IDS"}]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Send(context.Background(), Message{To: "tok", Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClientSendRequiresToken(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second)
	err := client.Send(context.Background(), Message{Title: "t"})
	require.Error(t, err)
}
