package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LatestMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/channels/chan-1/messages", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		messages := []Message{{ID: "300", Content: "newest"}}
		require.NoError(t, json.NewEncoder(w).Encode(messages))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "chan-1")

	msg, err := client.LatestMessage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "300", msg.ID)
}

func TestClient_LatestMessageEmptyChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([]Message{}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "chan-1")

	msg, err := client.LatestMessage(context.Background())
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestClient_MessagesAfterReturnsChronological(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("after"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		// Discord serves newest first.
		messages := []Message{
			{ID: "400", Content: "c"},
			{ID: "300", Content: "b"},
			{ID: "200", Content: "a"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(messages))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "chan-1")

	messages, err := client.MessagesAfter(context.Background(), "100")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "200", messages[0].ID)
	assert.Equal(t, "300", messages[1].ID)
	assert.Equal(t, "400", messages[2].ID)
}

func TestClient_SendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/channels/chan-1/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "[USER] 내일 일정 알려줘", body["content"])

		require.NoError(t, json.NewEncoder(w).Encode(Message{ID: "555"}))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "chan-1")

	id, err := client.SendMessage(context.Background(), "[USER] 내일 일정 알려줘")
	require.NoError(t, err)
	assert.Equal(t, "555", id)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Missing Access"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", "chan-1")

	_, err := client.SendMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSortChronological(t *testing.T) {
	messages := []Message{
		{ID: "300"},
		{ID: "400"}, // out of place in a newest-first response
		{ID: "200"},
		{ID: "100"},
	}
	sortChronological(messages)

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"100", "200", "300", "400"}, ids)
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "numeric less", a: "99", b: "100", want: -1},
		{name: "numeric greater", a: "100", b: "99", want: 1},
		{name: "equal", a: "100", b: "100", want: 0},
		{name: "beyond int64", a: "18446744073709551614", b: "18446744073709551615", want: -1},
		{name: "non-numeric falls back to lexicographic", a: "abc", b: "abd", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareIDs(tt.a, tt.b))
		})
	}
}
