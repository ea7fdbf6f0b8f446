package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func newOfflineBot(t *testing.T, handler http.HandlerFunc) *telebot.Bot {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b, err := telebot.NewBot(telebot.Settings{Token: "TOKEN", URL: server.URL, Offline: true})
	require.NoError(t, err)
	return b
}

func TestTelebotAdapterSendMessage(t *testing.T) {
	var got map[string]any
	b := newOfflineBot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"hi"}}`))
	})

	err := NewTelebotAdapter(b).SendMessage("@homework", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "@homework", got["chat_id"])
	assert.Equal(t, "hi", got["text"])
}

func TestTelebotAdapterSendMessageError(t *testing.T) {
	b := newOfflineBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	err := NewTelebotAdapter(b).SendMessage("42", "hi", nil)
	assert.Error(t, err)
}

func TestIsConfiguredChat(t *testing.T) {
	tests := []struct {
		name   string
		chat   *telebot.Chat
		chatID string
		want   bool
	}{
		{"numeric id", &telebot.Chat{ID: 42}, "42", true},
		{"negative group id", &telebot.Chat{ID: -100123}, "-100123", true},
		{"username", &telebot.Chat{ID: 7, Username: "Homework"}, "@homework", true},
		{"other chat", &telebot.Chat{ID: 43}, "42", false},
		{"username without at", &telebot.Chat{ID: 7, Username: "homework"}, "homework", false},
		{"nil chat", nil, "42", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfiguredChat(tt.chat, tt.chatID))
		})
	}
}
