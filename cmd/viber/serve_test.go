package viber

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitel/viberbot/bot"
	viberbot "github.com/webitel/viberbot/bot/viber"
)

func TestReplier_OnUpdate(t *testing.T) {
	var sent []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		sent = append(sent, body)
		_, _ = io.WriteString(w, `{"status":0,"status_message":"ok","message_token":1}`)
	}))
	defer srv.Close()

	api, err := viberbot.New(viberbot.BotConfiguration{
		Name: "Echo", Avatar: "https://example.com/avatar.jpg", AuthToken: testToken,
	}, viberbot.WithEndpoint(srv.URL))
	require.NoError(t, err)

	templates := bot.NewTemplate("replies")
	require.NoError(t, templates.Parse(map[string]string{
		bot.UpdateMessage:    "You said: $(.Message.Text)",
		bot.UpdateSubscribed: "Welcome, $(.User.Name)!",
	}))

	hook := &replier{api: api, templates: templates, log: slog.Default()}

	tests := []struct {
		name string
		body string
		want string // reply text
	}{
		{
			name: "message",
			body: `{"event":"message","timestamp":1,"message_token":7,"sender":{"id":"u1","name":"John"},"message":{"type":"text","text":"hi"}}`,
			want: "You said: hi",
		},
		{
			name: "subscribed",
			body: `{"event":"subscribed","timestamp":1,"user":{"id":"u1","name":"John"}}`,
			want: "Welcome, John!",
		},
		{
			name: "sticker",
			body: `{"event":"message","timestamp":1,"message_token":8,"sender":{"id":"u1","name":"John"},"message":{"type":"sticker","sticker_id":46105}}`,
		},
		{
			name: "welcome",
			body: `{"event":"conversation_started","timestamp":1,"message_token":9,"type":"open","user":{"id":"u1","name":"John"}}`,
		},
		{
			name: "seen",
			body: `{"event":"seen","timestamp":1,"message_token":7,"user_id":"u1"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sent = nil
			req, err := viberbot.ParseRequest([]byte(tt.body))
			require.NoError(t, err)
			require.NoError(t, hook.onUpdate(context.Background(), req))
			if tt.want == "" {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.Equal(t, "u1", sent[0]["receiver"])
			assert.Equal(t, tt.want, sent[0]["text"])
		})
	}
}
