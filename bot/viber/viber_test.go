package viber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webitel/viberbot/bot"
	wlog "github.com/webitel/viberbot/log"
)

var testConfig = BotConfiguration{
	Name:      "Echo Bot",
	Avatar:    "https://example.com/avatar.jpg",
	AuthToken: "445da6az1s345z78-dazcczb2542zv51a-e0vc5fva17480im9",
}

// apiCall recorded by the testServer
type apiCall struct {
	Path   string
	Header http.Header
	Body   map[string]any
}

// testServer stands in for the Viber API host
type testServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls []apiCall
	reply func(n int, call apiCall) (int, any)
}

func newTestServer(t *testing.T, reply func(n int, call apiCall) (int, any)) *testServer {
	t.Helper()
	srv := &testServer{reply: reply}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call apiCall
		call.Path = r.URL.Path
		call.Header = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &call.Body)

		srv.mu.Lock()
		n := len(srv.calls)
		srv.calls = append(srv.calls, call)
		srv.mu.Unlock()

		code, res := srv.reply(n, call)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (srv *testServer) Calls() []apiCall {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return append([]apiCall(nil), srv.calls...)
}

func newTestApi(t *testing.T, srv *testServer) *Api {
	t.Helper()
	api, err := New(testConfig, WithEndpoint(srv.URL))
	require.NoError(t, err)
	return api
}

// okSend replies with message token n+1
func okSend(n int, _ apiCall) (int, any) {
	return http.StatusOK, map[string]any{
		"status": 0, "status_message": "ok", "message_token": n + 1,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config BotConfiguration
		ok     bool
	}{
		{"valid", testConfig, true},
		{"name", BotConfiguration{Avatar: testConfig.Avatar, AuthToken: testConfig.AuthToken}, false},
		{"avatar", BotConfiguration{Name: testConfig.Name, AuthToken: testConfig.AuthToken}, false},
		{"auth_token", BotConfiguration{Name: testConfig.Name, Avatar: testConfig.Avatar}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, err := New(tt.config)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.config.Name, api.Name())
				assert.Equal(t, tt.config.Avatar, api.Avatar())
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, api)
		})
	}
}

func TestNew_HTTPClientNotModified(t *testing.T) {
	client := &http.Client{}
	_, err := New(testConfig, WithHTTPClient(client), WithTimeout(5e9), WithTrace(true))
	require.NoError(t, err)
	assert.Nil(t, client.Transport)
	assert.Zero(t, client.Timeout)
}

func TestApi_SetWebhook(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{
			"status": 0, "status_message": "ok",
			"event_types": []string{"delivered", "seen"},
		}
	})
	api := newTestApi(t, srv)

	events, err := api.SetWebhook(context.Background(), "https://bot.example.com/hook", []string{"delivered", "seen"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"delivered", "seen"}, events)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "/set_webhook", call.Path)
	assert.Equal(t, DefaultUserAgent, call.Header.Get("User-Agent"))
	assert.Equal(t, testConfig.AuthToken, call.Header.Get("X-Viber-Auth-Token"))
	assert.Equal(t, "application/json; charset=utf-8", call.Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{
		"auth_token":  testConfig.AuthToken,
		"url":         "https://bot.example.com/hook",
		"event_types": []any{"delivered", "seen"},
		"is_inline":   false,
	}, call.Body)
}

func TestApi_SetWebhook_AllEvents(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{"status": 0, "status_message": "ok"}
	})
	api := newTestApi(t, srv)

	for _, events := range [][]string{nil, {}} {
		_, err := api.SetWebhook(context.Background(), "https://bot.example.com/hook", events, true)
		require.NoError(t, err)
	}
	for _, call := range srv.Calls() {
		assert.NotContains(t, call.Body, "event_types")
		assert.Equal(t, true, call.Body["is_inline"])
	}

	_, err := api.SetWebhook(context.Background(), "https://bot.example.com/hook", []string{""}, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Len(t, srv.Calls(), 2)
}

func TestApi_UnsetWebhook(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{"status": 0, "status_message": "ok"}
	})
	api := newTestApi(t, srv)

	require.NoError(t, api.UnsetWebhook(context.Background()))
	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "", calls[0].Body["url"])
}

func TestApi_StatusError(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{
			"status": StatusWebhookNotSet, "status_message": "webhookNotSet",
		}
	})
	api := newTestApi(t, srv)

	_, err := api.SetWebhook(context.Background(), "https://bot.example.com/hook", nil, false)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsCode(StatusWebhookNotSet))
	assert.Equal(t, "webhookNotSet", apiErr.Message)
	assert.Equal(t, "viber: (10) webhookNotSet", err.Error())
}

func TestApi_HTTPError(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusBadGateway, map[string]any{"error": "upstream"}
	})
	api := newTestApi(t, srv)

	_, err := api.GetUserDetails(context.Background(), "01234567890A=")
	assert.ErrorIs(t, err, ErrTransport)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Contains(t, httpErr.Body, "upstream")
}

func TestApi_ConnectionError(t *testing.T) {
	srv := newTestServer(t, okSend)
	api := newTestApi(t, srv)
	srv.Close()

	_, err := api.SendMessages(context.Background(), "01234567890A=", &TextMessage{Text: "hi"})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestApi_GetOnline(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{
			"status": 0, "status_message": "ok",
			"users": []map[string]any{
				{"id": "01234567890=", "online_status": 0, "online_status_message": "online"},
				{"id": "01234567891=", "online_status": 1, "online_status_message": "offline", "last_online": 1457764197627},
			},
		}
	})
	api := newTestApi(t, srv)
	ctx := context.Background()

	for name, ids := range map[string][]string{
		"none":  nil,
		"empty": {"01234567890=", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := api.GetOnline(ctx, ids...)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Empty(t, srv.Calls())

	users, err := api.GetOnline(ctx, "01234567890=", "01234567891=")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsOnline())
	assert.False(t, users[1].IsOnline())
	assert.Equal(t, int64(1457764197627), users[1].LastOnline)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/get_online", calls[0].Path)
	assert.Equal(t, []any{"01234567890=", "01234567891="}, calls[0].Body["ids"])
}

func TestApi_GetUserDetails(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{
			"status": 0, "status_message": "ok", "message_token": 4912661846655238145,
			"user": map[string]any{
				"id": "01234567890A=", "name": "John McClane", "language": "en",
				"country": "UK", "primary_device_os": "Android 7.1", "api_version": 1,
				"viber_version": "6.5.0", "mcc": 1, "mnc": 1, "device_type": "iPhone9,4",
			},
		}
	})
	api := newTestApi(t, srv)

	_, err := api.GetUserDetails(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, srv.Calls())

	user, err := api.GetUserDetails(context.Background(), "01234567890A=")
	require.NoError(t, err)
	assert.Equal(t, &User{
		ID: "01234567890A=", Name: "John McClane", Language: "en", Country: "UK",
		PrimaryDeviceOS: "Android 7.1", MaxVersion: 1, ViberVersion: "6.5.0",
		MCC: 1, MNC: 1, DeviceType: "iPhone9,4",
	}, user)
	assert.Equal(t, "01234567890A=", srv.Calls()[0].Body["id"])
}

func TestApi_GetAccountInfo(t *testing.T) {
	srv := newTestServer(t, func(int, apiCall) (int, any) {
		return http.StatusOK, map[string]any{
			"status": StatusInvalidAuthToken, "status_message": "invalidAuthToken",
		}
	})
	api := newTestApi(t, srv)

	account, err := api.GetAccountInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusInvalidAuthToken, account.Code)
	assert.False(t, account.Ok())
	assert.Error(t, account.Err())

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/get_account_info", calls[0].Path)
	assert.Equal(t, map[string]any{"auth_token": testConfig.AuthToken}, calls[0].Body)
}

func TestApi_SendMessages(t *testing.T) {
	srv := newTestServer(t, okSend)
	api := newTestApi(t, srv)

	tokens, err := api.SendMessages(context.Background(), "01234567890A=",
		&TextMessage{Text: "hello", MessageOptions: MessageOptions{TrackingData: "t1"}},
		&StickerMessage{StickerID: 46105},
	)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, tokens)

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/send_message", calls[0].Path)
	assert.Equal(t, map[string]any{
		"auth_token":    testConfig.AuthToken,
		"receiver":      "01234567890A=",
		"sender":        map[string]any{"name": testConfig.Name, "avatar": testConfig.Avatar},
		"type":          "text",
		"text":          "hello",
		"tracking_data": "t1",
	}, calls[0].Body)
	assert.Equal(t, float64(46105), calls[1].Body["sticker_id"])
}

func TestApi_SendMessages_SingleOrList(t *testing.T) {
	msg := &TextMessage{Text: "hello"}

	single := newTestServer(t, okSend)
	one, err := newTestApi(t, single).SendMessages(context.Background(), "u", msg)
	require.NoError(t, err)

	list := newTestServer(t, okSend)
	many, err := newTestApi(t, list).SendMessages(context.Background(), "u", []Message{msg}...)
	require.NoError(t, err)

	assert.Equal(t, one, many)
	assert.Equal(t, single.Calls()[0].Body, list.Calls()[0].Body)
}

func TestApi_SendChatMessages(t *testing.T) {
	srv := newTestServer(t, okSend)
	api := newTestApi(t, srv)

	_, err := api.SendChatMessages(context.Background(), "u", "chat-1", &TextMessage{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "chat-1", srv.Calls()[0].Body["chat_id"])
}

func TestApi_SendMessages_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		to       string
		messages []Message
		want     error
	}{
		{"receiver", "", []Message{&TextMessage{Text: "hi"}}, ErrInvalidArgument},
		{"none", "u", nil, ErrInvalidArgument},
		{"nil", "u", []Message{&TextMessage{Text: "hi"}, nil}, ErrInvalidArgument},
		{"nil/typed", "u", []Message{(*TextMessage)(nil)}, ErrInvalidArgument},
		{"validation", "u", []Message{&TextMessage{Text: "hi"}, &FileMessage{Media: "https://example.com/doc.pdf"}}, ErrValidation},
		{"serialization", "u", []Message{&TextMessage{Text: "hi"}, &LocationMessage{Location: &Location{Latitude: math.NaN()}}}, ErrSerialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, okSend)
			api := newTestApi(t, srv)
			tokens, err := api.SendMessages(context.Background(), tt.to, tt.messages...)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, tokens)
			// nothing sent
			assert.Empty(t, srv.Calls())
		})
	}
}

func TestApi_SendMessages_ValidationError(t *testing.T) {
	srv := newTestServer(t, okSend)
	api := newTestApi(t, srv)

	_, err := api.SendMessages(context.Background(), "u", &VideoMessage{Media: "https://example.com/v.mp4"})
	var validErr *ValidationError
	require.ErrorAs(t, err, &validErr)
	assert.Contains(t, err.Error(), `"media":"https://example.com/v.mp4"`)
}

func TestApi_SendMessages_Partial(t *testing.T) {
	srv := newTestServer(t, func(n int, call apiCall) (int, any) {
		if n == 1 {
			return http.StatusOK, map[string]any{
				"status": StatusReceiverNotSubscribed, "status_message": "notSubscribed",
			}
		}
		return okSend(n, call)
	})
	api := newTestApi(t, srv)

	tokens, err := api.SendMessages(context.Background(), "u",
		&TextMessage{Text: "one"},
		&TextMessage{Text: "two"},
		&TextMessage{Text: "three"},
	)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsCode(StatusReceiverNotSubscribed))
	assert.Equal(t, []uint64{1}, tokens)
	assert.Len(t, srv.Calls(), 2)
}

func TestApi_PostMessagesToPublicAccount(t *testing.T) {
	srv := newTestServer(t, okSend)
	api := newTestApi(t, srv)

	_, err := api.PostMessagesToPublicAccount(context.Background(), "", &TextMessage{Text: "hi"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	tokens, err := api.PostMessagesToPublicAccount(context.Background(), "pa:member", &TextMessage{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, tokens)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/post", calls[0].Path)
	assert.Equal(t, "pa:member", calls[0].Body["from"])
	assert.NotContains(t, calls[0].Body, "receiver")
}

func TestApi_WithUserAgent(t *testing.T) {
	srv := newTestServer(t, okSend)
	api, err := New(testConfig, WithEndpoint(srv.URL+"/"), WithUserAgent("viberbot/test"))
	require.NoError(t, err)

	_, err = api.SendMessages(context.Background(), "u", &TextMessage{Text: "hi"})
	require.NoError(t, err)
	call := srv.Calls()[0]
	assert.Equal(t, "/send_message", call.Path)
	assert.Equal(t, "viberbot/test", call.Header.Get("User-Agent"))
}

func TestApi_WithTrace(t *testing.T) {
	tests := []struct {
		name string
		// caller's own TransportDump
		dump bool
	}{
		{"default", false},
		{"dump", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, okSend)
			var buf bytes.Buffer
			trace := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: wlog.LevelTrace,
			}))
			opts := []Option{WithEndpoint(srv.URL), WithTrace(true), WithLogger(trace)}
			if tt.dump {
				opts = append(opts, WithHTTPClient(&http.Client{
					Transport: &bot.TransportDump{WithBody: true, Log: trace},
				}))
			}
			api, err := New(testConfig, opts...)
			require.NoError(t, err)

			_, err = api.SendMessages(context.Background(), "u", &TextMessage{Text: "hi"})
			require.NoError(t, err)
			// the token still reaches the API
			call := srv.Calls()[0]
			assert.Equal(t, testConfig.AuthToken, call.Header.Get("X-Viber-Auth-Token"))
			assert.Equal(t, testConfig.AuthToken, call.Body["auth_token"])

			out := buf.String()
			assert.Contains(t, out, "OUTBOUND")
			assert.Contains(t, out, "X-Viber-Auth-Token: ********")
			assert.NotContains(t, out, testConfig.AuthToken)
		})
	}
}

func TestRemoveEmptyFields(t *testing.T) {
	data := map[string]any{
		"text":     "",
		"keyboard": (*Keyboard)(nil),
		"media":    nil,
		"size":     int64(0),
		"receiver": "u",
	}
	want := map[string]any{
		"size":     int64(0),
		"receiver": "u",
	}
	assert.Equal(t, want, removeEmptyFields(data))
	// idempotent
	assert.Equal(t, want, removeEmptyFields(data))
}
