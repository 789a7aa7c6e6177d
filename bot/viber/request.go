package viber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/webitel/viberbot/internal/util"
	wlog "github.com/webitel/viberbot/log"
)

// API method request
type request interface {
	method() string
}

// requestSender performs the API method calls
type requestSender struct {
	token     string
	endpoint  string
	userAgent string
	client    *http.Client
	log       *slog.Logger
}

// maximum response body captured into HTTPError
const maxErrorBody = 4 << 10

// post JSON payload to the API endpoint method,
// decode JSON response into result, if not nil
func (c *requestSender) post(ctx context.Context, method string, payload any, result any) error {

	var (
		err error
		req *http.Request
		res *http.Response
		buf = bytes.NewBuffer(nil)
		enc = json.NewEncoder(buf)
	)
	// ENCODE Request JSON
	enc.SetEscapeHTML(false)
	err = enc.Encode(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerialization, method, err)
	}

	c.log.Log(ctx, wlog.LevelTrace, "viber/"+method+":request",
		slog.Any("payload", wlog.DeferValue(func() slog.Value {
			return slog.StringValue(maskToken(buf.Bytes(), c.token))
		})),
	)

	url, err := util.JoinURL(c.endpoint, method)
	if err != nil {
		return invalidArgument("endpoint %q: %v", c.endpoint, err)
	}
	// PREPARE Request JSON
	req, err = http.NewRequestWithContext(
		ctx, http.MethodPost, url, buf,
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransport, method, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Viber-Auth-Token", c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	// PERFORM RPC Request
	res, err = c.client.Do(req)
	if err != nil {
		c.log.Error("viber/"+method+":result",
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %s: %w", ErrTransport, method, err)
	}
	defer res.Body.Close()

	code := res.StatusCode
	switch {
	case 200 <= code && code < 300: // Success
	default:
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		err = &HTTPError{
			Code:   code,
			Status: res.Status,
			Body:   string(body),
		}
		c.log.Error("viber/"+method+":result",
			slog.Any("error", err),
		)
		return err
	}

	if result == nil {
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(result)
	if err != nil {
		c.log.Error("viber/"+method+":result",
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %s: decode response: %w", ErrTransport, method, err)
	}

	return nil
}

// call API method request
func (c *requestSender) call(ctx context.Context, req request, res any) error {
	return c.post(ctx, req.method(), req, res)
}

func (c *requestSender) setWebhook(ctx context.Context, url string, events []string, isInline bool) ([]string, error) {
	for _, event := range events {
		if event == "" {
			return nil, invalidArgument("set_webhook: empty event type")
		}
	}
	var (
		res setWebhookResult
		req = setWebhook{
			AuthToken:   c.token,
			CallbackURL: url,
			EventTypes:  events,
			IsInline:    isInline,
		}
	)
	err := c.call(ctx, req, &res)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		c.log.Error("viber/bot.setWebhook",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return nil, err
	}
	return res.Subscriptions, nil
}

// getAccountInfo result status is NOT checked
func (c *requestSender) getAccountInfo(ctx context.Context) (*Account, error) {
	var (
		res Account
		req = getAccount{
			AuthToken: c.token,
		}
	)
	err := c.call(ctx, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *requestSender) getOnlineStatus(ctx context.Context, ids ...string) ([]*OnlineStatus, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("get_online: user ids required")
	}
	for i, id := range ids {
		if id == "" {
			return nil, invalidArgument("get_online: ids[%d] empty", i)
		}
	}
	var (
		res onlineStatus
		req = getOnline{
			AuthToken: c.token,
			UserIDs:   ids,
		}
	)
	err := c.call(ctx, req, &res)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *requestSender) getUserDetails(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, invalidArgument("get_user_details: user id required")
	}
	var (
		res userDetails
		req = getUserDetails{
			AuthToken: c.token,
			UserID:    id,
		}
	)
	err := c.call(ctx, req, &res)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// maskToken hides the auth token in a payload dump
func maskToken(data []byte, token string) string {
	if token == "" {
		return string(data)
	}
	return string(bytes.ReplaceAll(
		bytes.TrimSpace(data), []byte(token), []byte("********"),
	))
}
