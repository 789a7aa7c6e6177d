package viber

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mitchellh/hashstructure"
)

// Callback request body limit
const maxRequestBody = 1 << 20

// Redelivery defaults
const (
	DefaultRedeliverySize   = 1024
	DefaultRedeliveryWindow = 10 * time.Minute
)

// HandlerFunc reacts to a callback request.
// An error makes the Handler respond (500) so that Viber delivers it again.
type HandlerFunc func(ctx context.Context, req Request) error

// Handler is the webhook callback endpoint.
type Handler struct {
	api  *Api
	hook HandlerFunc
	log  *slog.Logger
	// redelivery
	size   int
	window time.Duration
	seen   *lru.LRU[uint64, struct{}]
}

var _ http.Handler = (*Handler)(nil)

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithRedeliveryWindow remembers up to size handled requests for ttl,
// acknowledging their redelivery without dispatch.
// size <= 0 disables.
func WithRedeliveryWindow(size int, ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.size = size
		h.window = ttl
	}
}

// WithHandlerLogger overrides the Api logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.log = log
	}
}

// Handler returns the webhook callback endpoint
// dispatching verified requests to hook.
func (c *Api) Handler(hook HandlerFunc, opts ...HandlerOption) *Handler {
	h := &Handler{
		api:    c,
		hook:   hook,
		log:    c.log,
		size:   DefaultRedeliverySize,
		window: DefaultRedeliveryWindow,
	}
	for _, setup := range opts {
		setup(h)
	}
	if h.hook == nil {
		h.hook = func(context.Context, Request) error { return nil }
	}
	if h.size > 0 {
		h.seen = lru.NewLRU[uint64, struct{}](h.size, nil, h.window)
	}
	return h
}

func (h *Handler) ServeHTTP(reply http.ResponseWriter, notice *http.Request) {

	switch notice.Method {
	case http.MethodPost:
		// Handle Update(s) ...
	default:
		// Method Not Allowed !
		http.Error(reply,
			"(405) Method Not Allowed",
			http.StatusMethodNotAllowed,
		)
		return
	}

	body, err := io.ReadAll(io.LimitReader(notice.Body, maxRequestBody))
	if err != nil {
		h.log.Error("viber/bot.onUpdate",
			slog.Any("error", err),
		)
		http.Error(reply,
			"(400) Bad Request",
			http.StatusBadRequest,
		)
		return
	}

	signature := notice.Header.Get(SignatureHeader)
	if signature == "" || !h.api.VerifySignature(body, signature) {
		h.log.Warn("viber/bot.onUpdate",
			slog.String("error", "signature: invalid"),
			slog.String("remote", notice.RemoteAddr),
		)
		http.Error(reply,
			"(403) Forbidden",
			http.StatusForbidden,
		)
		return
	}

	event, err := ParseRequest(body)
	if err != nil {
		if errors.Is(err, ErrUnrecognizedEventType) {
			h.log.Warn("viber/bot.onUpdate",
				slog.Any("error", err),
			)
			return // (200) IGNORE
		}
		h.log.Error("viber/bot.onUpdate",
			slog.Any("error", err),
		)
		http.Error(reply,
			"(400) Bad Request",
			http.StatusBadRequest,
		)
		return
	}

	var (
		ctx = notice.Context()
		log = h.log.With(
			slog.String("event", event.EventType()),
		)
		key uint64
	)

	if h.seen != nil {
		key, err = hashstructure.Hash(event, nil)
		if err != nil {
			log.Warn("viber/bot.onUpdate",
				slog.Any("error", err),
			)
		} else if h.seen.Contains(key) {
			log.Debug("viber/bot.onUpdate",
				slog.String("redelivery", strconv.FormatUint(key, 16)),
			)
			return // (200) OK
		}
	}

	err = h.hook(ctx, event)
	if err != nil {
		log.Error("viber/bot.onUpdate",
			slog.Any("error", err),
		)
		http.Error(reply,
			"(500) Internal Server Error",
			http.StatusInternalServerError,
		)
		return
	}

	if h.seen != nil && key != 0 {
		h.seen.Add(key, struct{}{})
	}

	// return // (200) OK
}
