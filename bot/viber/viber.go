// Package viber is a client for the Viber REST bot API.
//
// https://developers.viber.com/docs/api/rest-bot-api/
package viber

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/webitel/viberbot/bot"
)

// Api is the Viber bot account client.
// Safe for concurrent use.
type Api struct {
	config BotConfiguration
	// options
	client    *http.Client
	endpoint  string
	userAgent string
	timeout   time.Duration
	trace     bool
	log       *slog.Logger
	// senders
	requests *requestSender
	messages *messageSender
}

// Option configures the Api.
type Option func(*Api)

// WithHTTPClient to perform API requests.
// The client given is never modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Api) {
		c.client = client
	}
}

// WithEndpoint overrides DefaultEndpoint base URL.
func WithEndpoint(baseURL string) Option {
	return func(c *Api) {
		c.endpoint = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(c *Api) {
		c.userAgent = userAgent
	}
}

// WithTimeout for a single API request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Api) {
		c.timeout = timeout
	}
}

// WithLogger to report API exchange.
func WithLogger(log *slog.Logger) Option {
	return func(c *Api) {
		c.log = log
	}
}

// WithTrace dumps HTTP requests and responses at TRACE level.
func WithTrace(on bool) Option {
	return func(c *Api) {
		c.trace = on
	}
}

// New Viber bot API client.
// All of the config fields are required.
func New(config BotConfiguration, opts ...Option) (*Api, error) {

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	c := &Api{
		config:    config,
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
	}
	for _, setup := range opts {
		setup(c)
	}

	if c.log == nil {
		c.log = slog.Default()
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}

	c.client = c.httpClient()
	c.requests = &requestSender{
		token:     config.AuthToken,
		endpoint:  c.endpoint,
		userAgent: c.userAgent,
		client:    c.client,
		log: c.log.With(
			slog.String("bot", config.Name),
		),
	}
	c.messages = &messageSender{
		requestSender: c.requests,
	}

	return c, nil
}

func (c *Api) httpClient() *http.Client {
	var client http.Client
	if c.client != nil {
		client = *(c.client) // shallowcopy
	}
	transport := client.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	if c.trace {
		redact := func(dump []byte) []byte {
			return []byte(maskToken(dump, c.config.AuthToken))
		}
		if dump, ok := transport.(*bot.TransportDump); ok {
			if dump.Redact == nil {
				dumpCopy := *(dump)
				dumpCopy.Redact = redact
				transport = &dumpCopy
			}
		} else {
			transport = &bot.TransportDump{
				Transport: transport,
				WithBody:  true,
				Log:       c.log,
				Redact:    redact,
			}
		}
	}
	client.Transport = transport
	if c.timeout > 0 {
		client.Timeout = c.timeout
	}
	return &client
}

// Name of the bot, the messages sender
func (c *Api) Name() string {
	return c.config.Name
}

// Avatar URL of the bot, the messages sender
func (c *Api) Avatar() string {
	return c.config.Avatar
}

// SetWebhook registers the callback URL for the given event types.
// Empty events subscribe to all of them.
// Returns event types subscribed.
func (c *Api) SetWebhook(ctx context.Context, url string, events []string, isInline bool) ([]string, error) {
	return c.requests.setWebhook(ctx, url, events, isInline)
}

// UnsetWebhook removes the callback URL.
func (c *Api) UnsetWebhook(ctx context.Context) error {
	_, err := c.requests.setWebhook(ctx, "", nil, false)
	return err
}

// GetOnline status of the users given.
func (c *Api) GetOnline(ctx context.Context, ids ...string) ([]*OnlineStatus, error) {
	return c.requests.getOnlineStatus(ctx, ids...)
}

// GetUserDetails of the subscribed user.
func (c *Api) GetUserDetails(ctx context.Context, id string) (*User, error) {
	return c.requests.getUserDetails(ctx, id)
}

// GetAccountInfo of the bot.
// Response status is NOT checked; see Account.Err().
func (c *Api) GetAccountInfo(ctx context.Context) (*Account, error) {
	return c.requests.getAccountInfo(ctx)
}

// Sign returns the signature of the callback body.
func (c *Api) Sign(body []byte) string {
	return Sign(c.config.AuthToken, body)
}

// VerifySignature of the callback body,
// as given in the X-Viber-Content-Signature header.
func (c *Api) VerifySignature(body []byte, signature string) bool {
	return VerifySignature(c.config.AuthToken, body, signature)
}

// ParseRequest decodes the callback body.
func (c *Api) ParseRequest(body []byte) (Request, error) {
	return ParseRequest(body)
}

// SendMessages to the user, in order.
// Returns message tokens, one per message sent.
func (c *Api) SendMessages(ctx context.Context, to string, messages ...Message) ([]uint64, error) {
	return c.SendChatMessages(ctx, to, "", messages...)
}

// SendChatMessages to the user within inline conversation chatID.
func (c *Api) SendChatMessages(ctx context.Context, to, chatID string, messages ...Message) ([]uint64, error) {
	if to == "" {
		return nil, invalidArgument("send_message: receiver required")
	}
	err := checkMessages(messages)
	if err != nil {
		return nil, err
	}
	tokens := make([]uint64, 0, len(messages))
	for _, msg := range messages {
		token, err := c.messages.sendMessage(
			ctx, to, c.config.Name, c.config.Avatar, msg, chatID,
		)
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// PostMessagesToPublicAccount on behalf of the member [from] of the bot's public chat.
func (c *Api) PostMessagesToPublicAccount(ctx context.Context, from string, messages ...Message) ([]uint64, error) {
	if from == "" {
		return nil, invalidArgument("post: from required")
	}
	err := checkMessages(messages)
	if err != nil {
		return nil, err
	}
	tokens := make([]uint64, 0, len(messages))
	for _, msg := range messages {
		token, err := c.messages.postToPublicAccount(
			ctx, from, c.config.Name, c.config.Avatar, msg,
		)
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
