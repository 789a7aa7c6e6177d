package viber

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Callback event types
// https://developers.viber.com/docs/api/rest-bot-api/#callbacks
const (
	EventWebhook             = "webhook" // set_webhook:callback(POST)
	EventConversationStarted = "conversation_started"
	EventSubscribed          = "subscribed"
	EventUnsubscribed        = "unsubscribed"
	EventMessage             = "message"
	EventDelivered           = "delivered"
	EventSeen                = "seen"
	EventFailed              = "failed"
)

// Request is an inbound callback event.
// One of *MessageRequest, *DeliveredRequest, *SeenRequest, *FailedRequest,
// *SubscribedRequest, *UnsubscribedRequest, *ConversationStartedRequest
// or *WebhookRequest.
type Request interface {
	// EventType discriminant, e.g. EventMessage
	EventType() string
	// Time of the event
	Time() time.Time
	// top-level keys required to decode
	required() []string
}

// Event basics
type Event struct {
	Type string `json:"event"`
	// Epoch (ms) of the request time
	Timestamp int64 `json:"timestamp"`
	// Viber internal use
	Hostname string `json:"chat_hostname,omitempty"`
}

func (e *Event) EventType() string {
	return e.Type
}

func (e *Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// keys of all events
var eventKeys = []string{"event", "timestamp"}

// [webhook]
//
// Sent by Viber to the webhook URL to validate it during set_webhook.
// {"event":"webhook","timestamp":1663858877101,"chat_hostname":"SN-CHAT-03_","message_token":5753750845017966998}
type WebhookRequest struct {
	Event
	MessageToken uint64 `json:"message_token,omitempty"`
}

func (*WebhookRequest) required() []string {
	return nil
}

// [message]
// https://developers.viber.com/docs/api/rest-bot-api/#receive-message-from-user
type MessageRequest struct {
	Event
	// Unique ID of the message
	MessageToken uint64 `json:"message_token"`
	// Message sender
	Sender *User `json:"sender"`
	// Message content
	Message Message `json:"-"`
	// Inline (chat extension) conversation ID
	ChatID string `json:"chat_id,omitempty"`
	// Inline reply type: "message" or "query"
	ReplyType string `json:"reply_type,omitempty"`
	// Message sent silently
	Silent bool `json:"silent,omitempty"`
}

func (*MessageRequest) required() []string {
	return []string{"message_token", "sender", "message"}
}

func (e *MessageRequest) UnmarshalJSON(data []byte) error {
	type plain MessageRequest
	var args struct {
		*plain
		Message json.RawMessage `json:"message"`
	}
	args.plain = (*plain)(e)
	err := json.Unmarshal(data, &args)
	if err != nil {
		return err
	}
	e.Message, err = ParseMessage(args.Message)
	return err
}

// [delivered]
// https://developers.viber.com/docs/api/rest-bot-api/#message-receipts-callbacks
//
// NOTE: may trigger several times for single message
// for each account's device successful delivery
type DeliveredRequest struct {
	Event
	MessageToken uint64 `json:"message_token"`
	UserID       string `json:"user_id"`
	ChatID       string `json:"chat_id,omitempty"`
}

func (*DeliveredRequest) required() []string {
	return []string{"message_token", "user_id"}
}

// [seen]
// https://developers.viber.com/docs/api/rest-bot-api/#message-receipts-callbacks
type SeenRequest struct {
	Event
	MessageToken uint64 `json:"message_token"`
	UserID       string `json:"user_id"`
	ChatID       string `json:"chat_id,omitempty"`
}

func (*SeenRequest) required() []string {
	return []string{"message_token", "user_id"}
}

// [failed]
// https://developers.viber.com/docs/api/rest-bot-api/#failed-callback
type FailedRequest struct {
	Event
	MessageToken uint64 `json:"message_token"`
	UserID       string `json:"user_id"`
	// A string describing the failure.
	Desc string `json:"desc,omitempty"`
}

func (*FailedRequest) required() []string {
	return []string{"message_token", "user_id"}
}

// [subscribed]
// https://developers.viber.com/docs/api/rest-bot-api/#subscribed
type SubscribedRequest struct {
	Event
	User *User `json:"user"`
}

func (*SubscribedRequest) required() []string {
	return []string{"user"}
}

// [unsubscribed]
// https://developers.viber.com/docs/api/rest-bot-api/#unsubscribed
type UnsubscribedRequest struct {
	Event
	UserID string `json:"user_id"`
}

func (*UnsubscribedRequest) required() []string {
	return []string{"user_id"}
}

// [conversation_started]
// https://developers.viber.com/docs/api/rest-bot-api/#conversation-started
//
// Not a subscribe event; allows sending one “welcome message” to the user.
type ConversationStartedRequest struct {
	Event
	MessageToken uint64 `json:"message_token"`
	// Conversation type: "open"
	Type string `json:"type"`
	// Deep link context parameter, if any
	Context string `json:"context,omitempty"`
	User    *User  `json:"user"`
	// Indicates whether the user is already subscribed
	Subscribed bool `json:"subscribed,omitempty"`
}

func (*ConversationStartedRequest) required() []string {
	return []string{"message_token", "type", "user"}
}

// event type to request constructor
var requestTypes = map[string]func() Request{
	EventWebhook:             func() Request { return new(WebhookRequest) },
	EventMessage:             func() Request { return new(MessageRequest) },
	EventDelivered:           func() Request { return new(DeliveredRequest) },
	EventSeen:                func() Request { return new(SeenRequest) },
	EventFailed:              func() Request { return new(FailedRequest) },
	EventSubscribed:          func() Request { return new(SubscribedRequest) },
	EventUnsubscribed:        func() Request { return new(UnsubscribedRequest) },
	EventConversationStarted: func() Request { return new(ConversationStartedRequest) },
}

// ParseRequest decodes a callback body into exactly one Request variant
// selected by the "event" field.
func ParseRequest(data []byte) (Request, error) {

	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, malformed("request: %v", err)
	}

	var event string
	raw, ok := fields["event"]
	if !ok || isNull(raw) {
		return nil, malformed("request: \"event\" required")
	}
	if err = json.Unmarshal(raw, &event); err != nil {
		return nil, malformed("request: event: %v", err)
	}

	newRequest, ok := requestTypes[event]
	if !ok {
		return nil, EventTypeError(event)
	}

	req := newRequest()
	for _, keys := range [][]string{eventKeys, req.required()} {
		for _, key := range keys {
			// null stands for absent
			if raw, ok := fields[key]; !ok || isNull(raw) {
				return nil, malformed("%s: %q required", event, key)
			}
		}
	}

	if err = json.Unmarshal(data, req); err != nil {
		if errors.Is(err, ErrMalformedPayload) {
			return nil, err
		}
		return nil, malformed("%s: %v", event, err)
	}

	return req, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
