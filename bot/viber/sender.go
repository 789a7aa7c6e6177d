package viber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
)

// https://developers.viber.com/docs/api/rest-bot-api/#response
type SendResponse struct {
	// Base
	Status
	// Unique ID of the message
	MessageID uint64 `json:"message_token"`
	// Viber internal use
	Hostname string `json:"chat_hostname,omitempty"`
	// An indication of how this message is categorized for billing purposes,
	// allowing you to know if it was charged or not,
	// or whether it counts toward your monthly cap of free chatbot-initiated messages
	Billing int8 `json:"billing_status,omitempty"`
}

// messageSender composes send_message and post requests
type messageSender struct {
	*requestSender
}

// validateMessage reports whether msg can be sent
func validateMessage(msg Message) error {
	if isEmpty(msg) {
		return invalidArgument("message required")
	}
	if !msg.Validate() {
		return &ValidationError{Message: msg}
	}
	return nil
}

// checkMessages validates and serializes all the messages
// so that nothing is sent unless the whole batch is good
func checkMessages(messages []Message) error {
	if len(messages) == 0 {
		return invalidArgument("messages required")
	}
	for _, msg := range messages {
		err := validateMessage(msg)
		if err != nil {
			return err
		}
		if _, err = json.Marshal(msg.Payload()); err != nil {
			return fmt.Errorf("%w: %s message: %w", ErrSerialization, msg.Type(), err)
		}
	}
	return nil
}

// preparePayload merges the message fields into the request envelope
func (c *messageSender) preparePayload(message map[string]any, senderName, senderAvatar, chatID string) map[string]any {
	data := make(map[string]any, len(message)+4)
	data["auth_token"] = c.token
	data["sender"] = &User{
		Name:   senderName,
		Avatar: senderAvatar,
	}
	set(data, "chat_id", chatID)
	for key, value := range message {
		data[key] = value
	}
	return removeEmptyFields(data)
}

// removeEmptyFields drops top-level keys with absent values
func removeEmptyFields(data map[string]any) map[string]any {
	for key, value := range data {
		if isEmpty(value) {
			delete(data, key)
		}
	}
	return data
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// sendMessage to the Viber user [to], optionally within inline chat [chatID]
func (c *messageSender) sendMessage(ctx context.Context, to, senderName, senderAvatar string, msg Message, chatID string) (uint64, error) {
	if to == "" {
		return 0, invalidArgument("send_message: receiver required")
	}
	if err := validateMessage(msg); err != nil {
		return 0, err
	}
	return c.send(ctx, endpointSendMessage, "receiver", to, senderName, senderAvatar, msg.Payload(), chatID)
}

// postToPublicAccount as a member [from] of the bot's public chat
func (c *messageSender) postToPublicAccount(ctx context.Context, from, senderName, senderAvatar string, msg Message) (uint64, error) {
	if from == "" {
		return 0, invalidArgument("post: from required")
	}
	if err := validateMessage(msg); err != nil {
		return 0, err
	}
	return c.send(ctx, endpointPost, "from", from, senderName, senderAvatar, msg.Payload(), "")
}

func (c *messageSender) send(ctx context.Context, method, peerKey, peerID, senderName, senderAvatar string, message map[string]any, chatID string) (uint64, error) {

	data := c.preparePayload(message, senderName, senderAvatar, chatID)
	data[peerKey] = peerID

	var res SendResponse
	err := c.post(ctx, method, data, &res)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		c.log.Error("viber/bot."+method,
			slog.String(peerKey, peerID),
			slog.Any("type", message["type"]),
			slog.Any("error", err),
		)
		return 0, err
	}

	c.log.Debug("viber/bot."+method,
		slog.String(peerKey, peerID),
		slog.Uint64("message_token", res.MessageID),
	)

	return res.MessageID, nil
}
