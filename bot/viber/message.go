package viber

import (
	"bytes"
	"encoding/json"
)

// Message types
const (
	mediaURL       = "url"
	mediaText      = "text"
	mediaFile      = "file"
	mediaVideo     = "video"
	mediaImage     = "picture"
	mediaSticker   = "sticker"
	mediaContact   = "contact"
	mediaLocation  = "location"
	mediaRichMedia = "rich_media"
	mediaKeyboard  = "keyboard"
)

// Message content to be sent or received.
type Message interface {
	// Type of the message, e.g. "text", "picture".
	Type() string
	// Validate reports whether all the required fields are set.
	// Structural check only.
	Validate() bool
	// Payload returns message fields as they go on the wire.
	// Unset fields are omitted.
	Payload() map[string]any
}

// MessageOptions common to all the message types.
type MessageOptions struct {
	// Tracking data sent with the message to the user.
	// Allow the account to track messages and user’s replies.
	// Sent value will be passed back with user’s reply.
	// OPTIONAL. Max 4000 characters.
	TrackingData string
	// Custom keyboard attached.
	// OPTIONAL.
	Keyboard *Keyboard
	// Minimal client API version required to display the message.
	// Certain features may not work as expected if set to a number that’s below their requirements.
	// OPTIONAL.
	MinAPIVersion int
}

// Options returns the message options for update.
func (opts *MessageOptions) Options() *MessageOptions {
	return opts
}

func (opts *MessageOptions) payload(kind string) map[string]any {
	data := make(map[string]any, 8)
	set(data, "type", kind)
	set(data, "tracking_data", opts.TrackingData)
	set(data, "keyboard", opts.Keyboard)
	set(data, "min_api_version", opts.MinAPIVersion)
	return data
}

// set value to data[key] unless value is zero
func set[T comparable](data map[string]any, key string, value T) {
	var zero T
	if value != zero {
		data[key] = value
	}
}

// message as it goes on the wire
type rawMessage struct {
	Type          string    `json:"type,omitempty"`
	Text          string    `json:"text,omitempty"`
	Media         string    `json:"media,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Size          int64     `json:"size,omitempty"`
	FileSize      int64     `json:"file_size,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	StickerID     int64     `json:"sticker_id,omitempty"`
	Contact       *Contact  `json:"contact,omitempty"`
	Location      *Location `json:"location,omitempty"`
	RichMedia     *Keyboard `json:"rich_media,omitempty"`
	AltText       string    `json:"alt_text,omitempty"`
	TrackingData  string    `json:"tracking_data,omitempty"`
	Keyboard      *Keyboard `json:"keyboard,omitempty"`
	MinAPIVersion int       `json:"min_api_version,omitempty"`
}

func (raw *rawMessage) options() MessageOptions {
	return MessageOptions{
		TrackingData:  raw.TrackingData,
		Keyboard:      raw.Keyboard,
		MinAPIVersion: raw.MinAPIVersion,
	}
}

// ParseMessage decodes a message object,
// e.g. the "message" of a received callback.
// Unknown message type results in ErrMalformedPayload.
func ParseMessage(data []byte) (Message, error) {

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, malformed("message required")
	}

	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, malformed("message: %v", err)
	}

	opts := raw.options()
	switch raw.Type {
	case mediaText:
		return &TextMessage{Text: raw.Text, MessageOptions: opts}, nil
	case mediaURL:
		return &URLMessage{Media: raw.Media, MessageOptions: opts}, nil
	case mediaImage:
		return &PictureMessage{
			Media:          raw.Media,
			Text:           raw.Text,
			Thumbnail:      raw.Thumbnail,
			MessageOptions: opts,
		}, nil
	case mediaVideo:
		return &VideoMessage{
			Media:          raw.Media,
			Size:           coalesceSize(raw.Size, raw.FileSize),
			Duration:       raw.Duration,
			Text:           raw.Text,
			Thumbnail:      raw.Thumbnail,
			MessageOptions: opts,
		}, nil
	case mediaFile:
		return &FileMessage{
			Media:          raw.Media,
			Size:           coalesceSize(raw.Size, raw.FileSize),
			FileName:       raw.FileName,
			MessageOptions: opts,
		}, nil
	case mediaSticker:
		return &StickerMessage{
			StickerID:      raw.StickerID,
			Media:          raw.Media,
			MessageOptions: opts,
		}, nil
	case mediaContact:
		return &ContactMessage{
			Contact:        raw.Contact,
			Text:           raw.Text,
			MessageOptions: opts,
		}, nil
	case mediaLocation:
		return &LocationMessage{
			Location:       raw.Location,
			Text:           raw.Text,
			MessageOptions: opts,
		}, nil
	case mediaRichMedia:
		return &RichMediaMessage{
			RichMedia:      raw.RichMedia,
			AltText:        raw.AltText,
			MessageOptions: opts,
		}, nil
	case "", mediaKeyboard:
		// keyboard only
		if raw.Keyboard != nil {
			return &KeyboardMessage{MessageOptions: opts}, nil
		}
		return nil, malformed("message type required")
	}

	return nil, malformed("message type %q not supported", raw.Type)
}

// callbacks carry `file_size`, requests expect `size`
func coalesceSize(size ...int64) int64 {
	for _, n := range size {
		if n != 0 {
			return n
		}
	}
	return 0
}
