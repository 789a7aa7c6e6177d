package viber

import "github.com/webitel/viberbot/internal/util"

// TextMessage
// https://developers.viber.com/docs/api/rest-bot-api/#text-message
type TextMessage struct {
	// The text of the message.
	// REQUIRED. Max length 7,000 characters
	Text string
	MessageOptions
}

var _ Message = (*TextMessage)(nil)

func (*TextMessage) Type() string {
	return mediaText
}

func (m *TextMessage) Validate() bool {
	return m != nil && m.Text != ""
}

func (m *TextMessage) Payload() map[string]any {
	data := m.payload(mediaText)
	set(data, "text", m.Text)
	return data
}

// URLMessage
// https://developers.viber.com/docs/api/rest-bot-api/#url-message
type URLMessage struct {
	// URL to be sent.
	// REQUIRED. Max 2,000 characters
	Media string
	MessageOptions
}

var _ Message = (*URLMessage)(nil)

func (*URLMessage) Type() string {
	return mediaURL
}

func (m *URLMessage) Validate() bool {
	return m != nil && util.IsURL(m.Media)
}

func (m *URLMessage) Payload() map[string]any {
	data := m.payload(mediaURL)
	set(data, "media", m.Media)
	return data
}

// KeyboardMessage sends the custom Keyboard only, with no content.
// https://developers.viber.com/docs/tools/keyboards/
type KeyboardMessage struct {
	MessageOptions
}

var _ Message = (*KeyboardMessage)(nil)

func (*KeyboardMessage) Type() string {
	return mediaKeyboard
}

func (m *KeyboardMessage) Validate() bool {
	return m != nil && m.Keyboard != nil
}

// Payload has no "type"
func (m *KeyboardMessage) Payload() map[string]any {
	return m.payload("")
}

// RichMediaMessage (Carousel content)
// https://developers.viber.com/docs/api/rest-bot-api/#rich-media-message--carousel-content-message
type RichMediaMessage struct {
	// Carousel content layout, see NewRichMedia.
	// REQUIRED.
	RichMedia *Keyboard
	// Backward compatibility text, shown by clients
	// that do not support rich media.
	// OPTIONAL.
	AltText string
	MessageOptions
}

var _ Message = (*RichMediaMessage)(nil)

// Rich media requires client API version 2 and above.
const richMediaMinAPIVersion = 2

func (*RichMediaMessage) Type() string {
	return mediaRichMedia
}

func (m *RichMediaMessage) Validate() bool {
	return m != nil && m.RichMedia != nil
}

func (m *RichMediaMessage) Payload() map[string]any {
	data := m.payload(mediaRichMedia)
	if m.MinAPIVersion == 0 {
		data["min_api_version"] = richMediaMinAPIVersion
	}
	set(data, "rich_media", m.RichMedia)
	set(data, "alt_text", m.AltText)
	return data
}
