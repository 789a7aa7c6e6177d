package viber

import (
	"bytes"
	"text/template"
)

var (
	// A template for representing a contact in text
	contactInfo, _ = template.New("contact").Parse(
		`{{- if .Name}}
Name: {{.Name}}
{{- end}}
{{- if .Phone}}
Phone: {{.Phone}}
{{- end}}`,
	)
)

// Contact info
type Contact struct {
	// The Contact’s username.
	Name string `json:"name,omitempty"`
	// The Contact’s phone number.
	Phone string `json:"phone_number,omitempty"`
	// The Contact’s avatar URL.
	Avatar string `json:"avatar,omitempty"`
}

// String renders human-readable contact card
func (c *Contact) String() string {
	if c == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	err := contactInfo.Execute(buf, c)
	if err != nil {
		buf.Reset()
		_, _ = buf.WriteString(err.Error())
	}
	return buf.String()
}

// Location coordinates
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// ContactMessage
// https://developers.viber.com/docs/api/rest-bot-api/#contact-message
type ContactMessage struct {
	// Contact shared.
	// REQUIRED. Name and Phone.
	Contact *Contact
	// Received with the share-phone keyboard button reply.
	Text string
	MessageOptions
}

var _ Message = (*ContactMessage)(nil)

func (*ContactMessage) Type() string {
	return mediaContact
}

func (m *ContactMessage) Validate() bool {
	return m != nil && m.Contact != nil &&
		m.Contact.Name != "" && m.Contact.Phone != ""
}

func (m *ContactMessage) Payload() map[string]any {
	data := m.payload(mediaContact)
	if m.Contact != nil && *(m.Contact) != (Contact{}) {
		data["contact"] = m.Contact
	}
	set(data, "text", m.Text)
	return data
}

// IsShared reports whether the contact was sent
// with the ButtonContact keyboard button,
// thus it is the sender's own phone number.
func (m *ContactMessage) IsShared() bool {
	return m.Text == btnShareContactCode
}

// LocationMessage
// https://developers.viber.com/docs/api/rest-bot-api/#location-message
type LocationMessage struct {
	// Location coordinates.
	// REQUIRED. Latitude (±90°) & longitude (±180°).
	Location *Location
	// Received with the location-picker keyboard button reply.
	Text string
	MessageOptions
}

var _ Message = (*LocationMessage)(nil)

func (*LocationMessage) Type() string {
	return mediaLocation
}

func (m *LocationMessage) Validate() bool {
	return m != nil && m.Location != nil
}

func (m *LocationMessage) Payload() map[string]any {
	data := m.payload(mediaLocation)
	set(data, "location", m.Location)
	set(data, "text", m.Text)
	return data
}
