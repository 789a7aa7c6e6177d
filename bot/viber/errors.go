package viber

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrValidation reports a message or input that fails structural checks.
	ErrValidation = errors.New("viber: validation failed")
	// ErrInvalidArgument reports a wrong argument shape, e.g. a nil message or an empty id.
	ErrInvalidArgument = errors.New("viber: invalid argument")
	// ErrTransport reports an HTTP exchange failure or a non-2xx reply.
	ErrTransport = errors.New("viber: transport failure")
	// ErrSerialization reports a payload that could not be encoded as JSON.
	ErrSerialization = errors.New("viber: payload not serializable")
	// ErrMalformedPayload reports an inbound body that does not decode into a known shape.
	ErrMalformedPayload = errors.New("viber: malformed payload")
	// ErrUnrecognizedEventType reports an inbound event with an unknown discriminant.
	ErrUnrecognizedEventType = errors.New("viber: unrecognized event type")
)

// ValidationError is returned for a message whose Validate reports false.
type ValidationError struct {
	Message Message
}

func (e *ValidationError) Error() string {
	return "viber: failed validating message: " + describe(e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// HTTPError is a non-2xx reply from the API host.
type HTTPError struct {
	Code   int
	Status string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("viber: (%d) %s", e.Code, e.Status)
}

func (e *HTTPError) Unwrap() error {
	return ErrTransport
}

// EventTypeError names an unknown inbound event discriminant.
type EventTypeError string

func (e EventTypeError) Error() string {
	return "viber: event \"" + string(e) + "\" type unknown"
}

func (e EventTypeError) Unwrap() error {
	return ErrUnrecognizedEventType
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedPayload}, args...)...)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// describe renders message m for error reports
func describe(m Message) string {
	if m == nil {
		return "<nil>"
	}
	data, err := json.Marshal(m.Payload())
	if err != nil {
		return fmt.Sprintf("%T%+v", m, m)
	}
	return string(data)
}
