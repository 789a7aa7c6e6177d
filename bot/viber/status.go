package viber

import "fmt"

// Status envelope of the API responses.
// https://developers.viber.com/docs/api/rest-bot-api/#error-codes
type Status struct {
	Code    int    `json:"status"`
	Message string `json:"status_message"`
}

func (e *Status) Ok() bool {
	return e.Code == 0
}

func (e *Status) Err() error {
	if e.Ok() {
		return nil
	}
	return &Error{Code: e.Code, Message: e.Message}
}

// Error is a logical API failure: the HTTP exchange succeeded
// but the response status is not zero.
type Error Status

// Well-known status codes
const (
	StatusOK                       = 0
	StatusInvalidURL               = 1
	StatusInvalidAuthToken         = 2
	StatusBadData                  = 3
	StatusMissingData              = 4
	StatusReceiverNotRegistered    = 5
	StatusReceiverNotSubscribed    = 6
	StatusPublicAccountBlocked     = 7
	StatusPublicAccountNotFound    = 8
	StatusPublicAccountSuspended   = 9
	StatusWebhookNotSet            = 10
	StatusReceiverNoSuitableDevice = 11
	StatusTooManyRequests          = 12
)

func (e *Error) IsCode(code int) bool {
	return code != 0 && e != nil && code == e.Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("viber: (%d) %s", e.Code, e.Message)
}

func (e *Error) Status() *Status {
	return (*Status)(e)
}
