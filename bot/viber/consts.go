package viber

// Version of this client library, reported in the User-Agent header.
const Version = "1.0.0"

// constants
const (
	// DefaultEndpoint is the Viber REST bot API base URL.
	// MUST: strings.TrimRight(DefaultEndpoint, "/")
	DefaultEndpoint = "https://chatapi.viber.com/pa"
	// DefaultUserAgent sent with each API request.
	DefaultUserAgent = "ViberBot-Go/" + Version
)

// API methods
// https://developers.viber.com/docs/api/rest-bot-api/
const (
	endpointSendMessage    = "send_message"
	endpointPost           = "post"
	endpointSetWebhook     = "set_webhook"
	endpointGetAccountInfo = "get_account_info"
	endpointGetOnline      = "get_online"
	endpointGetUserDetails = "get_user_details"
)

// SignatureHeader carries the hex HMAC-SHA256 of a callback body.
const SignatureHeader = "X-Viber-Content-Signature"
