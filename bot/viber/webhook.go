package viber

// setWebhook request options
// https://developers.viber.com/docs/api/rest-bot-api/#setting-a-webhook
type setWebhook struct {
	AuthToken string `json:"auth_token"`
	// Account webhook URL to receive callbacks & messages from users.
	// Validation: Webhook URL must use SSL.
	// Note: Viber doesn’t support self signed certificates
	// Empty URL removes the webhook.
	CallbackURL string `json:"url"`
	// Indicates the types of Viber events that the account owner would like to be notified about.
	// Don’t include this parameter in your request to get all events
	EventTypes []string `json:"event_types,omitempty"`
	// Indicates whether the account receives inline (chat extension) requests.
	IsInline bool `json:"is_inline"`
}

func (setWebhook) method() string {
	return endpointSetWebhook
}

type setWebhookResult struct {
	Status
	Hostname      string   `json:"chat_hostname"`
	Subscriptions []string `json:"event_types"`
}
