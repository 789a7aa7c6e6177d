package viber

// https://developers.viber.com/docs/api/rest-bot-api/#get-account-info
type getAccount struct {
	AuthToken string `json:"auth_token"`
}

func (getAccount) method() string {
	return endpointGetAccountInfo
}

// Member of the bot’s public chat
type Moderator struct {
	Role string `json:"role,omitempty"`
	User
}

// Viber Account Info
type Account struct {
	// Unique numeric id of the account
	// Example: "pa:5752641035484782230"
	ID string `json:"id"`
	// Unique URI of the Account
	URI string `json:"uri"`
	// Account icon URL
	// JPEG, 720x720, size no more than 512 kb
	Icon string `json:"icon"`
	// Account name
	// Max 75 characters
	Name string `json:"name"`
	// Response status.
	// NOTE: get_account_info result is passed through as is;
	// check Account.Err() yourself.
	Status
	// Account country.
	// 2 letters country code - ISO ALPHA-2 Code
	Country string `json:"country,omitempty"`
	// Account location (coordinates).
	// Will be used for finding accounts near me
	Location *Location `json:"location,omitempty"`
	// Account category
	Category string `json:"category,omitempty"`
	// Account sub-category
	Subcategory string `json:"subcategory,omitempty"`
	// Viber internal use
	Hostname string `json:"chat_hostname,omitempty"`
	// Conversation background URL
	// JPEG, max 1920x1920, size no more than 512 kb
	Background string `json:"background,omitempty"`
	// Account registered webhook URL
	Webhook string `json:"webhook,omitempty"`
	// Account registered events – as set by set_webhook request
	Events []string `json:"event_types,omitempty"`
	// Number of subscribers
	Subscribers int `json:"subscribers_count,omitempty"`
	// Members of the bot’s public chat.
	// id, name, avatar, role for each Public Chat member (admin/participant). Deprecated.
	Moderators []*Moderator `json:"members,omitempty"`
}
