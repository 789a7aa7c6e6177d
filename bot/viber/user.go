package viber

// The Viber Userinfo
// https://developers.viber.com/docs/api/rest-bot-api/#get-user-details
type User struct {
	// Unique Viber user id
	ID string `json:"id,omitempty"`
	// User’s Viber name
	Name string `json:"name"`
	// URL of user’s avatar
	Avatar string `json:"avatar,omitempty"`
	// User’s 2 letter country code
	Country string `json:"country,omitempty"`
	// User’s phone language. Will be returned according to the device language
	Language string `json:"language,omitempty"`
	// The operating system type and version of the user’s primary device.
	PrimaryDeviceOS string `json:"primary_device_os,omitempty"`
	// The maximal Viber version that is supported by all of the user’s devices
	MaxVersion int `json:"api_version,omitempty"`
	// The Viber version installed on the user’s primary device
	ViberVersion string `json:"viber_version,omitempty"`
	// Mobile country code
	MCC int `json:"mcc,omitempty"`
	// Mobile network code
	MNC int `json:"mnc,omitempty"`
	// The user’s device type
	DeviceType string `json:"device_type,omitempty"`
}

// https://developers.viber.com/docs/api/rest-bot-api/#get-user-details
type getUserDetails struct {
	AuthToken string `json:"auth_token"`
	// Unique Viber user id
	UserID string `json:"id"`
}

func (getUserDetails) method() string {
	return endpointGetUserDetails
}

type userDetails struct {
	Status
	Hostname string `json:"chat_hostname,omitempty"`
	User     *User  `json:"user"`
}

// Online status codes
const (
	Online       = 0
	Offline      = 1
	Undisclosed  = 2
	InternalFail = 3
	Unavailable  = 4
)

// OnlineStatus of a single Viber user.
// https://developers.viber.com/docs/api/rest-bot-api/#get-online
type OnlineStatus struct {
	// Unique Viber user id
	ID string `json:"id"`
	// Online status code
	Status int `json:"online_status"`
	// Online status message
	Message string `json:"online_status_message"`
	// Epoch (ms) of the last time the user was online.
	// Only relevant for offline users.
	LastOnline int64 `json:"last_online,omitempty"`
}

func (s *OnlineStatus) IsOnline() bool {
	return s != nil && s.Status == Online
}

// https://developers.viber.com/docs/api/rest-bot-api/#get-online
type getOnline struct {
	AuthToken string `json:"auth_token"`
	// Unique Viber user id list.
	// REQUIRED. 100 ids per request.
	UserIDs []string `json:"ids"`
}

func (getOnline) method() string {
	return endpointGetOnline
}

type onlineStatus struct {
	Status
	Users []*OnlineStatus `json:"users"`
}
