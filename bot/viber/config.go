package viber

import "fmt"

// BotConfiguration identifies the bot account.
// Fixed for the lifetime of an Api.
type BotConfiguration struct {
	// Sender name to display.
	// REQUIRED. Max 28 characters.
	Name string
	// Sender avatar URL.
	// REQUIRED. Size should be no more than 100 kb. Recommended 720x720.
	Avatar string
	// Account authentication token.
	// REQUIRED. Obtained on the account creation.
	AuthToken string
}

// Validate reports ErrValidation when any field is missing.
func (c BotConfiguration) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"avatar", c.Avatar},
		{"auth_token", c.AuthToken},
	} {
		if field.value == "" {
			return fmt.Errorf("%w: configuration %s required", ErrValidation, field.name)
		}
	}
	return nil
}
