package domain

// User is the account record returned by the coupon backend's auth
// endpoints and cached locally for the lifetime of the session.
type User struct {
	ID             int    `json:"id,omitempty"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	GmailConnected bool   `json:"gmail_connected"`
}

// Session is the current auth state: a user, an opaque bearer token, and the
// dev-mode flag. Authenticated means both user and token are present.
type Session struct {
	User           *User  `json:"user"`
	Token          string `json:"-"`
	DevMode        bool   `json:"dev_mode"`
	IsAuthenticated bool  `json:"is_authenticated"`
}
