package dto

import sessiondomain "couponbox/internal/session/domain"

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	DevMode bool   `json:"dev_mode"`
}

// LoginRequest installs a session directly from a token and user record,
// e.g. one obtained out of band in development.
type LoginRequest struct {
	Token   string              `json:"token" binding:"required"`
	User    *sessiondomain.User `json:"user" binding:"required"`
	DevMode bool                `json:"dev_mode"`
}

type UpdateUserRequest struct {
	User *sessiondomain.User `json:"user" binding:"required"`
}

type SessionResponse struct {
	User            *sessiondomain.User `json:"user"`
	IsAuthenticated bool                `json:"is_authenticated"`
	DevMode         bool                `json:"dev_mode"`
}

type GmailConnectResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}
