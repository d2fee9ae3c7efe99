package upstream

import (
	offerdomain "couponbox/internal/offer/domain"
	sessiondomain "couponbox/internal/session/domain"
)

// CouponsResponse is the body of GET /api/coupons.
type CouponsResponse struct {
	AllCoupons []offerdomain.EmailOfferGroup `json:"all_coupons"`
}

// EmailHTMLResponse is the body of GET /api/email_html/{message_id}.
type EmailHTMLResponse struct {
	Success     bool   `json:"success"`
	HTMLContent string `json:"html_content,omitempty"`
	Error       string `json:"error,omitempty"`
}

// AuthResponse is the body of the token-exchange endpoints.
type AuthResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type,omitempty"`
	User        *sessiondomain.User `json:"user"`
}

// GmailStatusResponse is the body of GET /auth/gmail/status.
type GmailStatusResponse struct {
	Connected bool   `json:"connected"`
	LastSync  string `json:"last_sync,omitempty"`
}

// GmailConnectResponse carries the browser URL that starts the Gmail
// consent flow. The flow itself happens outside this process.
type GmailConnectResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// errorBody is the backend's error envelope on non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
}
