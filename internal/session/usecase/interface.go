package usecase

import (
	"context"

	sessiondomain "couponbox/internal/session/domain"
	"couponbox/pkg/upstream"
)

// AuthAPI is the slice of the backend client the session store needs.
type AuthAPI interface {
	GoogleSignIn(ctx context.Context, idToken string) (*upstream.AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*sessiondomain.User, error)
	GmailStatus(ctx context.Context, token string) (*upstream.GmailStatusResponse, error)
	GmailConnectURL(ctx context.Context, token string) (*upstream.GmailConnectResponse, error)
	DisconnectGmail(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

// SessionUsecase manages the authenticated session: restore on start, login,
// logout, user updates and the Gmail-connection proxy operations. Mutating
// operations persist first and only then touch in-memory state, so a failed
// write leaves the session unchanged.
type SessionUsecase interface {
	Restore()
	Login(token string, user *sessiondomain.User, devMode bool) error
	SignInWithGoogle(ctx context.Context, idToken string, devMode bool) (*sessiondomain.User, error)
	Logout(ctx context.Context) error
	UpdateUser(user *sessiondomain.User) error
	ClearAuthData() error
	RefreshUser(ctx context.Context) (*sessiondomain.User, error)
	RefreshGmailStatus(ctx context.Context) (*upstream.GmailStatusResponse, error)
	GmailConnectURL(ctx context.Context) (string, error)
	DisconnectGmail(ctx context.Context) error

	Session() sessiondomain.Session
	User() *sessiondomain.User
	Token() string
	DevMode() bool
	IsAuthenticated() bool
	GmailConnected() bool
	// AuthHeader is "Bearer <token>" when a token is present, else empty.
	AuthHeader() string
}
