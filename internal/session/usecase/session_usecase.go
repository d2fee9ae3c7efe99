package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	sessiondomain "couponbox/internal/session/domain"
	"couponbox/pkg/kvstore"
	"couponbox/pkg/upstream"

	log "github.com/sirupsen/logrus"
)

// Persisted keys. The user record is stored as JSON, the token as the raw
// string, the dev-mode flag as a JSON boolean.
const (
	keyAuthToken = "authToken"
	keyUser      = "user"
	keyDevMode   = "isDevMode"
)

// sessionUsecase implements SessionUsecase
type sessionUsecase struct {
	store kvstore.Store
	api   AuthAPI

	mu      sync.Mutex
	user    *sessiondomain.User
	token   string
	devMode bool
}

// NewSessionUsecase creates the session store. Call Restore before serving.
func NewSessionUsecase(store kvstore.Store, api AuthAPI) SessionUsecase {
	return &sessionUsecase{store: store, api: api}
}

// Restore loads the persisted session. Missing or unreadable data means an
// unauthenticated session; store errors are logged, never surfaced, so the
// process always starts in a terminal state.
func (u *sessionUsecase) Restore() {
	u.mu.Lock()
	defer u.mu.Unlock()

	token, err := u.store.Get(keyAuthToken)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.WithError(err).Warn("Failed to read stored auth token")
		}
		return
	}

	rawUser, err := u.store.Get(keyUser)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.WithError(err).Warn("Failed to read stored user")
		}
		return
	}

	var user sessiondomain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.WithError(err).Warn("Stored user record is malformed, starting unauthenticated")
		return
	}

	devMode := false
	if rawDev, err := u.store.Get(keyDevMode); err == nil {
		// malformed flag just means dev mode off
		_ = json.Unmarshal([]byte(rawDev), &devMode)
	}

	u.token = token
	u.user = &user
	u.devMode = devMode
	log.WithField("email", user.Email).Info("Session restored")
}

// Login persists the token, user and dev-mode flag, then flips the in-memory
// session to authenticated. On a failed write the session is unchanged.
func (u *sessionUsecase) Login(token string, user *sessiondomain.User, devMode bool) error {
	if user == nil {
		return errors.New("login requires a user")
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	rawDev, _ := json.Marshal(devMode)

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.Set(keyAuthToken, token); err != nil {
		log.WithError(err).Error("Failed to persist auth token")
		return err
	}
	if err := u.store.Set(keyUser, string(rawUser)); err != nil {
		log.WithError(err).Error("Failed to persist user")
		return err
	}
	if err := u.store.Set(keyDevMode, string(rawDev)); err != nil {
		log.WithError(err).Error("Failed to persist dev-mode flag")
		return err
	}

	userCopy := *user
	u.token = token
	u.user = &userCopy
	u.devMode = devMode
	return nil
}

// SignInWithGoogle exchanges a Google ID token for a backend session and
// logs it in locally.
func (u *sessionUsecase) SignInWithGoogle(ctx context.Context, idToken string, devMode bool) (*sessiondomain.User, error) {
	auth, err := u.api.GoogleSignIn(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if auth.User == nil || auth.AccessToken == "" {
		return nil, errors.New("backend returned an incomplete session")
	}
	if err := u.Login(auth.AccessToken, auth.User, devMode); err != nil {
		return nil, err
	}
	return auth.User, nil
}

// Logout removes the persisted session keys and clears the in-memory state.
// The backend logout is best effort; a failed local removal leaves the
// session unchanged and is returned.
func (u *sessionUsecase) Logout(ctx context.Context) error {
	u.mu.Lock()
	token := u.token
	u.mu.Unlock()

	if token != "" {
		if err := u.api.Logout(ctx, token); err != nil {
			log.WithError(err).Warn("Backend logout failed, clearing local session anyway")
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for _, key := range []string{keyAuthToken, keyUser, keyDevMode} {
		if err := u.store.Delete(key); err != nil {
			log.WithError(err).WithField("key", key).Error("Failed to remove session key")
			return err
		}
	}

	u.token = ""
	u.user = nil
	u.devMode = false
	log.Info("Logout successful - auth data cleared")
	return nil
}

// UpdateUser persists the new user record and, only on success, replaces the
// in-memory user.
func (u *sessionUsecase) UpdateUser(user *sessiondomain.User) error {
	if user == nil {
		return errors.New("update requires a user")
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.Set(keyUser, string(rawUser)); err != nil {
		log.WithError(err).Error("Failed to persist updated user")
		return err
	}
	userCopy := *user
	u.user = &userCopy
	return nil
}

// ClearAuthData wipes the entire key-value store, favorites included, and
// resets the session. A hard-reset escape hatch, distinct from Logout.
func (u *sessionUsecase) ClearAuthData() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.Clear(); err != nil {
		log.WithError(err).Error("Failed to clear local store")
		return err
	}
	u.token = ""
	u.user = nil
	u.devMode = false
	log.Info("All auth data forcefully cleared")
	return nil
}

// RefreshUser re-fetches the account record from the backend and persists it.
func (u *sessionUsecase) RefreshUser(ctx context.Context) (*sessiondomain.User, error) {
	token := u.Token()
	if token == "" {
		return nil, errors.New("not authenticated")
	}
	user, err := u.api.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshGmailStatus asks the backend whether Gmail is connected and folds
// the answer into the stored user record.
func (u *sessionUsecase) RefreshGmailStatus(ctx context.Context) (*upstream.GmailStatusResponse, error) {
	token := u.Token()
	if token == "" {
		return nil, errors.New("not authenticated")
	}
	status, err := u.api.GmailStatus(ctx, token)
	if err != nil {
		return nil, err
	}
	u.applyGmailConnected(status.Connected)
	return status, nil
}

// GmailConnectURL fetches the consent URL that connects the user's Gmail.
func (u *sessionUsecase) GmailConnectURL(ctx context.Context) (string, error) {
	token := u.Token()
	if token == "" {
		return "", errors.New("not authenticated")
	}
	resp, err := u.api.GmailConnectURL(ctx, token)
	if err != nil {
		return "", err
	}
	return resp.AuthorizationURL, nil
}

// DisconnectGmail revokes the connection on the backend and updates the
// stored user.
func (u *sessionUsecase) DisconnectGmail(ctx context.Context) error {
	token := u.Token()
	if token == "" {
		return errors.New("not authenticated")
	}
	if err := u.api.DisconnectGmail(ctx, token); err != nil {
		return err
	}
	u.applyGmailConnected(false)
	return nil
}

func (u *sessionUsecase) applyGmailConnected(connected bool) {
	u.mu.Lock()
	current := u.user
	u.mu.Unlock()
	if current == nil || current.GmailConnected == connected {
		return
	}
	updated := *current
	updated.GmailConnected = connected
	if err := u.UpdateUser(&updated); err != nil {
		log.WithError(err).Warn("Failed to persist gmail connection status")
	}
}

func (u *sessionUsecase) Session() sessiondomain.Session {
	u.mu.Lock()
	defer u.mu.Unlock()
	s := sessiondomain.Session{
		Token:           u.token,
		DevMode:         u.devMode,
		IsAuthenticated: u.user != nil && u.token != "",
	}
	if u.user != nil {
		userCopy := *u.user
		s.User = &userCopy
	}
	return s
}

func (u *sessionUsecase) User() *sessiondomain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.user == nil {
		return nil
	}
	userCopy := *u.user
	return &userCopy
}

func (u *sessionUsecase) Token() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.token
}

func (u *sessionUsecase) DevMode() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.devMode
}

func (u *sessionUsecase) IsAuthenticated() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.user != nil && u.token != ""
}

func (u *sessionUsecase) GmailConnected() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.user != nil && u.user.GmailConnected
}

func (u *sessionUsecase) AuthHeader() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.token == "" {
		return ""
	}
	return "Bearer " + u.token
}
