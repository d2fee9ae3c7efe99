package delivery

import (
	"errors"
	"net/http"

	sessiondto "couponbox/internal/session/dto"
	"couponbox/internal/session/usecase"
	"couponbox/pkg/upstream"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{sessionUsecase: sessionUsecase}
}

func (h *SessionHandler) GoogleSignIn(c *gin.Context) {
	var req sessiondto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.sessionUsecase.SignInWithGoogle(c.Request.Context(), req.IDToken, req.DevMode)
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessiondto.SessionResponse{
		User:            user,
		IsAuthenticated: true,
		DevMode:         req.DevMode,
	})
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req sessiondto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionUsecase.Login(req.Token, req.User, req.DevMode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessiondto.SessionResponse{
		User:            req.User,
		IsAuthenticated: true,
		DevMode:         req.DevMode,
	})
}

func (h *SessionHandler) Me(c *gin.Context) {
	s := h.sessionUsecase.Session()
	c.JSON(http.StatusOK, sessiondto.SessionResponse{
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
		DevMode:         s.DevMode,
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessionUsecase.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *SessionHandler) UpdateUser(c *gin.Context) {
	var req sessiondto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionUsecase.UpdateUser(req.User); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": req.User})
}

// Reset wipes the whole local store, favorites included. Debug escape hatch.
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.sessionUsecase.ClearAuthData(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "local data cleared"})
}

func (h *SessionHandler) RefreshUser(c *gin.Context) {
	user, err := h.sessionUsecase.RefreshUser(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *SessionHandler) GmailStatus(c *gin.Context) {
	status, err := h.sessionUsecase.RefreshGmailStatus(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *SessionHandler) GmailConnect(c *gin.Context) {
	url, err := h.sessionUsecase.GmailConnectURL(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessiondto.GmailConnectResponse{AuthorizationURL: url})
}

func (h *SessionHandler) GmailDisconnect(c *gin.Context) {
	if err := h.sessionUsecase.DisconnectGmail(c.Request.Context()); err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gmail disconnected"})
}

func upstreamStatus(err error) int {
	if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrTokenExpired) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}
