package http

import (
	"net/http"
	"strings"
	"time"

	"videotube/internal/usecase"
	"videotube/pkg/apperror"
	"videotube/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// Session authenticates requests from the access token cookie or bearer
// header and manages the token cookies.
type Session struct {
	jwtService   *jwt.Service
	userUseCase  usecase.UserUseCase
	cookieSecure bool
}

func NewSession(jwtService *jwt.Service, userUseCase usecase.UserUseCase, cookieSecure bool) *Session {
	return &Session{
		jwtService:   jwtService,
		userUseCase:  userUseCase,
		cookieSecure: cookieSecure,
	}
}

// RequireAuth rejects requests without a valid token for an existing account.
func (s *Session) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			fail(c, apperror.Unauthenticated("unauthorized request"))
			return
		}

		claims, err := s.jwtService.ValidateAccessToken(token)
		if err != nil {
			fail(c, apperror.Unauthenticated("invalid access token"))
			return
		}

		user, err := s.userUseCase.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			fail(c, err)
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUserEmail, user.Email)
		c.Set(ctxAccount, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// every other request through anonymously.
func (s *Session) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := s.jwtService.ValidateAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		user, err := s.userUseCase.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUserEmail, user.Email)
		c.Set(ctxAccount, user)
		c.Next()
	}
}

func (s *Session) setTokens(c *gin.Context, tokens *usecase.Tokens) {
	s.setAccessToken(c, tokens.AccessToken)
	s.setCookie(c, refreshTokenCookie, tokens.RefreshToken, s.jwtService.RefreshTTL())
}

func (s *Session) setAccessToken(c *gin.Context, token string) {
	s.setCookie(c, accessTokenCookie, token, s.jwtService.AccessTTL())
}

func (s *Session) clearTokens(c *gin.Context) {
	s.setCookie(c, accessTokenCookie, "", -time.Second)
	s.setCookie(c, refreshTokenCookie, "", -time.Second)
}

func (s *Session) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", s.cookieSecure, true)
}

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
