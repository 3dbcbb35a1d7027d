package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tradesim/internal/config"
	"tradesim/internal/models"
)

// timeNow is swappable in tests to mint tokens in the past.
var timeNow = time.Now

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// SessionClaims represents the claims in a session token. UserID is zero
// (and omitted on the wire) for tokens issued at signup, which are bound
// to email and role only.
type SessionClaims struct {
	UserID uint        `json:"id,omitempty"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for the given identity.
// Pass id 0 for signup tokens bound to email and role only.
func GenerateToken(id uint, email string, role models.Role) (string, error) {
	now := jwt.NewNumericDate(timeNow())
	claims := &SessionClaims{
		UserID: id,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(timeNow().Add(config.Get().SessionTTL)),
			IssuedAt:  now,
			NotBefore: now,
			Issuer:    "tradesim-api",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ResolveSession verifies a session token's signature and expiry and
// returns the decoded claims. It never returns an error: any invalid,
// expired, or tampered token resolves to nil.
func ResolveSession(tokenString string) *SessionClaims {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})

	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// ExtractToken locates the session token on an inbound request. Precedence:
// Authorization Bearer header, then the token query parameter, then the
// token cookie. First match wins.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			return token
		}
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if token, err := c.Cookie("token"); err == nil && token != "" {
		return token
	}
	return ""
}

// SetSessionCookie attaches the session token as an HTTP-only, secure,
// SameSite=Strict cookie with the configured session lifetime.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(config.Get().SessionTTL.Seconds()), "/", "", true, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
}

// Context keys set by RequireAuth.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// RequireAuth verifies the session token and sets the caller's identity
// in the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims := ResolveSession(token)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole enforces a role on top of RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := c.Get(ContextRole)
		if !exists || current.(models.Role) != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
