package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/pkg/utils"
)

// Context keys set by Auth
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// AuthCookieName is the cookie carrying the back office token
const AuthCookieName = "auth-token"

// Claims are the token claims the back office issues
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// ParseToken validates an HS256 token signed with secret
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Auth requires a valid token from the auth-token cookie or a Bearer header
// and stores the caller's id, role and raw token in the context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "Missing authentication token")
			c.Abort()
			return
		}

		claims, err := ParseToken(token, secret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid authentication token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, string(rentview.ParseRole(claims.Role)))
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RoleFrom returns the caller's role, RoleOther when unauthenticated
func RoleFrom(c *gin.Context) rentview.Role {
	return rentview.ParseRole(c.GetString(ContextRole))
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// RequireRoles lets only the given roles through; it must run after Auth
func RequireRoles(allowed ...rentview.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFrom(c)
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}
		utils.ForbiddenResponse(c, fmt.Sprintf("Role %s is not allowed to perform this action", role))
		c.Abort()
	}
}
