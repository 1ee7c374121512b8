package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Tendwa-T/library-management-system/internal/platform/api"
)

const ctxClaimsKey = "auth_claims"

// Claims is the verified caller identity carried through the request context.
type Claims struct {
	Username string
	IsAdmin  bool
}

// FromContext returns the claims set by RequireAuth, if any.
func FromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// RequireAuth verifies the Authorization header token and stores the
// decoded claims in the context. The "Bearer " prefix is optional, some
// clients send the raw token.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			api.Fail(c, api.ErrUnauthorized("Token is required"))
			return
		}

		tokenStr := h
		if parts := strings.SplitN(h, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			api.Fail(c, api.ErrUnauthorized("Token is required"))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			// Pin the algorithm, rejects alg=none tokens.
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || token == nil || !token.Valid {
			api.Fail(c, api.ErrUnauthorized("Invalid token"))
			return
		}

		mc, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.Fail(c, api.ErrUnauthorized("Invalid token"))
			return
		}

		username, ok := mc["username"].(string)
		if !ok || username == "" {
			api.Fail(c, api.ErrUnauthorized("Invalid token"))
			return
		}
		isAdmin, _ := mc["isAdmin"].(bool)

		c.Set(ctxClaimsKey, &Claims{Username: username, IsAdmin: isAdmin})
		c.Next()
	}
}

// GenerateToken signs an HS256 token for the given identity.
func GenerateToken(secret []byte, username string, isAdmin bool, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"isAdmin":  isAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}
