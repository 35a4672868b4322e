package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyIdentity = "identity"
	contextKeyTokenID  = "token_id"
)

// IdentityFromContext returns the identity set by RequireAuth. The zero
// Identity if not set.
func IdentityFromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{}
	}
	return id
}

// TokenIDFromContext returns the jti of the presented token. Empty if not set.
func TokenIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyTokenID)
	if !ok {
		return ""
	}
	jti, _ := v.(string)
	return jti
}

// RequireAuth returns a middleware that checks the Authorization: Bearer
// header, verifies the token and sets the identity in context. Missing
// header responds 401 {"error":"missing auth"}; a token that fails
// verification or has been revoked responds 401 {"error":"invalid token"}.
// revoker may be nil to skip the denylist check.
func RequireAuth(tokens *TokenService, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
			return
		}
		identity, jti, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
		}
		c.Set(contextKeyIdentity, identity)
		c.Set(contextKeyTokenID, jti)
		c.Next()
	}
}
