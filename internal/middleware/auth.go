package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

type AuthMiddleware struct {
	tokens  auth.JWTService
	enforce bool
}

// NewAuthMiddleware builds the bearer-token guard. With enforce off, tokens
// are still decoded when present but no request is rejected.
func NewAuthMiddleware(tokens auth.JWTService, enforce bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		enforce: enforce,
	}
}

// Authenticate verifies the JWT and places the session in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			if m.enforce {
				handler.RespondError(c, apperrors.Unauthorized(nil))
				return
			}
			c.Next()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			if m.enforce {
				handler.RespondError(c, apperrors.Unauthorized(err))
				return
			}
			c.Next()
			return
		}

		session := auth.SessionFromClaims(claims)
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// RequireRole admits sessions holding one of roles. It satisfies handler.RoleGuard.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enforce {
			c.Next()
			return
		}

		session, ok := auth.SessionFrom(c.Request.Context())
		if !ok {
			handler.RespondError(c, apperrors.Unauthorized(nil))
			return
		}
		if len(roles) > 0 && !session.HasRole(roles...) {
			handler.RespondError(c, apperrors.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
