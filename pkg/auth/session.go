package auth

import "context"

// Session identifies the caller of a request. It is decoded from the bearer
// token and carried in the request context.
type Session struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

func SessionFromClaims(c *Claims) Session {
	return Session{UserID: c.ID, Username: c.Username, Role: c.Role}
}
