package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityConfig controls the hardening headers sent with every response.
type SecurityConfig struct {
	HSTSMaxAge    int // seconds; zero disables Strict-Transport-Security
	FrameOptions  string
	CacheControl  string
	CSPDirectives []string
}

func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:   31536000,
		FrameOptions: "DENY",
		// Responses carry patient records.
		CacheControl: "no-store",
		CSPDirectives: []string{
			"default-src 'none'",
			"frame-ancestors 'none'",
		},
	}
}

func (c SecurityConfig) headers() map[string]string {
	h := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "no-referrer",
	}
	if c.HSTSMaxAge > 0 {
		h["Strict-Transport-Security"] = fmt.Sprintf("max-age=%d; includeSubDomains", c.HSTSMaxAge)
	}
	if c.FrameOptions != "" {
		h["X-Frame-Options"] = c.FrameOptions
	}
	if c.CacheControl != "" {
		h["Cache-Control"] = c.CacheControl
	}
	if len(c.CSPDirectives) > 0 {
		h["Content-Security-Policy"] = strings.Join(c.CSPDirectives, "; ")
	}
	return h
}

// SecurityHeaders sets the configured headers before the handler runs.
func SecurityHeaders(config SecurityConfig) gin.HandlerFunc {
	headers := config.headers()
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}
