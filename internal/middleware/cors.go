package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin is a parsed "scheme://*.suffix" CORS pattern. It
// matches exactly one subdomain label, so "https://*.example.com"
// allows "https://app.example.com" but not "https://a.b.example.com".
type wildcardOrigin struct {
	scheme string // "https://" or "http://"
	suffix string // ".example.com"
}

// parseWildcardOrigin parses a wildcard origin pattern. Returns nil
// for exact origins and malformed patterns. The wildcard must sit
// directly after the scheme and the suffix needs at least two domain
// parts, so "https://*.com" is rejected.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := strings.TrimPrefix(pattern, scheme)
	if !strings.HasPrefix(rest, "*.") {
		return nil
	}

	suffix := rest[1:] // keep the leading dot
	if strings.Contains(suffix, "*") {
		return nil
	}

	parts := strings.Split(strings.TrimPrefix(suffix, "."), ".")
	if len(parts) < 2 {
		return nil
	}
	for _, part := range parts {
		if part == "" {
			return nil
		}
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether origin is scheme + one label + suffix
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) || !strings.HasSuffix(origin, w.suffix) {
		return false
	}
	label := strings.TrimSuffix(strings.TrimPrefix(origin, w.scheme), w.suffix)
	if label == "" {
		return false
	}
	return !strings.ContainsAny(label, "./")
}

// CORS restricts cross-origin requests to the configured origins.
// Entries may be exact origins or wildcard patterns. An empty list
// allows all origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0

	var exact []string
	var wildcards []*wildcardOrigin
	for _, entry := range allowedOrigins {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if w := parseWildcardOrigin(entry); w != nil {
			wildcards = append(wildcards, w)
		} else {
			exact = append(exact, entry)
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			allowed := false
			for _, allowedOrigin := range exact {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed {
				for _, w := range wildcards {
					if w.matches(origin) {
						allowed = true
						break
					}
				}
			}

			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else if c.Request.Method == "OPTIONS" {
				// Origin not allowed; refuse the preflight outright
				c.AbortWithStatus(403)
				return
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
