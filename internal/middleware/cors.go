package middleware

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSPolicy is the cross-origin allow-list supplied at startup.
type CORSPolicy struct {
	AllowOrigins        []string
	AllowOriginContains []string
	AllowLocalhost      bool
	AllowMethods        []string
	AllowHeaders        []string
	AllowCredentials    bool
	MaxAge              time.Duration
}

func (p CORSPolicy) wildcard() bool {
	return slices.Contains(p.AllowOrigins, "*")
}

// Allows reports whether origin passes the policy.
func (p CORSPolicy) Allows(origin string) bool {
	if p.wildcard() {
		return true
	}

	if slices.Contains(p.AllowOrigins, origin) {
		return true
	}

	for _, sub := range p.AllowOriginContains {
		if strings.Contains(origin, sub) {
			return true
		}
	}

	return p.AllowLocalhost && isLocalOrigin(origin)
}

func (p CORSPolicy) ginConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     p.AllowMethods,
		AllowHeaders:     p.AllowHeaders,
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: p.AllowCredentials,
		MaxAge:           p.MaxAge,
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	// A literal "*" is rejected by browsers on credentialed requests, so the
	// origin is echoed back instead.
	if p.wildcard() && !p.AllowCredentials {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOriginFunc = p.Allows
	return cfg
}

func CORS(policy CORSPolicy) gin.HandlerFunc {
	return cors.New(policy.ginConfig())
}

func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
