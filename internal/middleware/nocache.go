package middleware

import "github.com/gin-gonic/gin"

// NoCache marks every response as non-storable so generated text is never
// served from an intermediary cache.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
