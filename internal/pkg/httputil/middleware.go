package httputil

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// MiddlewareConfig holds middleware configuration
type MiddlewareConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultMiddlewareConfig provides sensible defaults
var DefaultMiddlewareConfig = MiddlewareConfig{
	EnableCORS:     true,
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders: []string{"Content-Type", "Authorization"},
}

// CORSMiddleware creates a configurable CORS middleware
func CORSMiddleware(config MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.EnableCORS {
			for _, origin := range config.AllowedOrigins {
				c.Header("Access-Control-Allow-Origin", origin)
			}
			c.Header("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
				return
			}
		}
		c.Next()
	}
}
