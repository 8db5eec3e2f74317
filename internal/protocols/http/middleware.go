package http

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"bloghub/internal/authz"
	"bloghub/internal/core"
	"bloghub/pkg/logger"
	"bloghub/pkg/models"
)

// LoggingMiddleware writes one structured access line per request
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.HTTP(
			c.Request.Method,
			path,
			c.Writer.Status(),
			int(time.Since(start).Milliseconds()),
		)
	}
}

// AuthMiddleware validates JWT token and sets user context
func AuthMiddleware(authSvc core.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		token := parts[1]

		// Validate token
		user, err := authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(401, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		// Store user ID and full user in context
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetUser retrieves the full authenticated user from the context
func GetUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	u, ok := user.(*models.User)
	return u, ok
}

// GetActor builds the policy actor for the authenticated user, or nil
// for anonymous requests
func GetActor(c *gin.Context) *authz.Actor {
	user, ok := GetUser(c)
	if !ok {
		return nil
	}
	return &authz.Actor{ID: user.ID, Roles: user.Roles}
}

// AdminMiddleware ensures the user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// First check if user is authenticated
		user, exists := GetUser(c)
		if !exists {
			c.JSON(401, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		// Check if user is admin
		if !user.Roles.Has(models.RoleAdmin) {
			c.JSON(403, gin.H{"error": "forbidden: admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Guest commenting is open to the internet, so each client IP gets a
// small token bucket. Stale buckets are swept so the map stays bounded.
const (
	rateLimitPerMinute = 10
	rateLimitBurst     = 5
	limiterIdleTime    = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP
func RateLimitMiddleware() gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
	)

	go func() {
		ticker := time.NewTicker(limiterIdleTime)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, l := range limiters {
				if time.Since(l.lastSeen) > limiterIdleTime {
					delete(limiters, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		l, ok := limiters[ip]
		if !ok {
			l = &ipLimiter{
				limiter: rate.NewLimiter(rate.Every(time.Minute/rateLimitPerMinute), rateLimitBurst),
			}
			limiters[ip] = l
		}
		l.lastSeen = time.Now()
		mu.Unlock()

		if !l.limiter.Allow() {
			c.JSON(429, gin.H{"error": "too many requests, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
