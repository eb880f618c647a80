package router

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/i18n"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// TokenAuthenticator validates a session token against the current user state
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.JWTClaims, *cache.UserAuthState, error)
}

// PathEnforcer decides whether a user may call a route
type PathEnforcer interface {
	EnforceUser(userID uint, obj, act string) (bool, error)
}

// CORSMiddleware gin-contrib/cors built from config; a "*" origin with credentials echoes the caller
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		ExposeHeaders:    []string{requestIDHeader, "Content-Disposition"},
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept-Language",
			"Authorization",
			"X-Locale",
			requestIDHeader,
		}
	}

	origins := cfg.AllowedOrigins
	wildcard := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
		}
	}
	switch {
	case wildcard && cfg.AllowCredentials:
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	case wildcard:
		corsCfg.AllowAllOrigins = true
	default:
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// RequestIDMiddleware reuses X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware one structured line per request
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if userID, ok := c.Get(shared.ContextUserID); ok {
			log = log.With("user_id", userID)
		}
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// extractToken Bearer header first, then the session cookie
func extractToken(c *gin.Context, cookieName string) (string, string) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "error.auth_header_invalid"
		}
		return strings.TrimSpace(parts[1]), ""
	}
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), ""
		}
	}
	return "", "error.auth_header_missing"
}

// JWTAuthMiddleware authenticates staff requests and stores user_id, username and role
func JWTAuthMiddleware(auth TokenAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		token, problem := extractToken(c, cookieName)
		if problem != "" {
			abortUnauthorized(c, problem)
			return
		}

		claims, state, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) {
				logger.Warnw("auth_state_resolve_failed", "error", err)
			}
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(shared.ContextUserID, claims.UserID)
		c.Set(shared.ContextUsername, state.Username)
		c.Set(shared.ContextRole, state.Role)
		c.Next()
	}
}

// RBACMiddleware checks the matched route against casbin. Admins bypass;
// routes without any policy are therefore admin-only.
func RBACMiddleware(enforcer PathEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shared.CurrentRole(c) == constants.RoleAdmin {
			c.Next()
			return
		}
		if enforcer == nil {
			logger.Errorw("rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		userID := c.GetUint(shared.ContextUserID)
		if userID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := enforcer.EnforceUser(userID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"user_id", userID,
				"role", shared.CurrentRole(c),
				"method", c.Request.Method,
				"resource", resource,
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
