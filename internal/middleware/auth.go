package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/gmao-ics/techniciens-api/internal/model"
	authservice "github.com/gmao-ics/techniciens-api/internal/service/auth"
	"github.com/gmao-ics/techniciens-api/pkg/auth"
)

// ContextUser is the context key the authenticated identity lives under.
const ContextUser = "auth_user"

const claimsCacheTTL = 5 * time.Minute

type AuthMiddleware struct {
	authService *authservice.Service
	claimsCache *cache.Cache
}

func NewAuthMiddleware(authService *authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		claimsCache: cache.New(claimsCacheTTL, 10*time.Minute),
	}
}

// Authenticate verifies the bearer token and attaches the identity to the
// request context. Validated claims are cached briefly to avoid re-parsing
// the same token on every request.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication token required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token := parts[1]

		claims, err := m.lookupClaims(c, token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUser, &model.AuthUser{
			Username: claims.Subject,
			UserID:   claims.UserID,
			Role:     claims.Role,
		})
		c.Next()
	}
}

func (m *AuthMiddleware) lookupClaims(c *gin.Context, token string) (*auth.Claims, error) {
	if cached, ok := m.claimsCache.Get(token); ok {
		claims := cached.(*auth.Claims)
		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			m.claimsCache.Delete(token)
			return nil, auth.ErrTokenExpired
		}
		return claims, nil
	}

	claims, err := m.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	ttl := claimsCacheTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		m.claimsCache.Set(token, claims, ttl)
	}
	return claims, nil
}

// Authorize checks the permission table for the given operation. The admin
// role passes unconditionally.
func (m *AuthMiddleware) Authorize(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if user.Role == model.RoleAdmin {
			c.Next()
			return
		}

		allowed := Permissions[operation]
		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":          "insufficient permissions",
			"required_roles": allowed,
			"user_role":      user.Role,
		})
	}
}

// CurrentUser returns the authenticated identity, or nil before Authenticate.
func CurrentUser(c *gin.Context) *model.AuthUser {
	if v, exists := c.Get(ContextUser); exists {
		if user, ok := v.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}
