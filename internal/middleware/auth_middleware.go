package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appauth "github.com/okandemir/schoolhub/internal/app/auth"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/auth"
)

const callerContextKey = "caller"

// AuthMiddleware validates bearer tokens and resolves the caller identity
// once per request. The predicate gates reuse that identity; nothing is
// re-resolved downstream.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
	authz      *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository, authz *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		authz:      authz,
	}
}

// CallerFromContext returns the caller resolved by JWTAuth
func CallerFromContext(c *gin.Context) (models.Caller, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return models.Caller{}, false
	}
	caller, ok := value.(models.Caller)
	return caller, ok
}

// JWTAuth validates the Authorization header and loads the caller with its
// role profile ids.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage("Authentication required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage("Invalid authorization header"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage(message))
			return
		}

		caller, err := m.userRepo.ResolveCaller(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage("Account no longer exists"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewMessage("Failed to resolve user"))
			return
		}

		c.Set(callerContextKey, *caller)
		c.Next()
	}
}

// RequireRoles aborts unless the caller's role is among roles
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage("Authentication required"))
			return
		}
		if err := m.authz.Authorize(caller, roles...); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Next()
	}
}

// RequireOwnership aborts unless the caller owns the resource named by the
// id path parameter.
func (m *AuthMiddleware) RequireOwnership(resourceType, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, resourceID, ok := m.callerAndID(c, param)
		if !ok {
			return
		}
		if err := m.authz.CheckOwnership(c.Request.Context(), caller, resourceType, resourceID); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Next()
	}
}

// RequireClassOwnership aborts unless the caller teaches (or administers)
// the class named by the path parameter.
func (m *AuthMiddleware) RequireClassOwnership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, classID, ok := m.callerAndID(c, param)
		if !ok {
			return
		}
		if err := m.authz.CheckClassOwnership(c.Request.Context(), caller, classID); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Next()
	}
}

// RequireClassMembership aborts unless the caller belongs to the class
// named by the path parameter, directly or through a child.
func (m *AuthMiddleware) RequireClassMembership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, classID, ok := m.callerAndID(c, param)
		if !ok {
			return
		}
		if err := m.authz.CheckClassMembership(c.Request.Context(), caller, classID); err != nil {
			abortWithAuthError(c, err)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) callerAndID(c *gin.Context, param string) (models.Caller, int64, bool) {
	caller, ok := CallerFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessage("Authentication required"))
		return models.Caller{}, 0, false
	}

	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewMessage("Invalid id parameter"))
		return models.Caller{}, 0, false
	}

	return caller, id, true
}

func abortWithAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewMessage(messageOr(err, "Bad request")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewMessage(messageOr(err, "Permission denied")))
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewMessage("Authorization check failed"))
	}
}

func messageOr(err error, fallback string) string {
	if message := apperrors.Message(err); message != "" {
		return message
	}
	return fallback
}
