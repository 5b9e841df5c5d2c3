package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookmart/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
	"github.com/xiebiao/bookmart/pkg/jwt"
	"github.com/xiebiao/bookmart/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Authorization Header提取Bearer Token
// 2. 先查黑名单（已登出的Token立即失效），再验证签名
// 3. 将用户信息注入Context供后续Handler使用
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		// 格式：Authorization: Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, apperrors.ErrInvalidToken)
			return
		}
		tokenString := parts[1]

		// 黑名单里的Token已被登出
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}
		if isBlacklisted {
			response.AbortWithError(c, apperrors.ErrTokenExpired)
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)

		c.Next()
	}
}

// RequireRole 要求指定角色（必须在RequireAuth之后使用）
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			response.AbortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetRole 从Context获取当前用户角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetToken 从Context获取原始Token字符串
func GetToken(c *gin.Context) string {
	if token, exists := c.Get("token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// MustGetUserID 从Context获取用户ID（仅用于已通过RequireAuth的Handler）
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
