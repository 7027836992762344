package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storespark/internal/core/auth"
	"storespark/internal/domain"
	resp "storespark/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token，写入 userId/role 供后续取用。
// requireRole 非空时整组接口限定该角色，其他角色返回 403 + 自己的落地页。
func AuthJWT(j *auth.JWTer, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.ErrorData(resp.CodeForbidden, "forbidden",
				gin.H{"homePath": claims.Role.HomePath()}))
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}
