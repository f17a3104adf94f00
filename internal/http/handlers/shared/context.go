package shared

import (
	"github.com/vendor-payments/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从请求上下文取身份 ID。缺失视为未认证，
// 取到但类型不符说明中间件写入有误，按内部错误处理。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case uint64:
		return uint(v), true
	case int:
		if v >= 0 {
			return uint(v), true
		}
	case int64:
		if v >= 0 {
			return uint(v), true
		}
	case float64:
		if v >= 0 {
			return uint(v), true
		}
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}

	RespondError(c, response.CodeBadRequest, invalidKey, nil)
	return 0, false
}
