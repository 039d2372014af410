package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware tạo sessionId cho thiết bị quét nếu chưa có và gán vào context,
// phục vụ trace các thiết bị cùng quét một mã trong giờ cao điểm
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader("X-Session-ID")
		if sessionId == "" {
			// Tạo sessionId mới
			sessionId = uuid.NewString()
		}

		// Gán vào context để dùng trong controller hoặc service
		c.Set("sessionId", sessionId)

		c.Writer.Header().Set("X-Session-ID", sessionId)

		c.Next()
	}
}
