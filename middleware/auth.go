package middleware

import (
	"strings"

	"chamcong/errors"
	"chamcong/response"
	"chamcong/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication, lưu danh tính phiên vào context.
// Quyền phát hành mã đã được lớp authorization bên ngoài kiểm tra role.
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := services.GetSessionFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == session.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		// Lưu thông tin phiên vào context
		c.Set("userID", session.UserID)
		c.Set("userName", session.UserName)
		c.Set("companyID", session.CompanyID)
		c.Set("userRole", session.Role)
		c.Next()
	}
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Kiểm tra lỗi
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if appErr, ok := err.(*errors.AppError); ok {
				response.Error(c, 0, appErr.Message)
				return
			}

			response.ServerError(c)
		}
	}
}
