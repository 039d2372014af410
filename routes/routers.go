package routes

import (
	"chamcong/constants"
	"chamcong/controllers"
	middlewares "chamcong/middleware"
	"chamcong/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody, clock services.Clock) {

	tokenController := controllers.NewTokenController(db, clock)
	attendanceController := controllers.NewAttendanceController(db, redisCli, m, clock)

	v1 := router.Group("/api/v1")

	// phát hành mã: chỉ supervisor/admin, quyền đã được lớp auth bên ngoài cấp role
	v1.POST("/attendance/token", middlewares.AuthMiddleware(constants.RoleSupervisor, constants.RoleAdmin), tokenController.IssueToken)
	v1.GET("/attendance/token", middlewares.AuthMiddleware(constants.RoleSupervisor, constants.RoleAdmin), tokenController.GetTodayToken)

	// quét mã: mọi nhân viên đã đăng nhập
	v1.POST("/attendance/checkin", middlewares.AuthMiddleware(), middlewares.SessionMiddleware(), attendanceController.CheckIn)

	// báo cáo: supervisor/admin
	v1.GET("/attendance", middlewares.AuthMiddleware(constants.RoleSupervisor, constants.RoleAdmin), attendanceController.GetAttendanceByDate)
	v1.GET("/attendanceRange", middlewares.AuthMiddleware(constants.RoleSupervisor, constants.RoleAdmin), attendanceController.GetAttendanceByRange)
	v1.GET("/attendanceCount", middlewares.AuthMiddleware(constants.RoleSupervisor, constants.RoleAdmin), attendanceController.GetAttendanceCount)
}
