package controllers

import (
	"chamcong/constants"
	"chamcong/dto"
	"chamcong/models"
	"chamcong/response"
	"chamcong/services"
	"chamcong/services/logger"
	"chamcong/services/notification"
	"chamcong/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// giới hạn quét mã cho mỗi nhân viên, tránh spam thiết bị đầu ca
const maxScansPerMinute = 10

// AttendanceController phục vụ quét mã điểm danh và báo cáo
type AttendanceController struct {
	attendanceService *services.AttendanceService
	queryService      *services.QueryService
	clock             services.Clock
	rdb               *redis.Client
	logger            logger.Logger
}

func NewAttendanceController(db *gorm.DB, rdb *redis.Client, m *melody.Melody, clock services.Clock) *AttendanceController {
	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	ledger := services.NewGormAttendanceLedger(db)
	return &AttendanceController{
		attendanceService: services.NewAttendanceService(services.AttendanceServiceOptions{
			Tokens:       services.NewGormTokenStore(db),
			Ledger:       ledger,
			Clock:        clock,
			Logger:       appLogger,
			Notification: notification.NewMelodyService(m),
		}),
		queryService: services.NewQueryService(services.QueryServiceOptions{
			Ledger: ledger,
			Redis:  rdb,
			Logger: appLogger,
		}),
		clock:  clock,
		rdb:    rdb,
		logger: appLogger,
	}
}

func toCheckInResponse(record *models.CheckInRecord) dto.CheckInResponse {
	return dto.CheckInResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		CompanyID:    record.CompanyID,
		Date:         record.Date,
		CheckInAt:    record.CheckInAt,
	}
}

// CheckIn xử lý một lần quét mã điểm danh của nhân viên
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	employeeID := c.GetUint("userID")
	employeeName := c.GetString("userName")
	companyID := c.GetUint("companyID")

	var request dto.CheckInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if ac.rdb != nil {
		allowed, err := services.AllowScan(c.Request.Context(), ac.rdb, employeeID, maxScansPerMinute)
		if err != nil {
			// rate limiter hỏng thì vẫn cho quét, uniqueness đã có ledger giữ
			ac.logger.Warn("Lỗi rate limiter, bỏ qua: %v", err)
		} else if !allowed {
			response.TooManyRequests(c, "Quét mã quá nhanh, vui lòng thử lại sau")
			return
		}
	}

	outcome, err := ac.attendanceService.Redeem(c.Request.Context(), employeeID, employeeName, companyID, request.Token, ac.clock.Now())
	if err != nil {
		response.ServerError(c)
		return
	}

	switch outcome.Status {
	case services.RedeemStatusSuccess:
		ac.queryService.InvalidateDate(c.Request.Context(), companyID, outcome.Record.Date)
		response.Success(c, toCheckInResponse(outcome.Record))
	case services.RedeemStatusAlreadyCheckedIn:
		response.SuccessWithMessage(c, constants.RedeemAlreadyCheckedIn, "Bạn đã điểm danh hôm nay rồi", nil)
	case services.RedeemStatusWrongCompany:
		response.Error(c, constants.RedeemWrongCompany, "Mã điểm danh không thuộc công ty của bạn")
	case services.RedeemStatusTokenExpired:
		response.Error(c, constants.RedeemTokenExpired, "Mã điểm danh đã hết hạn, liên hệ quản lý để lấy mã mới")
	default:
		response.Error(c, constants.RedeemInvalidToken, "Mã điểm danh không hợp lệ, vui lòng quét lại")
	}
}

// GetAttendanceByDate lấy danh sách điểm danh của công ty trong một ngày
func (ac *AttendanceController) GetAttendanceByDate(c *gin.Context) {
	companyID := c.GetUint("companyID")

	date := c.Query("date")
	if date == "" {
		date = ac.clock.Today()
	}
	if err := validator.ValidateDate(date); err != nil {
		response.BadRequest(c, "Sai định dạng date, cần YYYY-MM-DD")
		return
	}

	records, err := ac.queryService.ListByDate(c.Request.Context(), companyID, date)
	if err != nil {
		response.ServerError(c)
		return
	}

	var attendanceResponses []dto.CheckInResponse
	for i := range records {
		attendanceResponses = append(attendanceResponses, toCheckInResponse(&records[i]))
	}

	response.SuccessWithTotal(c, attendanceResponses, len(attendanceResponses))
}

// GetAttendanceByRange lấy danh sách điểm danh theo khoảng ngày, có phân trang
func (ac *AttendanceController) GetAttendanceByRange(c *gin.Context) {
	companyID := c.GetUint("companyID")

	var request dto.AttendanceRangeRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		response.BadRequest(c, "Sai định dạng fromDate/toDate, cần YYYY-MM-DD")
		return
	}
	if err := validator.ValidateDateRange(request.FromDate, request.ToDate); err != nil {
		response.BadRequest(c, "toDate phải lớn hơn hoặc bằng fromDate")
		return
	}

	page := request.Page
	limit := request.Limit
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}

	records, total, err := ac.queryService.ListByRange(c.Request.Context(), companyID, request.FromDate, request.ToDate, page, limit)
	if err != nil {
		response.ServerError(c)
		return
	}

	var attendanceResponses []dto.CheckInResponse
	for i := range records {
		attendanceResponses = append(attendanceResponses, toCheckInResponse(&records[i]))
	}

	response.SuccessWithPagination(c, attendanceResponses, page, limit, int(total))
}

// GetAttendanceCount đếm số lượt điểm danh của công ty trong một ngày
func (ac *AttendanceController) GetAttendanceCount(c *gin.Context) {
	companyID := c.GetUint("companyID")

	date := c.Query("date")
	if date == "" {
		date = ac.clock.Today()
	}
	if err := validator.ValidateDate(date); err != nil {
		response.BadRequest(c, "Sai định dạng date, cần YYYY-MM-DD")
		return
	}

	count, err := ac.queryService.CountByDate(c.Request.Context(), companyID, date)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"date":  date,
		"count": count,
	})
}
