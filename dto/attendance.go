package dto

import "time"

// CheckInRequest là payload khi nhân viên quét mã điểm danh
type CheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

// CheckInResponse trả về bản ghi điểm danh sau khi quét thành công
type CheckInResponse struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	CompanyID    uint      `json:"companyId"`
	Date         string    `json:"date"`
	CheckInAt    time.Time `json:"checkInAt"`
}

// AttendanceRangeRequest là query khi xem báo cáo theo khoảng ngày
type AttendanceRangeRequest struct {
	FromDate string `form:"fromDate" binding:"required,dateymd"`
	ToDate   string `form:"toDate" binding:"required,dateymd"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}
