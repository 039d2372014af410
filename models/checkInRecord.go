package models

import "time"

// CheckInRecord là bản ghi điểm danh của một nhân viên trong một ngày.
// Mỗi bộ (employee_id, company_id, date) chỉ có duy nhất một bản ghi.
type CheckInRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;uniqueIndex:idx_employee_company_date" json:"employeeId"`
	CompanyID    uint      `gorm:"not null;uniqueIndex:idx_employee_company_date" json:"companyId"`
	Date         string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_employee_company_date" json:"date"`
	EmployeeName string    `json:"employeeName"`
	CheckInAt    time.Time `gorm:"not null" json:"checkInAt"`
	TokenUsed    string    `gorm:"not null" json:"tokenUsed"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
