package models

import "time"

// DailyToken là mã điểm danh của một công ty trong một ngày.
// Mỗi cặp (company_id, date) chỉ có duy nhất một token active.
type DailyToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;uniqueIndex:idx_company_date" json:"companyId"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_company_date" json:"date"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	IssuedBy  uint      `gorm:"not null" json:"issuedBy"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
