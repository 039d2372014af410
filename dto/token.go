package dto

import "time"

// TokenResponse trả về mã điểm danh trong ngày cho supervisor hiển thị QR
type TokenResponse struct {
	ID        uint      `json:"id"`
	CompanyID uint      `json:"companyId"`
	Date      string    `json:"date"`
	Token     string    `json:"token"`
	IssuedBy  uint      `json:"issuedBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
