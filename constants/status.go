package constants

// User role
const (
	RoleEmployee   = 0
	RoleSupervisor = 1
	RoleAdmin      = 2
)

// Redeem status
const (
	RedeemSuccess          = 1
	RedeemInvalidToken     = 2
	RedeemWrongCompany     = 3
	RedeemTokenExpired     = 4
	RedeemAlreadyCheckedIn = 5
)

// Date format dùng chung cho toàn hệ thống (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Token prefix cho mã điểm danh, chỉ để debug, không mang tính bảo mật
const TokenPrefix = "CC"
