package services

import (
	"context"
	"time"

	"chamcong/errors"
	"chamcong/models"
	"chamcong/services/logger"
	"chamcong/services/notification"
)

// RedeemStatus là kết quả phân loại của một lần quét mã điểm danh.
// Đây là outcome nghiệp vụ, không phải lỗi hệ thống: caller hiển thị
// thông báo tương ứng cho từng loại.
type RedeemStatus int

const (
	RedeemStatusSuccess RedeemStatus = iota
	RedeemStatusInvalidToken
	RedeemStatusWrongCompany
	RedeemStatusTokenExpired
	RedeemStatusAlreadyCheckedIn
)

// RedeemOutcome gói kết quả quét mã; Record chỉ khác nil khi Success
type RedeemOutcome struct {
	Status RedeemStatus
	Record *models.CheckInRecord
}

// AttendanceService điều phối toàn bộ luồng quét mã điểm danh
type AttendanceService struct {
	tokens       TokenStore
	ledger       AttendanceLedger
	clock        Clock
	logger       logger.Logger
	notification notification.Service
}

type AttendanceServiceOptions struct {
	Tokens       TokenStore
	Ledger       AttendanceLedger
	Clock        Clock
	Logger       logger.Logger
	Notification notification.Service
}

func NewAttendanceService(opts AttendanceServiceOptions) *AttendanceService {
	return &AttendanceService{
		tokens:       opts.Tokens,
		ledger:       opts.Ledger,
		clock:        opts.Clock,
		logger:       opts.Logger,
		notification: opts.Notification,
	}
}

// Redeem xử lý một lần quét mã điểm danh. Thứ tự kiểm tra cố định:
// token tồn tại → đúng công ty → còn hạn → chưa điểm danh, để thông báo
// trả về luôn là lý do cụ thể nhất (token cũ phải báo "hết hạn" chứ
// không phải "đã điểm danh").
func (s *AttendanceService) Redeem(ctx context.Context, employeeID uint, employeeName string, companyID uint, submittedToken string, now time.Time) (*RedeemOutcome, error) {
	if employeeID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidEmployee, "employee ID không hợp lệ", nil)
	}
	if companyID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCompanyID, "company ID không hợp lệ", nil)
	}

	token, err := s.tokens.FindByToken(ctx, submittedToken)
	if err != nil {
		return nil, err
	}
	if token == nil || !token.Active {
		return &RedeemOutcome{Status: RedeemStatusInvalidToken}, nil
	}

	if token.CompanyID != companyID {
		// mã của công ty khác bị đem sang quét: chặn cross-tenant
		return &RedeemOutcome{Status: RedeemStatusWrongCompany}, nil
	}

	today := s.clock.Today()
	if token.Date != today || now.After(token.ExpiresAt) {
		// token chỉ sống trong đúng ngày phát hành, không có grace period
		return &RedeemOutcome{Status: RedeemStatusTokenExpired}, nil
	}

	record := &models.CheckInRecord{
		EmployeeID:   employeeID,
		CompanyID:    companyID,
		Date:         today,
		EmployeeName: employeeName,
		CheckInAt:    now,
		TokenUsed:    submittedToken,
	}

	// insert nguyên tử: K thiết bị quét cùng lúc thì đúng một lượt được ghi
	inserted, err := s.ledger.InsertIfAbsent(ctx, record)
	if err != nil {
		s.logger.Error("Lỗi ghi điểm danh employee %d công ty %d ngày %s: %v", employeeID, companyID, today, err)
		return nil, err
	}
	if !inserted {
		return &RedeemOutcome{Status: RedeemStatusAlreadyCheckedIn}, nil
	}

	s.logger.Info("Điểm danh thành công employee %d công ty %d ngày %s", employeeID, companyID, today)
	if s.notification != nil {
		message := notification.NewCheckInMessageBuilder(employeeName, companyID, today).Build()
		if err := s.notification.SendMessage(message); err != nil {
			s.logger.Error("Lỗi gửi thông báo điểm danh: %v", err)
		}
	}

	return &RedeemOutcome{Status: RedeemStatusSuccess, Record: record}, nil
}
