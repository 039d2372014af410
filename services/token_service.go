package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"chamcong/constants"
	"chamcong/errors"
	"chamcong/models"
	"chamcong/services/logger"
)

// TokenService phát hành mã điểm danh theo ngày cho từng công ty
type TokenService struct {
	store  TokenStore
	clock  Clock
	logger logger.Logger
}

type TokenServiceOptions struct {
	Store  TokenStore
	Clock  Clock
	Logger logger.Logger
}

func NewTokenService(opts TokenServiceOptions) *TokenService {
	return &TokenService{
		store:  opts.Store,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
}

// generateTokenString sinh chuỗi mã không đoán được, có prefix công ty và ngày
// để dễ debug. Prefix không mang tính bảo mật, phần bảo mật nằm ở 12 byte random.
func generateTokenString(companyID uint, date string) (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.NewAppError(errors.ErrCodeTokenGeneration, "không sinh được mã ngẫu nhiên", err)
	}
	return fmt.Sprintf("%s-%d-%s-%s", constants.TokenPrefix, companyID, date, hex.EncodeToString(buf)), nil
}

// IssueOrGetToday phát hành mã điểm danh cho ngày hôm nay, idempotent:
// gọi bao nhiêu lần trong ngày cũng chỉ có đúng một token được tạo.
func (s *TokenService) IssueOrGetToday(ctx context.Context, companyID uint, issuedBy uint) (*models.DailyToken, error) {
	if companyID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCompanyID, "company ID không hợp lệ", nil)
	}

	date := s.clock.Today()

	// đường nhanh: phần lớn request trong ngày chỉ cần đọc
	existing, err := s.store.GetByCompanyDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	tokenStr, err := generateTokenString(companyID, date)
	if err != nil {
		return nil, err
	}
	expiresAt, err := s.clock.EndOfDay(date)
	if err != nil {
		return nil, err
	}

	token := &models.DailyToken{
		CompanyID: companyID,
		Date:      date,
		Token:     tokenStr,
		IssuedBy:  issuedBy,
		ExpiresAt: expiresAt,
		Active:    true,
	}

	// hai supervisor bấm phát hành cùng lúc thì store chỉ giữ lại một token
	saved, created, err := s.store.CreateIfAbsent(ctx, token)
	if err != nil {
		s.logger.Error("Lỗi phát hành mã điểm danh công ty %d ngày %s: %v", companyID, date, err)
		return nil, err
	}
	if created {
		s.logger.Info("Đã phát hành mã điểm danh công ty %d ngày %s bởi user %d", companyID, date, issuedBy)
	}
	return saved, nil
}

// GetToday chỉ đọc token của ngày hôm nay, không tạo mới; nil nếu chưa phát hành
func (s *TokenService) GetToday(ctx context.Context, companyID uint) (*models.DailyToken, error) {
	if companyID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidCompanyID, "company ID không hợp lệ", nil)
	}
	return s.store.GetByCompanyDate(ctx, companyID, s.clock.Today())
}
