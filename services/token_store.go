package services

import (
	"context"

	"chamcong/errors"
	"chamcong/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore lưu trữ mã điểm danh theo ngày của từng công ty
type TokenStore interface {
	// CreateIfAbsent tạo token nếu cặp (company, date) chưa có; nếu đã có thì
	// trả về token hiện tại. created = true khi token vừa được tạo.
	CreateIfAbsent(ctx context.Context, token *models.DailyToken) (*models.DailyToken, bool, error)
	GetByCompanyDate(ctx context.Context, companyID uint, date string) (*models.DailyToken, error)
	FindByToken(ctx context.Context, token string) (*models.DailyToken, error)
}

type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

// CreateIfAbsent đóng race lookup-rồi-create bằng unique index (company_id, date):
// hai request cùng lúc thì chỉ một insert thành công, request còn lại đọc lại token đã có.
func (s *GormTokenStore) CreateIfAbsent(ctx context.Context, token *models.DailyToken) (*models.DailyToken, bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(token)
	if result.Error != nil {
		return nil, false, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi tạo mã điểm danh", result.Error)
	}
	if result.RowsAffected > 0 {
		return token, true, nil
	}

	existing, err := s.GetByCompanyDate(ctx, token.CompanyID, token.Date)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// conflict nhưng không đọc lại được bản ghi: vi phạm invariant, không retry mù
		return nil, false, errors.NewAppError(errors.ErrCodeDBDuplicate, "mã điểm danh bị xung đột nhưng không tìm thấy bản ghi", nil)
	}
	return existing, false, nil
}

// GetByCompanyDate trả về token active của (company, date), nil nếu chưa có
func (s *GormTokenStore) GetByCompanyDate(ctx context.Context, companyID uint, date string) (*models.DailyToken, error) {
	var token models.DailyToken
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND date = ? AND active = ?", companyID, date, true).
		First(&token).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi truy vấn mã điểm danh", err)
	}
	return &token, nil
}

// FindByToken tìm token active theo chuỗi mã, nil nếu không tồn tại
func (s *GormTokenStore) FindByToken(ctx context.Context, tokenStr string) (*models.DailyToken, error) {
	var token models.DailyToken
	err := s.db.WithContext(ctx).
		Where("token = ? AND active = ?", tokenStr, true).
		First(&token).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi truy vấn mã điểm danh", err)
	}
	return &token, nil
}
