package services

import (
	"context"

	"chamcong/errors"
	"chamcong/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceLedger lưu trữ bản ghi điểm danh, bảo đảm mỗi nhân viên
// chỉ có một bản ghi cho mỗi ngày.
type AttendanceLedger interface {
	// InsertIfAbsent ghi bản ghi điểm danh trong một thao tác nguyên tử duy nhất.
	// inserted = false nghĩa là (employee, company, date) đã có bản ghi từ trước.
	InsertIfAbsent(ctx context.Context, record *models.CheckInRecord) (bool, error)
	ListByDate(ctx context.Context, companyID uint, date string) ([]models.CheckInRecord, error)
	ListByRange(ctx context.Context, companyID uint, fromDate, toDate string, page, limit int) ([]models.CheckInRecord, int64, error)
	CountByDate(ctx context.Context, companyID uint, date string) (int64, error)
}

type GormAttendanceLedger struct {
	db *gorm.DB
}

func NewGormAttendanceLedger(db *gorm.DB) *GormAttendanceLedger {
	return &GormAttendanceLedger{db: db}
}

// InsertIfAbsent dựa vào unique index (employee_id, company_id, date):
// nhiều thiết bị quét cùng lúc thì chỉ đúng một insert có hiệu lực,
// không bao giờ check-tồn-tại rồi mới ghi bằng hai round-trip riêng.
func (l *GormAttendanceLedger) InsertIfAbsent(ctx context.Context, record *models.CheckInRecord) (bool, error) {
	result := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "company_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi ghi bản ghi điểm danh", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByDate lấy danh sách điểm danh của công ty trong một ngày
func (l *GormAttendanceLedger) ListByDate(ctx context.Context, companyID uint, date string) ([]models.CheckInRecord, error) {
	var records []models.CheckInRecord
	err := l.db.WithContext(ctx).
		Where("company_id = ? AND date = ?", companyID, date).
		Order("check_in_at asc").
		Find(&records).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi truy vấn điểm danh theo ngày", err)
	}
	return records, nil
}

// ListByRange lấy danh sách điểm danh trong khoảng ngày, có phân trang
func (l *GormAttendanceLedger) ListByRange(ctx context.Context, companyID uint, fromDate, toDate string, page, limit int) ([]models.CheckInRecord, int64, error) {
	var records []models.CheckInRecord
	var total int64

	tx := l.db.WithContext(ctx).Model(&models.CheckInRecord{}).
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, fromDate, toDate)

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi đếm điểm danh theo khoảng ngày", err)
	}

	err := tx.Order("date asc, check_in_at asc").
		Offset(page * limit).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi truy vấn điểm danh theo khoảng ngày", err)
	}
	return records, total, nil
}

// CountByDate đếm số lượt điểm danh của công ty trong một ngày
func (l *GormAttendanceLedger) CountByDate(ctx context.Context, companyID uint, date string) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.CheckInRecord{}).
		Where("company_id = ? AND date = ?", companyID, date).
		Count(&count).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi đếm điểm danh theo ngày", err)
	}
	return count, nil
}
