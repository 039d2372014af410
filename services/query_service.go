package services

import (
	"context"
	"time"

	"chamcong/models"
	"chamcong/services/logger"

	"github.com/redis/go-redis/v9"
)

// thời gian sống của cache báo cáo; cache còn bị xóa chủ động mỗi lượt điểm danh mới
const reportCacheTTL = 5 * time.Minute

// QueryService là lớp đọc báo cáo điểm danh, chỉ đọc, không bao giờ ghi
// vào ledger hay token store.
type QueryService struct {
	ledger AttendanceLedger
	rdb    *redis.Client
	logger logger.Logger
}

type QueryServiceOptions struct {
	Ledger AttendanceLedger
	Redis  *redis.Client
	Logger logger.Logger
}

func NewQueryService(opts QueryServiceOptions) *QueryService {
	return &QueryService{
		ledger: opts.Ledger,
		rdb:    opts.Redis,
		logger: opts.Logger,
	}
}

// ListByDate lấy danh sách điểm danh trong ngày, có cache Redis cho báo cáo
func (s *QueryService) ListByDate(ctx context.Context, companyID uint, date string) ([]models.CheckInRecord, error) {
	cacheKey := AttendanceCacheKey(companyID, date)

	if s.rdb != nil {
		var cached []models.CheckInRecord
		if err := GetFromRedis(ctx, s.rdb, cacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := s.ledger.ListByDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil && len(records) > 0 {
		if err := SetToRedis(ctx, s.rdb, cacheKey, records, reportCacheTTL); err != nil {
			s.logger.Error("Lỗi lưu cache báo cáo điểm danh: %v", err)
		}
	}
	return records, nil
}

// ListByRange lấy danh sách điểm danh theo khoảng ngày, có phân trang.
// Khoảng ngày không cache vì tổ hợp key quá nhiều.
func (s *QueryService) ListByRange(ctx context.Context, companyID uint, fromDate, toDate string, page, limit int) ([]models.CheckInRecord, int64, error) {
	return s.ledger.ListByRange(ctx, companyID, fromDate, toDate, page, limit)
}

// CountByDate đếm số lượt điểm danh trong ngày
func (s *QueryService) CountByDate(ctx context.Context, companyID uint, date string) (int64, error) {
	cacheKey := AttendanceCountCacheKey(companyID, date)

	if s.rdb != nil {
		var cached int64 = -1
		if err := GetFromRedis(ctx, s.rdb, cacheKey, &cached); err == nil && cached >= 0 {
			return cached, nil
		}
	}

	count, err := s.ledger.CountByDate(ctx, companyID, date)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, cacheKey, count, reportCacheTTL); err != nil {
			s.logger.Error("Lỗi lưu cache số lượt điểm danh: %v", err)
		}
	}
	return count, nil
}

// InvalidateDate xóa cache báo cáo của (công ty, ngày) sau mỗi lượt điểm danh mới
func (s *QueryService) InvalidateDate(ctx context.Context, companyID uint, date string) {
	if s.rdb == nil {
		return
	}
	_ = DeleteFromRedis(ctx, s.rdb, AttendanceCacheKey(companyID, date))
	_ = DeleteFromRedis(ctx, s.rdb, AttendanceCountCacheKey(companyID, date))
}
