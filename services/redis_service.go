package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hàm lấy data từ Redis, không tìm thấy key thì để nguyên target
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// AttendanceCacheKey là key cache báo cáo điểm danh theo (công ty, ngày).
// Cache chỉ phục vụ đường đọc báo cáo, đường quét mã không bao giờ đọc cache.
func AttendanceCacheKey(companyID uint, date string) string {
	return fmt.Sprintf("attendance:%d:%s", companyID, date)
}

// AttendanceCountCacheKey là key cache số lượt điểm danh theo (công ty, ngày)
func AttendanceCountCacheKey(companyID uint, date string) string {
	return fmt.Sprintf("attendance_count:%d:%s", companyID, date)
}

// AllowScan giới hạn tần suất quét mã của một nhân viên bằng INCR + TTL,
// tránh thiết bị quét liên tục dồn tải vào DB đầu ca
func AllowScan(ctx context.Context, rdb *redis.Client, employeeID uint, maxPerMinute int64) (bool, error) {
	key := fmt.Sprintf("scan_rate:%d", employeeID)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, time.Minute).Err(); err != nil {
			return false, err
		}
	}
	return count <= maxPerMinute, nil
}
