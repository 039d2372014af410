package jobs

import (
	"context"
	"log"

	"chamcong/services"
	"chamcong/services/notification"

	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// pruneReportCache xóa cache báo cáo của các ngày cũ; sang ngày mới thì
// mọi key báo cáo hôm qua đều vô dụng
func pruneReportCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	for _, pattern := range []string{"attendance:*", "attendance_count:*"} {
		iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
				log.Printf("Lỗi xóa cache key %s: %v", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			log.Printf("Lỗi scan cache keys %s: %v", pattern, err)
		}
	}
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody, rdb *redis.Client, clock services.Clock) error {
	// Sang ngày mới lúc 0h: token hôm qua tự hết hiệu lực theo key (company, date),
	// chỉ cần dọn cache báo cáo và báo dashboard reset số liệu
	_, err := c.AddFunc("0 0 * * *", func() {
		today := clock.Today()
		log.Printf("Bắt đầu ngày điểm danh mới: %s", today)

		pruneReportCache(context.Background(), rdb)

		if m != nil {
			if err := m.Broadcast([]byte(notification.NewDayMessage(today))); err != nil {
				log.Printf("Lỗi broadcast thông báo ngày mới: %v", err)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
