package services

import (
	"time"
	_ "time/tzdata"

	"chamcong/constants"
	"chamcong/errors"
)

const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Clock là nguồn thời gian duy nhất cho toàn bộ hệ thống điểm danh.
// Mọi phép so sánh ngày đều đi qua đây để test có thể inject thời gian cố định.
type Clock interface {
	Now() time.Time
	Today() string
	EndOfDay(date string) (time.Time, error)
}

type companyClock struct {
	loc *time.Location
}

// NewClock tạo Clock theo múi giờ công ty, mặc định Asia/Ho_Chi_Minh
func NewClock(timezone string) (Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "múi giờ không hợp lệ", err)
	}
	return &companyClock{loc: loc}, nil
}

func (c *companyClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today trả về ngày hiện tại dạng YYYY-MM-DD theo múi giờ công ty
func (c *companyClock) Today() string {
	return c.Now().Format(constants.DateLayout)
}

// EndOfDay trả về thời điểm 23:59:59.999 của ngày theo múi giờ công ty
func (c *companyClock) EndOfDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation(constants.DateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidDate, "định dạng ngày không hợp lệ", err)
	}
	return day.Add(24*time.Hour - time.Millisecond), nil
}
