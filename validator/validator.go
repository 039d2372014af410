package validator

import (
	"time"

	"chamcong/constants"
	"chamcong/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterGinValidators đăng ký các tag validate riêng với binding engine của gin
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewAppError(errors.ErrCodeValidation, "không lấy được validator engine của gin", nil)
	}
	return v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		return ValidateDate(fl.Field().String()) == nil
	})
}

// ValidateDate kiểm tra chuỗi ngày đúng định dạng YYYY-MM-DD
func ValidateDate(date string) error {
	if date == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Ngày không được để trống", nil)
	}
	parsed, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidDate, "Sai định dạng ngày, cần YYYY-MM-DD", err)
	}
	// time.Parse chấp nhận chuỗi chuẩn hóa được, so lại để chặn kiểu 2026-2-7
	if parsed.Format(constants.DateLayout) != date {
		return errors.NewAppError(errors.ErrCodeInvalidDate, "Sai định dạng ngày, cần YYYY-MM-DD", nil)
	}
	return nil
}

// ValidateDateRange kiểm tra khoảng ngày hợp lệ, toDate không trước fromDate
func ValidateDateRange(fromDate, toDate string) error {
	if err := ValidateDate(fromDate); err != nil {
		return err
	}
	if err := ValidateDate(toDate); err != nil {
		return err
	}
	if toDate < fromDate {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày kết thúc phải sau hoặc bằng ngày bắt đầu", nil)
	}
	return nil
}
