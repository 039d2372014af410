package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcast thông báo điểm danh tới các dashboard đang mở websocket
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// CheckInMessageBuilder dựng thông báo cho một lượt điểm danh thành công
type CheckInMessageBuilder struct {
	employeeName string
	companyID    uint
	date         string
}

func NewCheckInMessageBuilder(employeeName string, companyID uint, date string) *CheckInMessageBuilder {
	return &CheckInMessageBuilder{
		employeeName: employeeName,
		companyID:    companyID,
		date:         date,
	}
}

func (b *CheckInMessageBuilder) Build() string {
	return fmt.Sprintf("🔔 %s đã điểm danh ngày %s (công ty %d).", b.employeeName, b.date, b.companyID)
}

// NewDayMessage dựng thông báo sang ngày mới để dashboard reset số liệu
func NewDayMessage(date string) string {
	return fmt.Sprintf("📅 Bắt đầu ngày điểm danh mới: %s", date)
}
