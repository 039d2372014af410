package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chamcong/constants"
	"chamcong/models"
)

// fixedClock trả về thời gian cố định cho test, thay cho companyClock
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Today() string {
	return c.now.Format(constants.DateLayout)
}

func (c *fixedClock) EndOfDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation(constants.DateLayout, date, c.now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(24*time.Hour - time.Millisecond), nil
}

// fakeTokenStore giữ token trong map có mutex, mô phỏng unique index
// (company_id, date) của GormTokenStore
type fakeTokenStore struct {
	mu      sync.Mutex
	byKey   map[string]*models.DailyToken
	byToken map[string]*models.DailyToken
	nextID  uint
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		byKey:   make(map[string]*models.DailyToken),
		byToken: make(map[string]*models.DailyToken),
	}
}

func tokenKey(companyID uint, date string) string {
	return fmt.Sprintf("%d|%s", companyID, date)
}

func (s *fakeTokenStore) CreateIfAbsent(ctx context.Context, token *models.DailyToken) (*models.DailyToken, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tokenKey(token.CompanyID, token.Date)
	if existing, ok := s.byKey[key]; ok {
		return existing, false, nil
	}
	s.nextID++
	token.ID = s.nextID
	stored := *token
	s.byKey[key] = &stored
	s.byToken[token.Token] = &stored
	return &stored, true, nil
}

func (s *fakeTokenStore) GetByCompanyDate(ctx context.Context, companyID uint, date string) (*models.DailyToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byKey[tokenKey(companyID, date)]
	if !ok || !token.Active {
		return nil, nil
	}
	return token, nil
}

func (s *fakeTokenStore) FindByToken(ctx context.Context, tokenStr string) (*models.DailyToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byToken[tokenStr]
	if !ok || !token.Active {
		return nil, nil
	}
	return token, nil
}

func (s *fakeTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

// fakeLedger giữ bản ghi điểm danh trong map có mutex, mô phỏng unique index
// (employee_id, company_id, date) của GormAttendanceLedger
type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*models.CheckInRecord
	nextID  uint
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*models.CheckInRecord)}
}

func recordKey(employeeID, companyID uint, date string) string {
	return fmt.Sprintf("%d|%d|%s", employeeID, companyID, date)
}

func (l *fakeLedger) InsertIfAbsent(ctx context.Context, record *models.CheckInRecord) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := recordKey(record.EmployeeID, record.CompanyID, record.Date)
	if _, ok := l.records[key]; ok {
		return false, nil
	}
	l.nextID++
	record.ID = l.nextID
	stored := *record
	l.records[key] = &stored
	return true, nil
}

func (l *fakeLedger) ListByDate(ctx context.Context, companyID uint, date string) ([]models.CheckInRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var records []models.CheckInRecord
	for _, record := range l.records {
		if record.CompanyID == companyID && record.Date == date {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (l *fakeLedger) ListByRange(ctx context.Context, companyID uint, fromDate, toDate string, page, limit int) ([]models.CheckInRecord, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var records []models.CheckInRecord
	for _, record := range l.records {
		if record.CompanyID == companyID && record.Date >= fromDate && record.Date <= toDate {
			records = append(records, *record)
		}
	}
	total := int64(len(records))
	start := page * limit
	if start >= len(records) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], total, nil
}

func (l *fakeLedger) CountByDate(ctx context.Context, companyID uint, date string) (int64, error) {
	records, _ := l.ListByDate(ctx, companyID, date)
	return int64(len(records)), nil
}
