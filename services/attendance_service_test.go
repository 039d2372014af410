package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"chamcong/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceFixture struct {
	tokens  *fakeTokenStore
	ledger  *fakeLedger
	clock   *fixedClock
	issuer  *TokenService
	service *AttendanceService
}

func newAttendanceFixture(now time.Time) *attendanceFixture {
	tokens := newFakeTokenStore()
	ledger := newFakeLedger()
	clock := &fixedClock{now: now}
	testLogger := logger.NewDefaultLogger(logger.ErrorLevel)
	return &attendanceFixture{
		tokens: tokens,
		ledger: ledger,
		clock:  clock,
		issuer: NewTokenService(TokenServiceOptions{
			Store:  tokens,
			Clock:  clock,
			Logger: testLogger,
		}),
		service: NewAttendanceService(AttendanceServiceOptions{
			Tokens: tokens,
			Ledger: ledger,
			Clock:  clock,
			Logger: testLogger,
		}),
	}
}

func TestRedeemSuccess(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 1, 0, 0, time.UTC))
	token, err := fx.issuer.IssueOrGetToday(context.Background(), 1, 99)
	require.NoError(t, err)

	outcome, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)

	assert.Equal(t, RedeemStatusSuccess, outcome.Status)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, uint(10), outcome.Record.EmployeeID)
	assert.Equal(t, "Nguyễn Văn A", outcome.Record.EmployeeName)
	assert.Equal(t, "2026-02-17", outcome.Record.Date)
	assert.Equal(t, token.Token, outcome.Record.TokenUsed)
	assert.Equal(t, fx.clock.Now(), outcome.Record.CheckInAt)

	count, err := fx.ledger.CountByDate(context.Background(), 1, "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedeemTwiceIsAlreadyCheckedIn(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 1, 0, 0, time.UTC))
	token, err := fx.issuer.IssueOrGetToday(context.Background(), 1, 99)
	require.NoError(t, err)

	first, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusSuccess, first.Status)

	// quét lại lúc 09:05 cùng ngày
	fx.clock.now = time.Date(2026, 2, 17, 9, 5, 0, 0, time.UTC)
	second, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusAlreadyCheckedIn, second.Status)
	assert.Nil(t, second.Record)

	count, err := fx.ledger.CountByDate(context.Background(), 1, "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedeemConcurrentSingleEmployee(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC))
	token, err := fx.issuer.IssueOrGetToday(context.Background(), 1, 99)
	require.NoError(t, err)

	const k = 16
	results := make([]RedeemStatus, k)
	var wg sync.WaitGroup
	wg.Add(k)
	for i := 0; i < k; i++ {
		go func(i int) {
			defer wg.Done()
			outcome, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, token.Token, fx.clock.Now())
			if assert.NoError(t, err) {
				results[i] = outcome.Status
			}
		}(i)
	}
	wg.Wait()

	successes := 0
	already := 0
	for _, status := range results {
		switch status {
		case RedeemStatusSuccess:
			successes++
		case RedeemStatusAlreadyCheckedIn:
			already++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, k-1, already)

	count, err := fx.ledger.CountByDate(context.Background(), 1, "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedeemUnknownToken(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC))

	outcome, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, "garbage", fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusInvalidToken, outcome.Status)
}

func TestRedeemWrongCompany(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC))
	tokenA, err := fx.issuer.IssueOrGetToday(context.Background(), 1, 99)
	require.NoError(t, err)

	// nhân viên công ty 2 quét mã của công ty 1
	outcome, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 2, tokenA.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusWrongCompany, outcome.Status)

	count, err := fx.ledger.CountByDate(context.Background(), 2, "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRedeemExpiredToken(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC))
	token, err := fx.issuer.IssueOrGetToday(context.Background(), 1, 99)
	require.NoError(t, err)

	// sang ngày hôm sau 00:00:01, token hôm qua phải báo hết hạn
	fx.clock.now = time.Date(2026, 2, 18, 0, 0, 1, 0, time.UTC)
	outcome, err := fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusTokenExpired, outcome.Status)
}

func TestRedeemInvalidInput(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC))

	_, err := fx.service.Redeem(context.Background(), 0, "Nguyễn Văn A", 1, "CC-1-x", fx.clock.Now())
	assert.Error(t, err)

	_, err = fx.service.Redeem(context.Background(), 10, "Nguyễn Văn A", 0, "CC-1-x", fx.clock.Now())
	assert.Error(t, err)
}

// TestRedeemFullDayScenario chạy trọn kịch bản một ngày điểm danh:
// phát hành mã, E1 quét thành công, E1 quét lại, E2 quét mã rác,
// sang ngày hôm sau mã cũ hết hạn.
func TestRedeemFullDayScenario(t *testing.T) {
	fx := newAttendanceFixture(time.Date(2026, 2, 17, 7, 30, 0, 0, time.UTC))
	ctx := context.Background()

	token, err := fx.issuer.IssueOrGetToday(ctx, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-17", token.Date)

	fx.clock.now = time.Date(2026, 2, 17, 9, 1, 0, 0, time.UTC)
	first, err := fx.service.Redeem(ctx, 10, "E1", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusSuccess, first.Status)

	fx.clock.now = time.Date(2026, 2, 17, 9, 5, 0, 0, time.UTC)
	again, err := fx.service.Redeem(ctx, 10, "E1", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusAlreadyCheckedIn, again.Status)

	garbage, err := fx.service.Redeem(ctx, 11, "E2", 1, "garbage", fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusInvalidToken, garbage.Status)

	fx.clock.now = time.Date(2026, 2, 18, 0, 0, 1, 0, time.UTC)
	expired, err := fx.service.Redeem(ctx, 11, "E2", 1, token.Token, fx.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, RedeemStatusTokenExpired, expired.Status)

	count, err := fx.ledger.CountByDate(ctx, 1, "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
