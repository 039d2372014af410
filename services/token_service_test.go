package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"chamcong/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(store TokenStore, clock Clock) *TokenService {
	return NewTokenService(TokenServiceOptions{
		Store:  store,
		Clock:  clock,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	})
}

func TestIssueOrGetTodayCreatesToken(t *testing.T) {
	store := newFakeTokenStore()
	clock := &fixedClock{now: time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)}
	service := newTestTokenService(store, clock)

	token, err := service.IssueOrGetToday(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, uint(1), token.CompanyID)
	assert.Equal(t, "2026-02-17", token.Date)
	assert.Equal(t, uint(42), token.IssuedBy)
	assert.True(t, token.Active)
	assert.True(t, strings.HasPrefix(token.Token, "CC-1-2026-02-17-"))
	assert.Equal(t, 23, token.ExpiresAt.Hour())
	assert.Equal(t, 1, store.count())
}

func TestIssueOrGetTodayIsIdempotent(t *testing.T) {
	store := newFakeTokenStore()
	clock := &fixedClock{now: time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)}
	service := newTestTokenService(store, clock)

	first, err := service.IssueOrGetToday(context.Background(), 1, 42)
	require.NoError(t, err)

	second, err := service.IssueOrGetToday(context.Background(), 1, 43)
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, first.IssuedBy, second.IssuedBy)
	assert.Equal(t, 1, store.count())
}

func TestIssueOrGetTodayConcurrent(t *testing.T) {
	store := newFakeTokenStore()
	clock := &fixedClock{now: time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC)}
	service := newTestTokenService(store, clock)

	const n = 16
	tokens := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			token, err := service.IssueOrGetToday(context.Background(), 1, uint(i+1))
			if assert.NoError(t, err) {
				tokens[i] = token.Token
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.count())
	for i := 1; i < n; i++ {
		assert.Equal(t, tokens[0], tokens[i])
	}
}

func TestIssueOrGetTodaySeparateCompanies(t *testing.T) {
	store := newFakeTokenStore()
	clock := &fixedClock{now: time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)}
	service := newTestTokenService(store, clock)

	tokenA, err := service.IssueOrGetToday(context.Background(), 1, 42)
	require.NoError(t, err)
	tokenB, err := service.IssueOrGetToday(context.Background(), 2, 43)
	require.NoError(t, err)

	assert.NotEqual(t, tokenA.Token, tokenB.Token)
	assert.Equal(t, 2, store.count())
}

func TestIssueOrGetTodayInvalidCompany(t *testing.T) {
	service := newTestTokenService(newFakeTokenStore(), &fixedClock{now: time.Now()})

	_, err := service.IssueOrGetToday(context.Background(), 0, 42)
	assert.Error(t, err)
}

func TestGetTodayDoesNotCreate(t *testing.T) {
	store := newFakeTokenStore()
	clock := &fixedClock{now: time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)}
	service := newTestTokenService(store, clock)

	token, err := service.GetToday(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, 0, store.count())

	issued, err := service.IssueOrGetToday(context.Background(), 1, 42)
	require.NoError(t, err)

	token, err = service.GetToday(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, issued.Token, token.Token)
}
