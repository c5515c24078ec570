package disclosures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

type stubSource struct {
	filings []models.RawFiling
	err     error
	calls   int
}

func (s *stubSource) FetchFilings(ctx context.Context, since time.Time, pageSize int) ([]models.RawFiling, error) {
	s.calls++
	return s.filings, s.err
}

type memoryKV struct {
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value, description string) error {
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	if _, ok := m.data[key]; !ok {
		return interfaces.ErrKeyNotFound
	}
	delete(m.data, key)
	return nil
}

func TestServiceProcess(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService(nil, nil, common.GetLogger()).WithClock(func() time.Time { return now })

	raw := []models.RawFiling{
		{ID: "r1", SecurityCode: "005930", CompanyName: "삼성전자", Title: "분기보고서 (2025.03)", SubmittedRaw: "20250514", Remark: "유"},
		{ID: "r2", SecurityCode: "000660", CompanyName: "SK하이닉스", Title: "주요사항보고서(유상증자결정)", SubmittedRaw: "2025-06-10", Remark: "신주 발행 결정"},
		{ID: "r3", CompanyName: "옛날회사", Title: "사업보고서", SubmittedRaw: "20150101"}, // too old
		{ID: "r4", CompanyName: "고장회사", Title: "공정공시", SubmittedRaw: "not-a-date"},
	}

	got := svc.Process(raw)
	require.Len(t, got, 2)

	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, models.CategoryQuarterly, got[0].Category)
	assert.Equal(t, "", got[0].Summary, "pure market-code remark should be blanked")
	assert.Equal(t, time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC), got[0].SubmittedAt)

	assert.Equal(t, "r2", got[1].ID)
	assert.Equal(t, models.CategoryMaterial, got[1].Category)
	assert.Equal(t, "신주 발행 결정", got[1].Summary)
}

func TestServiceFetchRecentCaching(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	source := &stubSource{filings: []models.RawFiling{
		{ID: "r1", CompanyName: "삼성전자", Title: "분기보고서", SubmittedRaw: "20250601"},
	}}
	kv := newMemoryKV()
	svc := NewService(source, kv, common.GetLogger()).
		WithCacheTTL(5 * time.Minute).
		WithClock(clock)

	first, err := svc.FetchRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, source.calls)

	// Inside the TTL the source is not called again.
	second, err := svc.FetchRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)

	// Past the TTL the batch is refetched.
	now = now.Add(6 * time.Minute)
	_, err = svc.FetchRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestServiceFetchRecentRefreshInvalidatesCache(t *testing.T) {
	source := &stubSource{}
	kv := newMemoryKV()
	svc := NewService(source, kv, common.GetLogger())

	_, err := svc.FetchRecent(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	require.NoError(t, svc.Refresh(context.Background()))

	_, err = svc.FetchRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestServiceFetchRecentSourceError(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	svc := NewService(source, nil, common.GetLogger())

	_, err := svc.FetchRecent(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}
