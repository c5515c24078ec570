package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

type stubCatalogSource struct {
	securities []models.Security
	err        error
}

func (s *stubCatalogSource) FetchSecurities(ctx context.Context) ([]models.Security, error) {
	return s.securities, s.err
}

type memorySecurityStorage struct {
	records map[string]models.Security
}

func newMemorySecurityStorage() *memorySecurityStorage {
	return &memorySecurityStorage{records: map[string]models.Security{}}
}

func (m *memorySecurityStorage) UpsertSecurities(ctx context.Context, securities []models.Security) error {
	for _, sec := range securities {
		m.records[sec.Code] = sec
	}
	return nil
}

func (m *memorySecurityStorage) GetSecurity(ctx context.Context, code string) (*models.Security, error) {
	sec, ok := m.records[code]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &sec, nil
}

func (m *memorySecurityStorage) ListActive(ctx context.Context, limit int) ([]models.Security, error) {
	out := make([]models.Security, 0, len(m.records))
	for _, sec := range m.records {
		if sec.Active {
			out = append(out, sec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarketCap > out[j].MarketCap })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memorySecurityStorage) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

func seededService(t *testing.T) *Service {
	t.Helper()
	storage := newMemorySecurityStorage()
	err := storage.UpsertSecurities(context.Background(), []models.Security{
		{Code: "005930", Name: "삼성전자", Market: models.MarketKOSPI, Sector: "전기전자", MarketCap: 400_000_000_000_000, Active: true},
		{Code: "000660", Name: "SK하이닉스", Market: models.MarketKOSPI, Sector: "전기전자", MarketCap: 120_000_000_000_000, Active: true},
		{Code: "035720", Name: "카카오", Market: models.MarketKOSPI, Sector: "서비스업", MarketCap: 20_000_000_000_000, Active: true},
		{Code: "196170", Name: "알테오젠", Market: models.MarketKOSDAQ, Sector: "의료정밀", MarketCap: 15_000_000_000_000, Active: true},
		{Code: "999999", Name: "상장폐지사", Market: models.MarketKOSPI, MarketCap: 1, Active: false},
	})
	require.NoError(t, err)
	return NewService(nil, storage, nil, common.GetLogger())
}

func TestServiceSearchByCode(t *testing.T) {
	svc := seededService(t)

	got, err := svc.Search(context.Background(), "005930", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "삼성전자", got[0].Name)
}

func TestServiceSearchByNameSectorMarket(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	byName, err := svc.Search(ctx, "카카오", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "035720", byName[0].Code)

	bySector, err := svc.Search(ctx, "전기전자", 10)
	require.NoError(t, err)
	assert.Len(t, bySector, 2)

	byMarket, err := svc.Search(ctx, "kosdaq", 10)
	require.NoError(t, err)
	require.Len(t, byMarket, 1)
	assert.Equal(t, "알테오젠", byMarket[0].Name)
}

func TestServiceSearchEdgeCases(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	noHits, err := svc.Search(ctx, "없는회사", 10)
	require.NoError(t, err)
	assert.Empty(t, noHits)

	blank, err := svc.Search(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, blank)

	capped, err := svc.Search(ctx, "0", 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)

	delisted, err := svc.Search(ctx, "999999", 10)
	require.NoError(t, err)
	assert.Empty(t, delisted, "inactive securities are not searchable")
}

func TestServiceSuggest(t *testing.T) {
	svc := seededService(t)

	got, err := svc.Suggest(context.Background(), "삼성", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Code: "005930", Name: "삼성전자", Market: models.MarketKOSPI}, got[0])
}

func TestServiceTopByMarketCap(t *testing.T) {
	svc := seededService(t)

	got, err := svc.TopByMarketCap(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "005930", got[0].Code)
	assert.Equal(t, "000660", got[1].Code)
}

func TestServiceSync(t *testing.T) {
	storage := newMemorySecurityStorage()
	source := &stubCatalogSource{securities: []models.Security{
		{Code: "005930", Name: "삼성전자", Market: models.MarketKOSPI, Active: true},
	}}
	svc := NewService(source, storage, nil, common.GetLogger())

	require.NoError(t, svc.Sync(context.Background()))

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceSyncSourceError(t *testing.T) {
	source := &stubCatalogSource{err: errors.New("feed unavailable")}
	svc := NewService(source, newMemorySecurityStorage(), nil, common.GetLogger())

	err := svc.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unavailable")
}
