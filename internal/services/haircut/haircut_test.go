package haircut

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// MockRepo реализует интерфейс haircut.Repository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetShopByOwner(ctx context.Context, ownerUID string) (*models.Barbershop, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barbershop), args.Error(1)
}

func (m *MockRepo) GetBarber(ctx context.Context, shopID, barberID int64) (*models.Barber, error) {
	args := m.Called(ctx, shopID, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barber), args.Error(1)
}

func (m *MockRepo) CreateHaircut(ctx context.Context, haircut models.Haircut) (int64, error) {
	args := m.Called(ctx, haircut)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) ListHaircutsRange(ctx context.Context, shopID int64, from, to time.Time) ([]*models.Haircut, error) {
	args := m.Called(ctx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Haircut), args.Error(1)
}

func (m *MockRepo) CountBalance(ctx context.Context, shopID int64, from, to time.Time) (*models.BalanceStats, error) {
	args := m.Called(ctx, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BalanceStats), args.Error(1)
}

func (m *MockRepo) DeleteAllHaircuts(ctx context.Context, shopID int64) (int64, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCache реализует интерфейс haircut.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func relaxedCache() *MockCache {
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	cache.On("Invalidate", mock.Anything).Return(nil).Maybe()
	return cache
}

func TestCreate_BarberMustBelongToShop(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)
	repo.On("GetBarber", mock.Anything, int64(7), int64(99)).
		Return(nil, repository.ErrBarberNotFound)

	svc := New(repo, relaxedCache(), testLogger())
	_, err := svc.Create(context.Background(), "owner-1", models.CreateHaircutRequest{
		BarberID:      99,
		PaymentMethod: models.PaymentCash,
		Amount:        1500,
	})

	assert.ErrorIs(t, err, repository.ErrBarberNotFound)
	repo.AssertNotCalled(t, "CreateHaircut", mock.Anything, mock.Anything)
}

func TestCreate_InvalidatesBalanceCache(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)
	repo.On("GetBarber", mock.Anything, int64(7), int64(3)).
		Return(&models.Barber{ID: 3, ShopID: 7}, nil)
	repo.On("CreateHaircut", mock.Anything, mock.Anything).Return(int64(10), nil)

	cache := new(MockCache)
	cache.On("Invalidate", "balance:7:daily").Return(nil).Once()
	cache.On("Invalidate", "balance:7:monthly").Return(nil).Once()

	svc := New(repo, cache, testLogger())
	id, err := svc.Create(context.Background(), "owner-1", models.CreateHaircutRequest{
		BarberID:      3,
		PaymentMethod: models.PaymentYape,
		Amount:        2000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	cache.AssertExpectations(t)
}

func TestBalance_DailyWindow(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	want := &models.BalanceStats{TotalIncome: 3500, TotalCuts: 2, CashTotal: 1500, YapeTotal: 2000}
	repo.On("CountBalance", mock.Anything, int64(7), today, today.AddDate(0, 0, 1)).
		Return(want, nil)

	svc := New(repo, relaxedCache(), testLogger())
	stats, err := svc.Balance(context.Background(), "owner-1", PeriodDaily)

	require.NoError(t, err)
	assert.Equal(t, want, stats)
	repo.AssertExpectations(t)
}

func TestBalance_MonthlyWindowStartsAtFirstDay(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	repo.On("CountBalance", mock.Anything, int64(7), monthStart, today.AddDate(0, 0, 1)).
		Return(&models.BalanceStats{}, nil)

	svc := New(repo, relaxedCache(), testLogger())
	_, err := svc.Balance(context.Background(), "owner-1", PeriodMonthly)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBalance_UnknownPeriod(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)

	svc := New(repo, relaxedCache(), testLogger())
	_, err := svc.Balance(context.Background(), "owner-1", "weekly")

	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestBalance_ServedFromCache(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)

	cache := new(MockCache)
	cache.On("Get", "balance:7:daily", mock.Anything).Return(true, nil)

	svc := New(repo, cache, testLogger())
	_, err := svc.Balance(context.Background(), "owner-1", PeriodDaily)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "CountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteAll_ReturnsCount(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetShopByOwner", mock.Anything, "owner-1").
		Return(&models.Barbershop{ID: 7}, nil)
	repo.On("DeleteAllHaircuts", mock.Anything, int64(7)).Return(int64(13), nil)

	svc := New(repo, relaxedCache(), testLogger())
	count, err := svc.DeleteAll(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Equal(t, int64(13), count)
}
