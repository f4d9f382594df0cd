package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDealReader struct {
	deals []domain.Deal
	err   error
}

func (f *fakeDealReader) ListAll(ctx context.Context) ([]domain.Deal, error) {
	return f.deals, f.err
}

func dealAt(id int64, stage domain.DealStage, currency string, amount, amountBrl float64, date time.Time) domain.Deal {
	d := date
	return domain.Deal{
		BitrixID:  id,
		Stage:     stage,
		Currency:  currency,
		Amount:    amount,
		AmountBrl: amountBrl,
		DealDate:  &d,
	}
}

func TestGetDashboard_RevenueAndCurrencyBreakdown(t *testing.T) {
	date := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeDealReader{deals: []domain.Deal{
		dealAt(1, domain.DealStageTicketed, "BRL", 1000, 1000, date),
		dealAt(2, domain.DealStageTicketed, "USD", 100, 580, date),
		dealAt(3, domain.DealStageFlown, "EUR", 50, 325, date),
	}}
	svc := service.NewDashboardService(repo, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1905.00, resp.Metrics.TotalRevenue)
	assert.Equal(t, 1580.00, resp.Metrics.TicketedRevenue)
	assert.Equal(t, 325.00, resp.Metrics.FlownRevenue)
	assert.Equal(t, 3, resp.Metrics.DealCount)
	assert.Equal(t, 2, resp.Metrics.TicketedCount)
	assert.Equal(t, 1, resp.Metrics.FlownCount)

	require.Len(t, resp.ByCurrency, 3)
	assert.Equal(t, domain.CurrencyBreakdown{Count: 1, Total: 100, TotalBrl: 580}, resp.ByCurrency["USD"])
	assert.Equal(t, domain.CurrencyBreakdown{Count: 1, Total: 1000, TotalBrl: 1000}, resp.ByCurrency["BRL"])

	require.Len(t, resp.Deals, 3)
	assert.Equal(t, int64(1), resp.Deals[0].ID)
}

func TestGetDashboard_InvestmentMetrics(t *testing.T) {
	date := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	deal := dealAt(1, domain.DealStageTicketed, "BRL", 500, 500, date)
	deal.VolumeX1000 = ptr(10)
	deal.CpmBrl = ptr(20)
	deal.VolumeRetourX1000 = ptr(5)
	deal.Cpm2Brl = ptr(30)
	deal.FeesBrl = ptr(40)
	deal.FeesRetourBrl = ptr(10)
	deal.AdditionalServicesBrl = ptr(25)
	deal.ValorNota = ptr(80)

	svc := service.NewDashboardService(&fakeDealReader{deals: []domain.Deal{deal}}, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)

	m := resp.Metrics
	assert.Equal(t, 200.00, m.MilesIda)        // 10 * 20
	assert.Equal(t, 150.00, m.MilesVolta)      // 5 * 30
	assert.Equal(t, 350.00, m.MilesInvestment) // ida + volta
	assert.Equal(t, 50.00, m.TotalFees)        // 40 + 10
	assert.Equal(t, 50.00, m.FeesRevenue)
	assert.Equal(t, 25.00, m.TotalAddServices)
	assert.Equal(t, 425.00, m.TotalInvestment) // miles + fees + services
	assert.Equal(t, 15.00, m.TotalVolume)      // 10 + 5
	assert.Equal(t, 80.00, m.RavRevenue)
}

func TestGetDashboard_DateRangeFilter(t *testing.T) {
	repo := &fakeDealReader{deals: []domain.Deal{
		dealAt(1, domain.DealStageTicketed, "BRL", 100, 100, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		dealAt(2, domain.DealStageTicketed, "BRL", 200, 200, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)),
		dealAt(3, domain.DealStageTicketed, "BRL", 400, 400, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc := service.NewDashboardService(repo, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{
		DateFrom: "2026-01-01",
		DateTo:   "2026-01-31",
	})
	require.NoError(t, err)

	// The "to" day is inclusive through its last millisecond
	assert.Equal(t, 300.00, resp.Metrics.TotalRevenue)
	assert.Equal(t, 2, resp.Metrics.DealCount)
}

func TestGetDashboard_DateFilterRequiresBothEnds(t *testing.T) {
	repo := &fakeDealReader{deals: []domain.Deal{
		dealAt(1, domain.DealStageTicketed, "BRL", 100, 100, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		dealAt(2, domain.DealStageTicketed, "BRL", 200, 200, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc := service.NewDashboardService(repo, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{DateFrom: "2026-01-01"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Metrics.DealCount)
}

func TestGetDashboard_DatelessRowsExcludedFromDateFilter(t *testing.T) {
	noDate := domain.Deal{BitrixID: 9, Stage: domain.DealStageTicketed, Currency: "BRL", Amount: 50, AmountBrl: 50}
	repo := &fakeDealReader{deals: []domain.Deal{
		noDate,
		dealAt(1, domain.DealStageTicketed, "BRL", 100, 100, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
	}}
	svc := service.NewDashboardService(repo, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{
		DateFrom: "2026-01-01",
		DateTo:   "2026-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Metrics.DealCount)
	assert.Equal(t, 100.00, resp.Metrics.TotalRevenue)
}

func TestGetDashboard_StageFilter(t *testing.T) {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeDealReader{deals: []domain.Deal{
		dealAt(1, domain.DealStageTicketed, "BRL", 100, 100, date),
		dealAt(2, domain.DealStageFlown, "BRL", 200, 200, date),
	}}
	svc := service.NewDashboardService(repo, zap.NewNop())

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{StageFilter: "flown"})
	require.NoError(t, err)
	assert.Equal(t, 200.00, resp.Metrics.TotalRevenue)
	assert.Equal(t, 1, resp.Metrics.DealCount)
	assert.Equal(t, 1, resp.ByCurrency["BRL"].Count)
	require.Len(t, resp.Deals, 1)

	all, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{StageFilter: "all"})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Metrics.DealCount)
}

func TestGetDashboard_TemporalRavMetrics(t *testing.T) {
	now := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC) // business day 2026-06-10

	mk := func(id int64, nota float64, date time.Time) domain.Deal {
		d := dealAt(id, domain.DealStageTicketed, "BRL", 0, 0, date)
		d.ValorNota = &nota
		return d
	}
	repo := &fakeDealReader{deals: []domain.Deal{
		mk(1, 100, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)), // today
		mk(2, 50, time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)),   // yesterday
		mk(3, 30, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)),   // this month
		mk(4, 200, time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)), // last month
	}}
	svc := service.NewDashboardService(repo, zap.NewNop()).
		WithClock(func() time.Time { return now })

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)

	m := resp.Metrics
	assert.Equal(t, 100.00, m.TodayRav)
	assert.Equal(t, 180.00, m.MonthRav)
	assert.Equal(t, 18.00, m.DailyAvgRav) // 180 / day 10
	assert.Equal(t, 50.00, m.ThreeDayAvgRav)
}

func TestGetDashboard_TemporalMetricsIgnoreFilter(t *testing.T) {
	now := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)

	d := dealAt(1, domain.DealStageTicketed, "BRL", 100, 100, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))
	d.ValorNota = ptr(100)
	svc := service.NewDashboardService(&fakeDealReader{deals: []domain.Deal{d}}, zap.NewNop()).
		WithClock(func() time.Time { return now })

	// A filter that excludes every row still leaves the temporal RAV intact
	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{
		DateFrom: "2020-01-01",
		DateTo:   "2020-12-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Metrics.DealCount)
	assert.Equal(t, 0.00, resp.Metrics.TotalRevenue)
	assert.Equal(t, 100.00, resp.Metrics.TodayRav)
}

func TestGetDashboard_BusinessDayShift(t *testing.T) {
	// 02:00 UTC is still the previous day on the GMT-3 business clock
	now := time.Date(2026, 6, 10, 2, 0, 0, 0, time.UTC)

	d := dealAt(1, domain.DealStageTicketed, "BRL", 0, 0, time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC))
	d.ValorNota = ptr(75)
	svc := service.NewDashboardService(&fakeDealReader{deals: []domain.Deal{d}}, zap.NewNop()).
		WithClock(func() time.Time { return now })

	resp, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)

	assert.Equal(t, 75.00, resp.Metrics.TodayRav)
	assert.Equal(t, 8.33, resp.Metrics.DailyAvgRav) // 75 / day 9, rounded to cents
}

func TestGetDashboard_RepositoryError(t *testing.T) {
	svc := service.NewDashboardService(&fakeDealReader{err: errors.New("connection refused")}, zap.NewNop())

	_, err := svc.GetDashboard(context.Background(), domain.DashboardFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load deals")
}
