package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"go.uber.org/zap"
)

// businessDayOffset approximates the Sao Paulo calendar day by shifting the
// wall clock three hours behind UTC. This intentionally ignores DST and the
// offset already carried by stored timestamps; replacing it with a real
// timezone lookup only requires changing businessNow.
const businessDayOffset = -3 * time.Hour

// DealReader is the slice of the deal repository the dashboard needs
type DealReader interface {
	ListAll(ctx context.Context) ([]domain.Deal, error)
}

// DashboardService computes the dashboard payload from persisted deals.
// It is read-only; the only failure mode is the underlying store read.
type DashboardService struct {
	repo   DealReader
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(repo DealReader, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the temporal-metrics clock. Test hook.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// GetDashboard loads all persisted rows, applies the date-range and stage
// filter, and computes the metric set. The temporal RAV metrics are always
// computed over the unfiltered row set.
func (s *DashboardService) GetDashboard(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardResponse, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	filtered := applyFilter(all, filter)

	var ticketed, flown []domain.Deal
	for _, d := range filtered {
		switch d.Stage {
		case domain.DealStageTicketed:
			ticketed = append(ticketed, d)
		case domain.DealStageFlown:
			flown = append(flown, d)
		}
	}

	totalFees := sumFees(filtered)
	milesIda := sumMilesIda(filtered)
	milesVolta := sumMilesVolta(filtered)
	milesInvestment := milesIda + milesVolta
	totalAddServices := sumOptional(filtered, func(d *domain.Deal) *float64 { return d.AdditionalServicesBrl })
	totalInvestment := milesInvestment + totalFees + totalAddServices

	totalVolume := sumOptional(filtered, func(d *domain.Deal) *float64 { return d.VolumeX1000 }) +
		sumOptional(filtered, func(d *domain.Deal) *float64 { return d.VolumeRetourX1000 })

	todayRav, monthRav, dailyAvgRav, threeDayAvgRav := s.temporalRavMetrics(all)

	metrics := domain.DashboardMetrics{
		TotalRevenue:    Round2(sumAmountBrl(filtered)),
		TicketedRevenue: Round2(sumAmountBrl(ticketed)),
		FlownRevenue:    Round2(sumAmountBrl(flown)),
		RavRevenue:      Round2(sumRav(filtered)),
		FeesRevenue:     Round2(totalFees),

		TotalInvestment:  Round2(totalInvestment),
		MilesInvestment:  Round2(milesInvestment),
		MilesIda:         Round2(milesIda),
		MilesVolta:       Round2(milesVolta),
		TotalAddServices: Round2(totalAddServices),
		TotalFees:        Round2(totalFees),
		TotalVolume:      Round2(totalVolume),

		TodayRav:       Round2(todayRav),
		MonthRav:       Round2(monthRav),
		DailyAvgRav:    Round2(dailyAvgRav),
		ThreeDayAvgRav: Round2(threeDayAvgRav),

		DealCount:     len(filtered),
		TicketedCount: len(ticketed),
		FlownCount:    len(flown),
	}

	return &domain.DashboardResponse{
		Metrics:    metrics,
		ByCurrency: currencyBreakdown(filtered),
		Deals:      projectDeals(filtered),
	}, nil
}

// applyFilter keeps rows whose effective date falls within [from, to@end-of-day]
// inclusive; the date filter only applies when both ends are present. The
// stage filter applies unless empty or the "all" sentinel.
func applyFilter(deals []domain.Deal, filter domain.DashboardFilter) []domain.Deal {
	filtered := deals

	from, okFrom := parseFilterDate(filter.DateFrom)
	to, okTo := parseFilterDate(filter.DateTo)
	if okFrom && okTo {
		// Inclusive through the last millisecond of the "to" day
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999_000_000, to.Location())

		kept := make([]domain.Deal, 0, len(filtered))
		for _, d := range filtered {
			ts := d.EffectiveDate()
			if ts == nil {
				continue
			}
			if !ts.Before(from) && !ts.After(end) {
				kept = append(kept, d)
			}
		}
		filtered = kept
	}

	if filter.StageFilter != "" && filter.StageFilter != "all" {
		stage := domain.DealStage(filter.StageFilter)
		kept := make([]domain.Deal, 0, len(filtered))
		for _, d := range filtered {
			if d.Stage == stage {
				kept = append(kept, d)
			}
		}
		filtered = kept
	}

	return filtered
}

func parseFilterDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// businessNow returns "now" on the approximated Sao Paulo business clock
func (s *DashboardService) businessNow() time.Time {
	return s.now().UTC().Add(businessDayOffset)
}

// temporalRavMetrics computes the commission metrics anchored to the business
// day: today's RAV, the current month's RAV, its per-day average, and the
// average over the closed 3-day window ending today (divided by 3 regardless
// of how many rows qualify).
func (s *DashboardService) temporalRavMetrics(all []domain.Deal) (todayRav, monthRav, dailyAvgRav, threeDayAvgRav float64) {
	now := s.businessNow()
	todayKey := dayKey(now)
	monthKey := now.Format("2006-01")

	last3 := map[string]bool{
		todayKey:                      true,
		dayKey(now.AddDate(0, 0, -1)): true,
		dayKey(now.AddDate(0, 0, -2)): true,
	}

	var threeDayRav float64
	for i := range all {
		d := &all[i]
		ts := d.EffectiveDate()
		if ts == nil {
			continue
		}
		key := dayKey(*ts)

		if key == todayKey {
			todayRav += optionalValue(d.ValorNota)
		}
		if ts.UTC().Format("2006-01") == monthKey {
			monthRav += optionalValue(d.ValorNota)
		}
		if last3[key] {
			threeDayRav += optionalValue(d.ValorNota)
		}
	}

	if day := now.Day(); day > 0 {
		dailyAvgRav = monthRav / float64(day)
	}
	threeDayAvgRav = threeDayRav / 3

	return todayRav, monthRav, dailyAvgRav, threeDayAvgRav
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func currencyBreakdown(deals []domain.Deal) map[string]domain.CurrencyBreakdown {
	result := make(map[string]domain.CurrencyBreakdown)
	for i := range deals {
		d := &deals[i]
		code := d.Currency
		if code == "" {
			code = "BRL"
		}
		entry := result[code]
		entry.Count++
		entry.Total += d.Amount
		entry.TotalBrl += d.AmountBrl
		result[code] = entry
	}
	return result
}

// projectDeals maps storage rows into the presentation shape, field by field
func projectDeals(deals []domain.Deal) []domain.DealDTO {
	dtos := make([]domain.DealDTO, len(deals))
	for i := range deals {
		d := &deals[i]
		dtos[i] = domain.DealDTO{
			ID:             d.BitrixID,
			Title:          d.Title,
			Stage:          d.Stage,
			Currency:       d.Currency,
			Amount:         d.Amount,
			AmountBrl:      d.AmountBrl,
			FeesBrl:        d.FeesBrl,
			ExchangeRate:   d.ExchangeRate,
			DealDate:       d.DealDate,
			Departure:      d.Departure,
			Destination:    d.Destination,
			VolumeX1000:    d.VolumeX1000,
			CpmBrl:         d.CpmBrl,
			ValorNota:      d.ValorNota,
			NumeroNf:       d.NumeroNf,
			AirlineIata:    d.AirlineIata,
			Pnr:            d.Pnr,
			IssuingPartner: d.IssuingPartner,
			SubtotalBrl:    d.SubtotalBrl,
			DepartureDate:  d.DepartureDate,
			HorarioSpIda:   d.HorarioSpIda,
			HorarioSpVolta: d.HorarioSpVolta,
			PaxName:        d.PaxName,
			NumPassengers:  d.NumPassengers,

			VolumeRetourX1000:     d.VolumeRetourX1000,
			Cpm2Brl:               d.Cpm2Brl,
			FeesRetourBrl:         d.FeesRetourBrl,
			AdditionalServicesBrl: d.AdditionalServicesBrl,
		}
	}
	return dtos
}

func optionalValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func sumAmountBrl(deals []domain.Deal) float64 {
	var sum float64
	for i := range deals {
		sum += deals[i].AmountBrl
	}
	return sum
}

func sumRav(deals []domain.Deal) float64 {
	return sumOptional(deals, func(d *domain.Deal) *float64 { return d.ValorNota })
}

func sumFees(deals []domain.Deal) float64 {
	var sum float64
	for i := range deals {
		sum += optionalValue(deals[i].FeesBrl) + optionalValue(deals[i].FeesRetourBrl)
	}
	return sum
}

func sumMilesIda(deals []domain.Deal) float64 {
	var sum float64
	for i := range deals {
		sum += optionalValue(deals[i].VolumeX1000) * optionalValue(deals[i].CpmBrl)
	}
	return sum
}

func sumMilesVolta(deals []domain.Deal) float64 {
	var sum float64
	for i := range deals {
		sum += optionalValue(deals[i].VolumeRetourX1000) * optionalValue(deals[i].Cpm2Brl)
	}
	return sum
}

func sumOptional(deals []domain.Deal, field func(*domain.Deal) *float64) float64 {
	var sum float64
	for i := range deals {
		sum += optionalValue(field(&deals[i]))
	}
	return sum
}
