package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/bitrix"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
)

// Normalizer maps raw Bitrix deal records into canonical rows. It is a pure
// component: the conversion tables are injected at construction and the only
// side effect is reading the clock for the sync stamp.
type Normalizer struct {
	baseCurrency    string
	fallbackRates   map[string]float64
	issuingPartners map[string]string
	now             func() time.Time
}

// NewNormalizer builds a normalizer from the exchange configuration
func NewNormalizer(cfg *config.ExchangeConfig) *Normalizer {
	base := cfg.BaseCurrency
	if base == "" {
		base = "BRL"
	}

	rates := make(map[string]float64, len(cfg.FallbackRates))
	for code, rate := range cfg.FallbackRates {
		rates[strings.ToUpper(code)] = rate
	}

	partners := make(map[string]string, len(cfg.IssuingPartners))
	for id, label := range cfg.IssuingPartners {
		partners[id] = label
	}

	return &Normalizer{
		baseCurrency:    base,
		fallbackRates:   rates,
		issuingPartners: partners,
		now:             time.Now,
	}
}

// WithClock overrides the sync-timestamp clock. Test hook.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize converts one raw deal into its canonical row. The stage label is
// passed in because each fetch is already scoped to a single stage code.
// Normalize never fails: malformed values degrade to absent fields.
func (n *Normalizer) Normalize(raw bitrix.Deal, stage domain.DealStage) domain.Deal {
	amount := 0.0
	if v := ParseOptionalNumber(raw.Opportunity); v != nil {
		amount = *v
	}

	currency := strings.ToUpper(raw.CurrencyID)
	if currency == "" {
		currency = n.baseCurrency
	}

	exchangeRate := ParseOptionalNumber(raw.ExchangeRate)

	bitrixID, _ := strconv.ParseInt(raw.ID, 10, 64)

	return domain.Deal{
		BitrixID:     bitrixID,
		Title:        optionalString(raw.Title),
		Stage:        stage,
		Currency:     currency,
		Amount:       amount,
		ExchangeRate: exchangeRate,
		AmountBrl:    Round2(n.CalcBRL(amount, currency, exchangeRate)),

		FeesBrl:               ParseOptionalNumber(raw.FeesBrl),
		FeesRetourBrl:         ParseOptionalNumber(raw.FeesRetourBrl),
		AdditionalServicesBrl: ParseOptionalNumber(raw.AdditionalServices),
		SubtotalBrl:           ParseOptionalNumber(raw.SubtotalBrl),
		ValorNota:             ParseOptionalNumber(raw.ValorNota),
		NumeroNf:              ParseOptionalNumber(raw.NumeroNf),

		VolumeX1000:       ParseOptionalNumber(raw.VolumeX1000),
		VolumeRetourX1000: ParseOptionalNumber(raw.VolumeRetourX1000),
		CpmBrl:            ParseOptionalNumber(raw.CpmBrl),
		Cpm2Brl:           ParseOptionalNumber(raw.Cpm2Brl),

		DealDate:      parseOptionalTime(raw.MovedTime),
		DateCreate:    parseOptionalTime(raw.DateCreate),
		DepartureDate: parseOptionalTimeAny(raw.DepartureDate),

		Departure:      ParseOptionalString(raw.Departure),
		Destination:    ParseOptionalString(raw.Destination),
		AirlineIata:    ParseOptionalString(raw.AirlineIata),
		Pnr:            ParseOptionalString(raw.Pnr),
		IssuingPartner: n.resolveIssuingPartner(raw.IssuingPartner),
		PaxName:        ParseOptionalString(raw.PaxName),
		HorarioSpIda:   ParseOptionalString(raw.HorarioSpIda),
		HorarioSpVolta: ParseOptionalString(raw.HorarioSpVolta),
		NumPassengers:  ParseOptionalNumber(raw.NumPassengers),

		ContactID: parseOptionalInt(raw.ContactID),

		SyncedAt: n.now(),
	}
}

// CalcBRL resolves an original-currency amount into the base currency:
// base-currency amounts pass through, a positive per-deal exchange rate wins
// over the static table, and a currency with neither rate is treated as
// already converted (multiplier 1). The caller rounds.
func (n *Normalizer) CalcBRL(amount float64, currency string, exchangeRate *float64) float64 {
	if currency == n.baseCurrency {
		return amount
	}
	if exchangeRate != nil && *exchangeRate > 0 {
		return amount * *exchangeRate
	}
	if rate, ok := n.fallbackRates[currency]; ok {
		return amount * rate
	}
	return amount
}

func (n *Normalizer) resolveIssuingPartner(value any) *string {
	raw := ParseOptionalString(value)
	if raw == nil {
		return nil
	}
	if label, ok := n.issuingPartners[*raw]; ok {
		return &label
	}
	// Unknown enum IDs pass through in raw form rather than being dropped
	return raw
}

// ParseOptionalNumber coerces an untyped CRM value into an optional float.
// nil, empty string, false and unparseable values are absent; it never fails.
func ParseOptionalNumber(value any) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case bool:
		// Bitrix sends false for empty user fields
		return nil
	case string:
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// ParseOptionalString coerces an untyped CRM value into an optional string.
// nil, empty string and false are absent; numbers keep their decimal form.
func ParseOptionalString(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return &v
	case bool:
		return nil
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

func parseOptionalInt(value any) *int64 {
	f := ParseOptionalNumber(value)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// parseOptionalTime parses a Bitrix timestamp (ISO-8601 with offset, or a
// bare date). Unparseable input degrades to absent, like malformed numerics.
func parseOptionalTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func parseOptionalTimeAny(value any) *time.Time {
	s := ParseOptionalString(value)
	if s == nil {
		return nil
	}
	return parseOptionalTime(*s)
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Round2 rounds to cents, half away from zero
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
