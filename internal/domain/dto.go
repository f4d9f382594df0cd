package domain

import "time"

// SyncSummary is the response body of a completed sync action
type SyncSummary struct {
	Success  bool `json:"success"`
	Total    int  `json:"total"`
	Ticketed int  `json:"ticketed"`
	Flown    int  `json:"flown"`
	Errors   int  `json:"errors"`
}

// DashboardFilter restricts which rows feed the dashboard metrics.
// An empty field means no restriction on that axis; date filtering only
// applies when both ends of the range are present.
type DashboardFilter struct {
	DateFrom    string `json:"dateFrom" validate:"omitempty,filterdate"`
	DateTo      string `json:"dateTo" validate:"omitempty,filterdate"`
	StageFilter string `json:"stageFilter" validate:"omitempty,oneof=all ticketed flown"`
}

// DashboardMetrics is the fixed set of aggregates shown on the dashboard.
// All monetary values are BRL rounded to cents at output time.
type DashboardMetrics struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TicketedRevenue float64 `json:"ticketedRevenue"`
	FlownRevenue    float64 `json:"flownRevenue"`
	RavRevenue      float64 `json:"ravRevenue"`
	FeesRevenue     float64 `json:"feesRevenue"`

	TotalInvestment  float64 `json:"totalInvestment"`
	MilesInvestment  float64 `json:"milesInvestment"`
	MilesIda         float64 `json:"milesIda"`
	MilesVolta       float64 `json:"milesVolta"`
	TotalAddServices float64 `json:"totalAddServices"`
	TotalFees        float64 `json:"totalFees"`
	TotalVolume      float64 `json:"totalVolume"`

	// Temporal commission metrics, computed over the full unfiltered row set
	// anchored to the Sao Paulo business day.
	TodayRav       float64 `json:"todayRav"`
	MonthRav       float64 `json:"monthRav"`
	DailyAvgRav    float64 `json:"dailyAvgRav"`
	ThreeDayAvgRav float64 `json:"threeDayAvgRav"`

	DealCount     int `json:"dealCount"`
	TicketedCount int `json:"ticketedCount"`
	FlownCount    int `json:"flownCount"`
}

// CurrencyBreakdown aggregates the filtered deals of one currency
type CurrencyBreakdown struct {
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	TotalBrl float64 `json:"totalBrl"`
}

// DealDTO is the presentation shape of a deal as consumed by the frontend
type DealDTO struct {
	ID             int64      `json:"id"`
	Title          *string    `json:"title"`
	Stage          DealStage  `json:"stage"`
	Currency       string     `json:"currency"`
	Amount         float64    `json:"amount"`
	AmountBrl      float64    `json:"amountBrl"`
	FeesBrl        *float64   `json:"feesBrl"`
	ExchangeRate   *float64   `json:"exchangeRate"`
	DealDate       *time.Time `json:"dealDate"`
	Departure      *string    `json:"departure"`
	Destination    *string    `json:"destination"`
	VolumeX1000    *float64   `json:"volumeX1000"`
	CpmBrl         *float64   `json:"cpmBrl"`
	ValorNota      *float64   `json:"valorNota"`
	NumeroNf       *float64   `json:"numeroNf"`
	AirlineIata    *string    `json:"airlineIata"`
	Pnr            *string    `json:"pnr"`
	IssuingPartner *string    `json:"issuingPartner"`
	SubtotalBrl    *float64   `json:"subtotalBrl"`
	DepartureDate  *time.Time `json:"departureDate"`
	HorarioSpIda   *string    `json:"horarioSpIda"`
	HorarioSpVolta *string    `json:"horarioSpVolta"`
	PaxName        *string    `json:"paxName"`
	NumPassengers  *float64   `json:"numPassengers"`

	VolumeRetourX1000     *float64 `json:"volumeRetourX1000"`
	Cpm2Brl               *float64 `json:"cpm2Brl"`
	FeesRetourBrl         *float64 `json:"feesRetourBrl"`
	AdditionalServicesBrl *float64 `json:"additionalServicesBrl"`
}

// DashboardResponse is the full dashboard action payload
type DashboardResponse struct {
	Metrics    DashboardMetrics             `json:"metrics"`
	ByCurrency map[string]CurrencyBreakdown `json:"byCurrency"`
	Deals      []DealDTO                    `json:"deals"`
}

// APIError is the fixed error envelope returned for every failure
type APIError struct {
	Error string `json:"error"`
}
