package domain

import (
	"time"

	"github.com/google/uuid"
)

// DealStage represents the pipeline stage a deal was synced from
type DealStage string

const (
	// DealStageTicketed are deals whose tickets have been issued
	DealStageTicketed DealStage = "ticketed"
	// DealStageFlown are deals whose travel has been completed (Bitrix WON)
	DealStageFlown DealStage = "flown"
)

// Deal is the canonical, persisted form of a Bitrix deal record.
// BitrixID is the external identity and the upsert conflict key: re-syncing
// the same deal fully overwrites the row (last write wins). AmountBrl is a
// cached derivation of Amount/Currency/ExchangeRate, rounded to cents.
type Deal struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BitrixID int64     `gorm:"not null;uniqueIndex;column:bitrix_id" json:"bitrixId"`
	Title    *string   `gorm:"type:varchar(500)" json:"title"`
	Stage    DealStage `gorm:"type:varchar(20);not null;index" json:"stage"`

	Currency     string   `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	Amount       float64  `gorm:"not null;default:0" json:"amount"`
	ExchangeRate *float64 `gorm:"column:exchange_rate" json:"exchangeRate"`
	AmountBrl    float64  `gorm:"not null;default:0;column:amount_brl" json:"amountBrl"`

	FeesBrl               *float64 `gorm:"column:fees_brl" json:"feesBrl"`
	FeesRetourBrl         *float64 `gorm:"column:fees_retour_brl" json:"feesRetourBrl"`
	AdditionalServicesBrl *float64 `gorm:"column:additional_services_brl" json:"additionalServicesBrl"`
	SubtotalBrl           *float64 `gorm:"column:subtotal_brl" json:"subtotalBrl"`
	ValorNota             *float64 `gorm:"column:valor_nota" json:"valorNota"`
	NumeroNf              *float64 `gorm:"column:numero_nf" json:"numeroNf"`

	// Miles investment inputs: traded volume in thousands and cost-per-mille,
	// for the outbound leg and the return leg.
	VolumeX1000       *float64 `gorm:"column:volume_x1000" json:"volumeX1000"`
	VolumeRetourX1000 *float64 `gorm:"column:volume_retour_x1000" json:"volumeRetourX1000"`
	CpmBrl            *float64 `gorm:"column:cpm_brl" json:"cpmBrl"`
	Cpm2Brl           *float64 `gorm:"column:cpm_2_brl" json:"cpm2Brl"`

	DealDate      *time.Time `gorm:"column:deal_date;index" json:"dealDate"`
	DateCreate    *time.Time `gorm:"column:created_at" json:"createdAt"`
	DepartureDate *time.Time `gorm:"column:departure_date" json:"departureDate"`

	Departure      *string `gorm:"type:varchar(200)" json:"departure"`
	Destination    *string `gorm:"type:varchar(200)" json:"destination"`
	AirlineIata    *string `gorm:"type:varchar(10);column:airline_iata" json:"airlineIata"`
	Pnr            *string `gorm:"type:varchar(50)" json:"pnr"`
	IssuingPartner *string `gorm:"type:varchar(100);column:issuing_partner" json:"issuingPartner"`
	PaxName        *string `gorm:"type:varchar(200);column:pax_name" json:"paxName"`
	HorarioSpIda   *string `gorm:"type:varchar(100);column:horario_sp_ida" json:"horarioSpIda"`
	HorarioSpVolta *string `gorm:"type:varchar(100);column:horario_sp_volta" json:"horarioSpVolta"`
	NumPassengers  *float64 `gorm:"column:num_passengers" json:"numPassengers"`

	ContactID *int64 `gorm:"column:contact_id" json:"contactId"`

	SyncedAt time.Time `gorm:"not null;column:synced_at" json:"syncedAt"`
}

// EffectiveDate returns the date used for all time-based filtering:
// the deal date when present, otherwise the Bitrix creation date.
func (d *Deal) EffectiveDate() *time.Time {
	if d.DealDate != nil {
		return d.DealDate
	}
	return d.DateCreate
}
