package bitrix

// ListResponse is the envelope of Bitrix list methods: a page of results plus
// an optional cursor into the next page.
type ListResponse[T any] struct {
	Result []T  `json:"result"`
	Next   *int `json:"next,omitempty"`
	Total  *int `json:"total,omitempty"`
}

// User field codes of the Expatur deal pipeline. Bitrix names custom fields
// by creation timestamp, so the codes are opaque; the comments carry the
// labels shown in the portal.
const (
	FieldDeparture          = "UF_CRM_1756992493574" // DEPARTURE (1)
	FieldDestination        = "UF_CRM_1756992747627" // DESTINATION (1)
	FieldFeesBrl            = "UF_CRM_1757190455496" // Fees (R$)
	FieldExchangeRate       = "UF_CRM_1757338964489" // CAMBIO PARA BRL (R$)
	FieldVolumeX1000        = "UF_CRM_1757190314483" // Volume (x1000)
	FieldCpmBrl             = "UF_CRM_1757190328531" // C.P.M (R$)
	FieldValorNota          = "UF_CRM_1757192894574" // VALOR DA NOTA (R$)
	FieldNumeroNf           = "UF_CRM_1757192916639" // NUMERO N.F
	FieldAirlineIata        = "UF_CRM_1757195905762" // Airline (IATA CODE)
	FieldPnr                = "UF_CRM_1757086906365" // PNR
	FieldIssuingPartner     = "UF_CRM_1764259589338" // ISSUING PARTNER 1 (enum)
	FieldSubtotalBrl        = "UF_CRM_1763603095809" // F. SUBTOTAL (R$)
	FieldDepartureDate      = "UF_CRM_1756994205699" // DATE OF DEPARTURE (1)
	FieldHorarioSpIda       = "UF_CRM_1765324058"    // HORARIO SP / DEP IDA
	FieldHorarioSpVolta     = "UF_CRM_1765888934348" // HORARIO SP / VOLTA
	FieldPaxName            = "UF_CRM_1762867470569" // PAX
	FieldNumPassengers      = "UF_CRM_1762867504476" // Number of passengers
	FieldVolumeRetourX1000  = "UF_CRM_1758643702390" // Volume retour (x1000)
	FieldCpm2Brl            = "UF_CRM_1763584871346" // c.p.m 2
	FieldFeesRetourBrl      = "UF_CRM_1758643738446" // Fees retour (R$)
	FieldAdditionalServices = "UF_CRM_1757190378686" // Additional services/options
)

// SelectFields is the field-selection list sent with every deal listing.
// Only these fields cross the ingestion boundary; anything else Bitrix might
// return is ignored.
var SelectFields = []string{
	"ID", "TITLE", "STAGE_ID",
	"CURRENCY_ID", "OPPORTUNITY",
	"MOVED_TIME", "DATE_CREATE",
	"CONTACT_ID",
	FieldDeparture,
	FieldDestination,
	FieldFeesBrl,
	FieldExchangeRate,
	FieldVolumeX1000,
	FieldCpmBrl,
	FieldValorNota,
	FieldNumeroNf,
	FieldAirlineIata,
	FieldPnr,
	FieldIssuingPartner,
	FieldSubtotalBrl,
	FieldDepartureDate,
	FieldHorarioSpIda,
	FieldHorarioSpVolta,
	FieldPaxName,
	FieldNumPassengers,
	FieldVolumeRetourX1000,
	FieldCpm2Brl,
	FieldFeesRetourBrl,
	FieldAdditionalServices,
}

// Deal is one raw deal record as Bitrix returns it. Core fields are strings
// (Bitrix serializes everything as strings); user fields are left untyped
// because empty values arrive as null or false and filled values as strings
// or numbers depending on field type. The normalizer owns the coercion.
type Deal struct {
	ID          string `json:"ID"`
	Title       string `json:"TITLE"`
	StageID     string `json:"STAGE_ID"`
	CurrencyID  string `json:"CURRENCY_ID"`
	Opportunity any    `json:"OPPORTUNITY"`
	MovedTime   string `json:"MOVED_TIME"`
	DateCreate  string `json:"DATE_CREATE"`
	ContactID   any    `json:"CONTACT_ID"`

	Departure          any `json:"UF_CRM_1756992493574"`
	Destination        any `json:"UF_CRM_1756992747627"`
	FeesBrl            any `json:"UF_CRM_1757190455496"`
	ExchangeRate       any `json:"UF_CRM_1757338964489"`
	VolumeX1000        any `json:"UF_CRM_1757190314483"`
	CpmBrl             any `json:"UF_CRM_1757190328531"`
	ValorNota          any `json:"UF_CRM_1757192894574"`
	NumeroNf           any `json:"UF_CRM_1757192916639"`
	AirlineIata        any `json:"UF_CRM_1757195905762"`
	Pnr                any `json:"UF_CRM_1757086906365"`
	IssuingPartner     any `json:"UF_CRM_1764259589338"`
	SubtotalBrl        any `json:"UF_CRM_1763603095809"`
	DepartureDate      any `json:"UF_CRM_1756994205699"`
	HorarioSpIda       any `json:"UF_CRM_1765324058"`
	HorarioSpVolta     any `json:"UF_CRM_1765888934348"`
	PaxName            any `json:"UF_CRM_1762867470569"`
	NumPassengers      any `json:"UF_CRM_1762867504476"`
	VolumeRetourX1000  any `json:"UF_CRM_1758643702390"`
	Cpm2Brl            any `json:"UF_CRM_1763584871346"`
	FeesRetourBrl      any `json:"UF_CRM_1758643738446"`
	AdditionalServices any `json:"UF_CRM_1757190378686"`
}
