package domain

const (
	LineAdults   = "adults"
	LineChildren = "children"
	LineInfants  = "infants"
	LinePets     = "pets"
	LineVehicles = "vehicles"
	LineSeats    = "seats"

	SurchargeMethod    = "methodSurcharge"
	SurchargeInsurance = "insurance"
	SurchargeCabin     = "cabin"
)

type LineItem struct {
	Count     int     `json:"count"`
	UnitPrice float64 `json:"unitPrice"`
}

func (l LineItem) Amount() float64 {
	return float64(l.Count) * l.UnitPrice
}

// Breakdown itemizes a Quote: counted lines plus flat surcharges.
type Breakdown struct {
	Lines      map[string]LineItem `json:"lines"`
	Surcharges map[string]float64  `json:"surcharges"`
}

type Quote struct {
	Currency  string    `json:"currency"`
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// Clone returns a deep copy so derived quotes never share maps.
func (q Quote) Clone() Quote {
	out := Quote{
		Currency: q.Currency,
		Total:    q.Total,
		Breakdown: Breakdown{
			Lines:      make(map[string]LineItem, len(q.Breakdown.Lines)),
			Surcharges: make(map[string]float64, len(q.Breakdown.Surcharges)),
		},
	}
	for k, v := range q.Breakdown.Lines {
		out.Breakdown.Lines[k] = v
	}
	for k, v := range q.Breakdown.Surcharges {
		out.Breakdown.Surcharges[k] = v
	}
	return out
}

// Offer pairs a candidate sailing with its base-party quote.
type Offer struct {
	Sailing Sailing `json:"sailing"`
	Quote   Quote   `json:"price"`
}
