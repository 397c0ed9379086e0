package domain

// FeeSchedule is the supplier-independent price list for one session.
type FeeSchedule struct {
	Adult            float64            `json:"adult"`
	Child            float64            `json:"child"`
	Infant           float64            `json:"infant"`
	Pet              float64            `json:"petFee"`
	Vehicle          float64            `json:"vehicleFee"`
	Seat             float64            `json:"seatFee"`
	Insurance        float64            `json:"insuranceFee"`
	Currency         string             `json:"currency"`
	MethodSurcharges map[string]float64 `json:"methodSurcharges"`
}

// DefaultFees is the price list used for any field a provider leaves unset.
func DefaultFees() FeeSchedule {
	return FeeSchedule{
		Adult:            50,
		Child:            30,
		Infant:           0,
		Pet:              10,
		Vehicle:          20,
		Seat:             15,
		Insurance:        10,
		Currency:         "EUR",
		MethodSurcharges: map[string]float64{},
	}
}

// Surcharge returns the flat per-booking surcharge for a travel method code.
func (f FeeSchedule) Surcharge(method string) float64 {
	if method == "" {
		return 0
	}
	return f.MethodSurcharges[method]
}

type CabinOption struct {
	Label    string   `json:"label"`
	Capacity int      `json:"capacity"`
	Price    float64  `json:"price"`
	Features []string `json:"features,omitempty"`
}
