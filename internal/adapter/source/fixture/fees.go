package fixture

import "github.com/srgjo27/ferry_booking/internal/core/domain"

// feeDocument mirrors fees.json. Absent fields take the default price list.
type feeDocument struct {
	BaseAdult        *float64           `json:"baseAdult"`
	BaseChild        *float64           `json:"baseChild"`
	Infant           *float64           `json:"infant"`
	Pet              *float64           `json:"pet"`
	Vehicle          *float64           `json:"vehicle"`
	Seat             *float64           `json:"seat"`
	Insurance        *float64           `json:"insurance"`
	Currency         string             `json:"currency"`
	MethodSurcharges map[string]float64 `json:"methodSurcharges"`
}

func (d feeDocument) schedule() domain.FeeSchedule {
	f := domain.DefaultFees()

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Adult, d.BaseAdult)
	set(&f.Child, d.BaseChild)
	set(&f.Infant, d.Infant)
	set(&f.Pet, d.Pet)
	set(&f.Vehicle, d.Vehicle)
	set(&f.Seat, d.Seat)
	set(&f.Insurance, d.Insurance)

	if d.Currency != "" {
		f.Currency = d.Currency
	}
	for code, amount := range d.MethodSurcharges {
		f.MethodSurcharges[code] = amount
	}
	return f
}
