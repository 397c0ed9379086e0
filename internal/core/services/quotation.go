package services

import (
	"fmt"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
)

// QuoteSailing prices one sailing for a party and travel method. It is pure:
// identical inputs always yield an identical Quote. Fares are
// supplier-independent, so the sailing only identifies what is priced.
func QuoteSailing(sailing domain.Sailing, party domain.PartyComposition, method string, fees domain.FeeSchedule) (domain.Quote, error) {
	if err := party.Validate(); err != nil {
		return domain.Quote{}, err
	}

	c := party.Classify()

	lines := map[string]domain.LineItem{
		domain.LineAdults:   {Count: c.Adults, UnitPrice: fees.Adult},
		domain.LineChildren: {Count: c.Children, UnitPrice: fees.Child},
		domain.LineInfants:  {Count: c.Infants, UnitPrice: fees.Infant},
		domain.LinePets:     {Count: party.Pets, UnitPrice: fees.Pet},
		domain.LineVehicles: {Count: party.Vehicles, UnitPrice: fees.Vehicle},
	}

	var subtotal float64
	for _, key := range []string{domain.LineAdults, domain.LineChildren, domain.LineInfants, domain.LinePets, domain.LineVehicles} {
		subtotal += lines[key].Amount()
	}

	surcharge := fees.Surcharge(method)

	return domain.Quote{
		Currency: fees.Currency,
		Total:    subtotal + surcharge,
		Breakdown: domain.Breakdown{
			Lines:      lines,
			Surcharges: map[string]float64{domain.SurchargeMethod: surcharge},
		},
	}, nil
}

// ApplyExtras layers cabins, seats and insurance on a base quote and returns a
// new Quote. The base is left untouched.
func ApplyExtras(base domain.Quote, extras domain.Extras, fees domain.FeeSchedule) (domain.Quote, error) {
	if extras.SeatCount < 0 {
		return domain.Quote{}, domain.InvalidInputError{Field: "seatCount", Msg: fmt.Sprintf("must not be negative, got %d", extras.SeatCount)}
	}

	q := base.Clone()

	for i, cabin := range extras.Cabins {
		q.Breakdown.Surcharges[cabinKey(i, cabin)] = cabin.Price
		q.Total += cabin.Price
	}

	if extras.SeatCount > 0 {
		seats := domain.LineItem{Count: extras.SeatCount, UnitPrice: fees.Seat}
		q.Breakdown.Lines[domain.LineSeats] = seats
		q.Total += seats.Amount()
	}

	if extras.Insurance == domain.InsuranceYes {
		q.Breakdown.Surcharges[domain.SurchargeInsurance] = fees.Insurance
		q.Total += fees.Insurance
	}

	return q, nil
}

// PriceDraft derives the running total of a draft from its base quote and
// current extras.
func PriceDraft(draft *domain.BookingDraft, fees domain.FeeSchedule) (domain.Quote, error) {
	return ApplyExtras(draft.BaseQuote, draft.Extras(), fees)
}

func cabinKey(i int, cabin domain.CabinOption) string {
	if cabin.Label == "" {
		return fmt.Sprintf("%s_%d", domain.SurchargeCabin, i+1)
	}
	return fmt.Sprintf("%s_%d:%s", domain.SurchargeCabin, i+1, cabin.Label)
}
