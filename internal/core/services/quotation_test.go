package services_test

import (
	"testing"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caenPortsmouth = domain.Sailing{
	SailingID:       "BFT-20251020-001",
	SupplierID:      "BFT",
	DepartPort:      "CAEN",
	ArrivePort:      "PORS",
	DepartTime:      "2025-10-20T08:30:00+02:00",
	ArriveTime:      "2025-10-20T11:00:00+02:00",
	Vessel:          "Blue Star 3",
	DurationMinutes: 150,
}

func fullFees() domain.FeeSchedule {
	return domain.FeeSchedule{
		Adult:     50,
		Child:     30,
		Infant:    5,
		Pet:       10,
		Vehicle:   20,
		Seat:      15,
		Insurance: 10,
		Currency:  "EUR",
		MethodSurcharges: map[string]float64{
			"CAR": 0,
			"HCR": 12.5,
		},
	}
}

func TestQuoteSailing_TwoAdultsOneVehicle(t *testing.T) {
	fees := domain.FeeSchedule{Adult: 50, Vehicle: 20, Currency: "EUR"}
	party := domain.PartyComposition{Adults: 2, Vehicles: 1}

	q, err := services.QuoteSailing(caenPortsmouth, party, "", fees)

	require.NoError(t, err)
	assert.Equal(t, 120.0, q.Total)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, domain.LineItem{Count: 2, UnitPrice: 50}, q.Breakdown.Lines[domain.LineAdults])
	assert.Equal(t, domain.LineItem{Count: 1, UnitPrice: 20}, q.Breakdown.Lines[domain.LineVehicles])
	assert.Equal(t, 0.0, q.Breakdown.Surcharges[domain.SurchargeMethod])
}

func TestQuoteSailing_ChildAgesDeriveCounts(t *testing.T) {
	party := domain.PartyComposition{Adults: 1, Children: 9, ChildAges: []int{1, 5, 13}}

	q, err := services.QuoteSailing(caenPortsmouth, party, "", fullFees())

	require.NoError(t, err)
	assert.Equal(t, 2, q.Breakdown.Lines[domain.LineAdults].Count)
	assert.Equal(t, 1, q.Breakdown.Lines[domain.LineChildren].Count)
	assert.Equal(t, 1, q.Breakdown.Lines[domain.LineInfants].Count)
	assert.Equal(t, 2*50.0+30+5, q.Total)
}

func TestQuoteSailing_LinearSumAndIdempotent(t *testing.T) {
	fees := fullFees()

	for adults := 0; adults <= 3; adults++ {
		for children := 0; children <= 3; children++ {
			for pets := 0; pets <= 2; pets++ {
				for vehicles := 0; vehicles <= 2; vehicles++ {
					party := domain.PartyComposition{Adults: adults, Children: children, Pets: pets, Vehicles: vehicles}
					want := float64(adults)*fees.Adult + float64(children)*fees.Child +
						float64(pets)*fees.Pet + float64(vehicles)*fees.Vehicle

					first, err := services.QuoteSailing(caenPortsmouth, party, "", fees)
					require.NoError(t, err)
					second, err := services.QuoteSailing(caenPortsmouth, party, "", fees)
					require.NoError(t, err)

					assert.Equal(t, want, first.Total)
					assert.Equal(t, first, second)
				}
			}
		}
	}
}

func TestQuoteSailing_InfantsFromAges(t *testing.T) {
	fees := fullFees()
	party := domain.PartyComposition{Adults: 1, ChildAges: []int{0, 1}}

	q, err := services.QuoteSailing(caenPortsmouth, party, "", fees)

	require.NoError(t, err)
	assert.Equal(t, fees.Adult+2*fees.Infant, q.Total)
}

func TestQuoteSailing_MethodSurchargeOncePerBooking(t *testing.T) {
	party := domain.PartyComposition{Adults: 3}

	q, err := services.QuoteSailing(caenPortsmouth, party, "HCR", fullFees())

	require.NoError(t, err)
	assert.Equal(t, 3*50.0+12.5, q.Total)
	assert.Equal(t, 12.5, q.Breakdown.Surcharges[domain.SurchargeMethod])
}

func TestQuoteSailing_UnknownMethodHasNoSurcharge(t *testing.T) {
	q, err := services.QuoteSailing(caenPortsmouth, domain.PartyComposition{Adults: 1}, "BUS", fullFees())

	require.NoError(t, err)
	assert.Equal(t, 50.0, q.Total)
}

func TestQuoteSailing_ZeroTravellers(t *testing.T) {
	q, err := services.QuoteSailing(caenPortsmouth, domain.PartyComposition{}, "", fullFees())

	require.NoError(t, err)
	assert.Zero(t, q.Total)
}

func TestQuoteSailing_RejectsMalformedParty(t *testing.T) {
	cases := map[string]domain.PartyComposition{
		"negative adults":   {Adults: -1},
		"negative children": {Children: -2},
		"negative pets":     {Pets: -1},
		"negative vehicles": {Vehicles: -1},
		"age too high":      {Adults: 1, ChildAges: []int{4, 18}},
		"negative age":      {Adults: 1, ChildAges: []int{-1}},
	}

	for name, party := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := services.QuoteSailing(caenPortsmouth, party, "", fullFees())

			assert.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err), "expected invalid input, got %v", err)
		})
	}
}

func TestApplyExtras_CabinsSeatsInsurance(t *testing.T) {
	base := domain.Quote{Currency: "EUR", Total: 100}
	extras := domain.Extras{
		Cabins: []domain.CabinOption{
			{Label: "Inside 2", Price: 40},
			{Label: "Outside 4", Price: 60},
		},
		SeatCount: 2,
		Insurance: domain.InsuranceYes,
	}
	fees := domain.FeeSchedule{Seat: 15, Insurance: 10, Currency: "EUR"}

	q, err := services.ApplyExtras(base, extras, fees)

	require.NoError(t, err)
	assert.Equal(t, 240.0, q.Total)
	assert.Equal(t, domain.LineItem{Count: 2, UnitPrice: 15}, q.Breakdown.Lines[domain.LineSeats])
	assert.Equal(t, 10.0, q.Breakdown.Surcharges[domain.SurchargeInsurance])
	assert.Equal(t, 40.0, q.Breakdown.Surcharges["cabin_1:Inside 2"])
	assert.Equal(t, 60.0, q.Breakdown.Surcharges["cabin_2:Outside 4"])
}

func TestApplyExtras_InsuranceNoAddsNothing(t *testing.T) {
	base := domain.Quote{Currency: "EUR", Total: 100}

	q, err := services.ApplyExtras(base, domain.Extras{Insurance: domain.InsuranceNo}, fullFees())

	require.NoError(t, err)
	assert.Equal(t, 100.0, q.Total)
	assert.NotContains(t, q.Breakdown.Surcharges, domain.SurchargeInsurance)
}

func TestApplyExtras_LeavesBaseUntouched(t *testing.T) {
	base, err := services.QuoteSailing(caenPortsmouth, domain.PartyComposition{Adults: 1}, "", fullFees())
	require.NoError(t, err)

	_, err = services.ApplyExtras(base, domain.Extras{SeatCount: 3, Insurance: domain.InsuranceYes}, fullFees())

	require.NoError(t, err)
	assert.Equal(t, 50.0, base.Total)
	assert.NotContains(t, base.Breakdown.Lines, domain.LineSeats)
	assert.NotContains(t, base.Breakdown.Surcharges, domain.SurchargeInsurance)
}

func TestApplyExtras_NegativeSeats(t *testing.T) {
	_, err := services.ApplyExtras(domain.Quote{}, domain.Extras{SeatCount: -1}, fullFees())

	assert.True(t, domain.IsInvalidInput(err))
}
