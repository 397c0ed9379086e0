package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/srgjo27/ferry_booking/internal/core/ports/mocks"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sailing(id, supplier, from, to, depart string) domain.Sailing {
	return domain.Sailing{
		SailingID:  id,
		SupplierID: supplier,
		DepartPort: from,
		ArrivePort: to,
		DepartTime: depart,
	}
}

func inventory() []domain.Sailing {
	return []domain.Sailing{
		sailing("BFT-1", "BFT", "CAEN", "PORS", "2025-10-20T14:00:00+02:00"),
		sailing("POT-1", "POT", "CAEN", "PORS", "2025-10-20T08:30:00+02:00"),
		sailing("BFT-2", "BFT", "CAEN", "PORS", "2025-10-21T08:30:00+02:00"),
		sailing("BFT-3", "BFT", "PORS", "CAEN", "2025-10-20T09:00:00+01:00"),
		sailing("POT-2", "POT", "CAEN", "PORS", "2025-10-20 evening"),
		sailing("BFT-4", "BFT", "CAEN", "POOL", "2025-10-20T10:00:00+02:00"),
	}
}

func ids(offers []domain.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Sailing.SailingID)
	}
	return out
}

func baseRequest() services.SearchRequest {
	return services.SearchRequest{
		SupplierID: "ALL",
		DepartPort: "CAEN",
		ArrivePort: "PORS",
		DepartDate: "20251020",
		Party:      domain.PartyComposition{Adults: 2, Vehicles: 1},
	}
}

func TestSearch_FiltersRouteAndDateAcrossSuppliers(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, domain.FeeSchedule{Adult: 50, Vehicle: 20, Currency: "EUR"}, logger.NewNop())
	ctx := context.Background()

	source.On("Sailings", ctx, ports.SailingQuery{DepartPort: "CAEN", ArrivePort: "PORS", Date: "2025-10-20"}).
		Return(inventory(), nil)

	offers, err := svc.Search(ctx, baseRequest())

	require.NoError(t, err)
	assert.Equal(t, []string{"BFT-1", "POT-1", "POT-2"}, ids(offers))
	for _, o := range offers {
		assert.Equal(t, 120.0, o.Quote.Total)
		assert.Equal(t, "EUR", o.Quote.Currency)
	}
}

func TestSearch_SupplierFilterIsExact(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, fullFees(), logger.NewNop())
	ctx := context.Background()

	req := baseRequest()
	req.SupplierID = "POT"

	source.On("Sailings", ctx, mock.MatchedBy(func(q ports.SailingQuery) bool { return q.SupplierID == "POT" })).
		Return(inventory(), nil)

	offers, err := svc.Search(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, []string{"POT-1", "POT-2"}, ids(offers))
}

func TestSearch_EarliestDepartureKeepsUnreadableTimes(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, fullFees(), logger.NewNop())
	ctx := context.Background()

	req := baseRequest()
	req.EarliestDeparture = "09:00"

	source.On("Sailings", ctx, mock.Anything).Return(inventory(), nil)

	offers, err := svc.Search(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, []string{"BFT-1", "POT-2"}, ids(offers))
}

func TestSearch_SortKeys(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, fullFees(), logger.NewNop())
	ctx := context.Background()

	source.On("Sailings", ctx, mock.Anything).Return(inventory(), nil)

	req := baseRequest()
	req.Sort = services.SortDeparture
	offers, err := svc.Search(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, []string{"POT-1", "BFT-1", "POT-2"}, ids(offers))
}

func TestSearch_MissingRouteOrDate(t *testing.T) {
	svc := services.NewSearchService(mocks.NewSailingSource(t), fullFees(), logger.NewNop())

	for _, mutate := range []func(*services.SearchRequest){
		func(r *services.SearchRequest) { r.DepartPort = "" },
		func(r *services.SearchRequest) { r.ArrivePort = " " },
		func(r *services.SearchRequest) { r.DepartDate = "" },
		func(r *services.SearchRequest) { r.EarliestDeparture = "9am" },
		func(r *services.SearchRequest) { r.Sort = "cheapest" },
	} {
		req := baseRequest()
		mutate(&req)

		_, err := svc.Search(context.Background(), req)

		assert.True(t, domain.IsInvalidInput(err), "got %v", err)
	}
}

func TestSearch_UpstreamFailureReturnsNoPartialResult(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, fullFees(), logger.NewNop())
	ctx := context.Background()

	source.On("Sailings", ctx, mock.Anything).Return(inventory()[:2], errors.New("connection refused"))

	offers, err := svc.Search(ctx, baseRequest())

	assert.Nil(t, offers)
	assert.True(t, domain.IsUpstream(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSortOffers_Properties(t *testing.T) {
	offers := []domain.Offer{
		{Sailing: sailing("a", "BFT", "X", "Y", "2025-10-20T12:00:00+02:00"), Quote: domain.Quote{Total: 90}},
		{Sailing: sailing("b", "POT", "X", "Y", "2025-10-20T09:00:00+01:00"), Quote: domain.Quote{Total: 70}},
		{Sailing: sailing("c", "BFT", "X", "Y", "unknown"), Quote: domain.Quote{Total: 90}},
		{Sailing: sailing("d", "POT", "X", "Y", "2025-10-20T07:00:00+02:00"), Quote: domain.Quote{Total: 70}},
	}
	original := append([]domain.Offer(nil), offers...)

	byPrice := services.SortOffers(offers, services.SortPrice)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(byPrice))
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].Quote.Total, byPrice[i].Quote.Total)
	}

	// 09:00+01:00 is 10:00+02:00, so it departs after 07:00+02:00.
	byDeparture := services.SortOffers(offers, services.SortDeparture)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(byDeparture))

	assert.Empty(t, services.SortOffers(nil, services.SortBest))
	assert.Equal(t, ids(original), ids(services.SortOffers(offers, services.SortBest)))
	assert.Equal(t, original, offers, "input must not be reordered")
}

func TestFilterOffersBySupplier(t *testing.T) {
	offers := []domain.Offer{
		{Sailing: sailing("a", "BFT", "X", "Y", "")},
		{Sailing: sailing("b", "POT", "X", "Y", "")},
	}

	assert.Equal(t, []string{"b"}, ids(services.FilterOffersBySupplier(offers, "POT")))
	assert.Equal(t, []string{"a", "b"}, ids(services.FilterOffersBySupplier(offers, "ALL")))
	assert.Empty(t, services.FilterOffersBySupplier(offers, "ZZZ"))
}

func TestParseSortKey(t *testing.T) {
	for raw, want := range map[string]services.SortKey{
		"":          services.SortBest,
		"best":      services.SortBest,
		"PRICE":     services.SortPrice,
		"depart":    services.SortDeparture,
		"departure": services.SortDeparture,
	} {
		got, err := services.ParseSortKey(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestListSailings(t *testing.T) {
	source := mocks.NewSailingSource(t)
	svc := services.NewSearchService(source, fullFees(), logger.NewNop())
	ctx := context.Background()

	req := baseRequest()
	req.SupplierID = "BFT"

	source.On("Sailings", ctx, ports.SailingQuery{SupplierID: "BFT", DepartPort: "CAEN", ArrivePort: "PORS", Date: "2025-10-20"}).
		Return(inventory(), nil)

	sailings, err := svc.ListSailings(ctx, req)

	require.NoError(t, err)
	require.Len(t, sailings, 1)
	assert.Equal(t, "BFT-1", sailings[0].SailingID)
}

func TestListSailings_RequiresSingleSupplier(t *testing.T) {
	svc := services.NewSearchService(mocks.NewSailingSource(t), fullFees(), logger.NewNop())

	_, err := svc.ListSailings(context.Background(), baseRequest())

	assert.True(t, domain.IsInvalidInput(err))
}
