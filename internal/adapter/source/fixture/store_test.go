package fixture_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/srgjo27/ferry_booking/internal/adapter/source/fixture"
	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedFixtures(t *testing.T) {
	store, err := fixture.Load()
	require.NoError(t, err)
	ctx := context.Background()

	suppliers, err := store.Suppliers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, suppliers)

	sailings, err := store.Sailings(ctx, ports.SailingQuery{DepartPort: "CAEN", ArrivePort: "PORS"})
	require.NoError(t, err)
	assert.Len(t, sailings, 3)

	fees, err := store.Fees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, fees.Adult)
	assert.Equal(t, "EUR", fees.Currency)
	assert.Equal(t, 15.0, fees.Surcharge("HCR"))

	cabins, err := store.CabinOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, cabins, 3)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"suppliers.json": {Data: []byte(`{"suppliers":[{"supplierId":"BFT","name":"BlueFerry Trans"}]}`)},
		"sailings.json": {Data: []byte(`{"sailings":[
			{"sailingId":"A","supplierId":"BFT","departPort":"CAEN","arrivePort":"PORS","departTime":"2025-10-20T08:30:00+02:00"},
			{"sailingId":"B","supplierId":"POT","departPort":"CAEN","arrivePort":"PORS","departTime":"2025-10-20T12:00:00+02:00"},
			{"sailingId":"C","supplierId":"BFT","departPort":"PORS","arrivePort":"CAEN","departTime":"2025-10-20T18:00:00+01:00"},
			{"sailingId":"D","supplierId":"BFT","departPort":"CAEN","arrivePort":"PORS","departTime":"2025-10-21T08:30:00+02:00"}
		]}`)},
		"fees.json":        {Data: []byte(`{"fees":{"baseAdult":45,"infant":0,"currency":"GBP"}}`)},
		"methods_POT.json": {Data: []byte(`{"methods":[{"code":"CAR","label":"Car"}]}`)},
	}
}

func TestLoadFS_FeeDefaultsFillGaps(t *testing.T) {
	store, err := fixture.LoadFS(testFS())
	require.NoError(t, err)

	fees, err := store.Fees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 45.0, fees.Adult)
	assert.Equal(t, 30.0, fees.Child)
	assert.Equal(t, 0.0, fees.Infant)
	assert.Equal(t, 20.0, fees.Vehicle)
	assert.Equal(t, 15.0, fees.Seat)
	assert.Equal(t, 10.0, fees.Insurance)
	assert.Equal(t, "GBP", fees.Currency)
}

func TestLoadFS_MissingSailingsFails(t *testing.T) {
	fsys := testFS()
	delete(fsys, "sailings.json")

	_, err := fixture.LoadFS(fsys)

	assert.Error(t, err)
}

func TestStore_SailingsBySupplier(t *testing.T) {
	store, err := fixture.LoadFS(testFS())
	require.NoError(t, err)

	sailings, err := store.Sailings(context.Background(), ports.SailingQuery{SupplierID: "POT", DepartPort: "CAEN", ArrivePort: "PORS"})

	require.NoError(t, err)
	require.Len(t, sailings, 1)
	assert.Equal(t, "B", sailings[0].SailingID)
}

func TestStore_MethodsFallBackToDefaultSupplier(t *testing.T) {
	store, err := fixture.LoadFS(testFS())
	require.NoError(t, err)

	methods, err := store.Methods(context.Background(), "BFT")

	require.NoError(t, err)
	assert.Equal(t, []domain.TravelMethod{{Code: "CAR", Label: "Car"}}, methods)
}

func TestStore_Routes(t *testing.T) {
	store, err := fixture.LoadFS(testFS())
	require.NoError(t, err)

	routes, err := store.Routes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Route{
		{DepartPort: "CAEN", ArrivePort: "PORS", Suppliers: []string{"BFT", "POT"}},
		{DepartPort: "PORS", ArrivePort: "CAEN", Suppliers: []string{"BFT"}},
	}, routes)
}
