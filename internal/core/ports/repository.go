package ports

import (
	"context"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
)

// SailingQuery narrows a sailing source lookup. An empty SupplierID means
// every supplier. Date is ISO (YYYY-MM-DD).
type SailingQuery struct {
	SupplierID string
	DepartPort string
	ArrivePort string
	Date       string
}

type SailingSource interface {
	Sailings(ctx context.Context, q SailingQuery) ([]domain.Sailing, error)
}

type SupplierDirectory interface {
	Suppliers(ctx context.Context) ([]domain.Supplier, error)
	Methods(ctx context.Context, supplierID string) ([]domain.TravelMethod, error)
}

type RouteCatalog interface {
	Routes(ctx context.Context) ([]domain.Route, error)
}

type FeeProvider interface {
	Fees(ctx context.Context) (domain.FeeSchedule, error)
}

type CabinCatalog interface {
	CabinOptions(ctx context.Context) ([]domain.CabinOption, error)
}
