package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
)

// CatalogService serves the reference data shown around the wizard:
// suppliers, travel methods, route suggestions, fees and cabins.
type CatalogService struct {
	directory ports.SupplierDirectory
	routes    ports.RouteCatalog
	fees      domain.FeeSchedule
	cabins    []domain.CabinOption

	allowedSuppliers []string
	allowedMethods   []string
}

type CatalogConfig struct {
	AllowedSuppliers []string
	AllowedMethods   []string
}

// NewCatalogService wires the catalog. routes may be nil when the active
// source cannot enumerate its inventory. Empty allow-lists allow everything.
func NewCatalogService(directory ports.SupplierDirectory, routes ports.RouteCatalog, fees domain.FeeSchedule, cabins []domain.CabinOption, cfg CatalogConfig) *CatalogService {
	return &CatalogService{
		directory:        directory,
		routes:           routes,
		fees:             fees,
		cabins:           cabins,
		allowedSuppliers: cfg.AllowedSuppliers,
		allowedMethods:   cfg.AllowedMethods,
	}
}

func (s *CatalogService) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.directory.Suppliers(ctx)
	if err != nil {
		return nil, upstream("suppliers", err)
	}

	out := make([]domain.Supplier, 0, len(suppliers))
	for _, sup := range suppliers {
		if allowed(s.allowedSuppliers, sup.SupplierID) {
			out = append(out, sup)
		}
	}
	return out, nil
}

func (s *CatalogService) Methods(ctx context.Context, supplierID string) ([]domain.TravelMethod, error) {
	if supplierID == "" || supplierID == AllSuppliers {
		return []domain.TravelMethod{}, nil
	}

	methods, err := s.directory.Methods(ctx, supplierID)
	if err != nil {
		return nil, upstream("methods", err)
	}

	out := make([]domain.TravelMethod, 0, len(methods))
	for _, m := range methods {
		if allowed(s.allowedMethods, m.Code) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogService) Routes(ctx context.Context) ([]domain.Route, error) {
	if s.routes == nil {
		return []domain.Route{}, nil
	}

	routes, err := s.routes.Routes(ctx)
	if err != nil {
		return nil, upstream("routes", err)
	}
	return routes, nil
}

func (s *CatalogService) Fees() domain.FeeSchedule {
	return s.fees
}

func (s *CatalogService) CabinOptions() []domain.CabinOption {
	return append([]domain.CabinOption{}, s.cabins...)
}

func allowed(list []string, code string) bool {
	return len(list) == 0 || slices.Contains(list, code)
}

func upstream(op string, err error) error {
	if domain.IsUpstream(err) || domain.IsInvalidInput(err) || domain.IsNotFound(err) {
		return err
	}
	return domain.UpstreamError{Op: op, Err: err}
}

// LoadReferenceData reads the fee schedule and cabin catalog once at
// startup. Sessions price against this snapshot for their whole life.
func LoadReferenceData(ctx context.Context, fees ports.FeeProvider, cabins ports.CabinCatalog) (domain.FeeSchedule, []domain.CabinOption, error) {
	schedule, err := fees.Fees(ctx)
	if err != nil {
		return domain.FeeSchedule{}, nil, fmt.Errorf("load fee schedule: %w", err)
	}
	if schedule.MethodSurcharges == nil {
		schedule.MethodSurcharges = map[string]float64{}
	}

	options, err := cabins.CabinOptions(ctx)
	if err != nil {
		return domain.FeeSchedule{}, nil, fmt.Errorf("load cabin options: %w", err)
	}
	if options == nil {
		options = []domain.CabinOption{}
	}

	return schedule, options, nil
}
