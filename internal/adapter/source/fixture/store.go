package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
)

//go:embed data/*.json
var embedded embed.FS

// fallbackMethods is served for suppliers without their own methods file.
const fallbackMethods = "POT"

// Store serves every reference port from static JSON fixtures. It is read-only
// after loading.
type Store struct {
	suppliers []domain.Supplier
	methods   map[string][]domain.TravelMethod
	sailings  []domain.Sailing
	fees      domain.FeeSchedule
	cabins    []domain.CabinOption
}

// Load reads the fixtures bundled with the binary.
func Load() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads fixtures from fsys: suppliers.json, sailings.json, fees.json,
// cabins.json and any methods_<supplier>.json.
func LoadFS(fsys fs.FS) (*Store, error) {
	var suppliers struct {
		Suppliers []domain.Supplier `json:"suppliers"`
	}
	if err := readJSON(fsys, "suppliers.json", &suppliers); err != nil {
		return nil, err
	}

	var sailings struct {
		Sailings []domain.Sailing `json:"sailings"`
	}
	if err := readJSON(fsys, "sailings.json", &sailings); err != nil {
		return nil, err
	}

	var fees struct {
		Fees feeDocument `json:"fees"`
	}
	if err := readJSON(fsys, "fees.json", &fees); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cabins struct {
		Cabins []domain.CabinOption `json:"cabins"`
	}
	if err := readJSON(fsys, "cabins.json", &cabins); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	methods, err := readMethods(fsys)
	if err != nil {
		return nil, err
	}

	return &Store{
		suppliers: suppliers.Suppliers,
		methods:   methods,
		sailings:  sailings.Sailings,
		fees:      fees.Fees.schedule(),
		cabins:    cabins.Cabins,
	}, nil
}

func readMethods(fsys fs.FS) (map[string][]domain.TravelMethod, error) {
	names, err := fs.Glob(fsys, "methods_*.json")
	if err != nil {
		return nil, err
	}

	out := make(map[string][]domain.TravelMethod, len(names))
	for _, name := range names {
		var doc struct {
			Methods []domain.TravelMethod `json:"methods"`
		}
		if err := readJSON(fsys, name, &doc); err != nil {
			return nil, err
		}
		supplier := strings.TrimSuffix(strings.TrimPrefix(name, "methods_"), ".json")
		out[supplier] = doc.Methods
	}
	return out, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func (s *Store) Sailings(ctx context.Context, q ports.SailingQuery) ([]domain.Sailing, error) {
	out := make([]domain.Sailing, 0, len(s.sailings))
	for _, sailing := range s.sailings {
		if q.SupplierID != "" && sailing.SupplierID != q.SupplierID {
			continue
		}
		if q.DepartPort != "" && sailing.DepartPort != q.DepartPort {
			continue
		}
		if q.ArrivePort != "" && sailing.ArrivePort != q.ArrivePort {
			continue
		}
		out = append(out, sailing)
	}
	return out, nil
}

func (s *Store) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	return append([]domain.Supplier(nil), s.suppliers...), nil
}

func (s *Store) Methods(ctx context.Context, supplierID string) ([]domain.TravelMethod, error) {
	if m, ok := s.methods[supplierID]; ok {
		return append([]domain.TravelMethod(nil), m...), nil
	}
	if m, ok := s.methods[fallbackMethods]; ok {
		return append([]domain.TravelMethod(nil), m...), nil
	}
	return nil, domain.NotFoundError{Resource: "methods for supplier", ID: supplierID}
}

// Routes lists the distinct port pairs in the inventory with the suppliers
// serving each.
func (s *Store) Routes(ctx context.Context) ([]domain.Route, error) {
	index := map[string]*domain.Route{}
	var order []string

	for _, sailing := range s.sailings {
		if sailing.DepartPort == "" || sailing.ArrivePort == "" {
			continue
		}
		key := sailing.DepartPort + "__" + sailing.ArrivePort
		r, ok := index[key]
		if !ok {
			r = &domain.Route{DepartPort: sailing.DepartPort, ArrivePort: sailing.ArrivePort, Suppliers: []string{}}
			index[key] = r
			order = append(order, key)
		}
		if sailing.SupplierID != "" && !slices.Contains(r.Suppliers, sailing.SupplierID) {
			r.Suppliers = append(r.Suppliers, sailing.SupplierID)
		}
	}

	sort.Strings(order)
	routes := make([]domain.Route, 0, len(order))
	for _, key := range order {
		routes = append(routes, *index[key])
	}
	return routes, nil
}

func (s *Store) Fees(ctx context.Context) (domain.FeeSchedule, error) {
	fees := s.fees
	fees.MethodSurcharges = make(map[string]float64, len(s.fees.MethodSurcharges))
	for k, v := range s.fees.MethodSurcharges {
		fees.MethodSurcharges[k] = v
	}
	return fees, nil
}

func (s *Store) CabinOptions(ctx context.Context) ([]domain.CabinOption, error) {
	return append([]domain.CabinOption(nil), s.cabins...), nil
}
