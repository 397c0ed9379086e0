package services

import (
	"context"
	"slices"
	"strings"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

// AllSuppliers is the supplier filter value that searches every supplier.
const AllSuppliers = "ALL"

type SortKey string

const (
	SortBest      SortKey = "best"
	SortPrice     SortKey = "price"
	SortDeparture SortKey = "departure"
)

func ParseSortKey(raw string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(SortBest):
		return SortBest, nil
	case string(SortPrice):
		return SortPrice, nil
	case string(SortDeparture), "depart":
		return SortDeparture, nil
	default:
		return "", domain.InvalidInputError{Field: "sort", Msg: "expected best, price or departure, got " + raw}
	}
}

type SearchRequest struct {
	SupplierID        string                  `json:"supplierId"`
	DepartPort        string                  `json:"departPort"`
	ArrivePort        string                  `json:"arrivePort"`
	DepartDate        string                  `json:"departDate"`
	EarliestDeparture string                  `json:"departTime,omitempty"`
	Method            string                  `json:"method,omitempty"`
	Party             domain.PartyComposition `json:"party"`
	Sort              SortKey                 `json:"sort,omitempty"`
}

// Normalize checks required fields and returns the request in canonical form:
// ISO date, empty supplier for "all", resolved sort key.
func (r SearchRequest) Normalize() (SearchRequest, error) {
	out := r
	out.DepartPort = strings.TrimSpace(r.DepartPort)
	out.ArrivePort = strings.TrimSpace(r.ArrivePort)
	out.SupplierID = strings.TrimSpace(r.SupplierID)
	out.EarliestDeparture = strings.TrimSpace(r.EarliestDeparture)
	out.Party = r.Party.Clone()

	if out.DepartPort == "" {
		return SearchRequest{}, domain.InvalidInputError{Field: "departPort", Msg: "is required"}
	}
	if out.ArrivePort == "" {
		return SearchRequest{}, domain.InvalidInputError{Field: "arrivePort", Msg: "is required"}
	}

	date, err := domain.ParseTravelDate(strings.TrimSpace(r.DepartDate))
	if err != nil {
		return SearchRequest{}, err
	}
	out.DepartDate = date

	if strings.EqualFold(out.SupplierID, AllSuppliers) {
		out.SupplierID = ""
	}

	if out.EarliestDeparture != "" && !domain.ValidClock(out.EarliestDeparture) {
		return SearchRequest{}, domain.InvalidInputError{Field: "departTime", Msg: "expected HH:MM, got " + out.EarliestDeparture}
	}

	sortKey, err := ParseSortKey(string(r.Sort))
	if err != nil {
		return SearchRequest{}, err
	}
	out.Sort = sortKey

	if err := out.Party.Validate(); err != nil {
		return SearchRequest{}, err
	}

	return out, nil
}

type SearchService struct {
	source ports.SailingSource
	fees   domain.FeeSchedule
	log    logger.Logger
}

func NewSearchService(source ports.SailingSource, fees domain.FeeSchedule, log logger.Logger) *SearchService {
	return &SearchService{
		source: source,
		fees:   fees,
		log:    log,
	}
}

func (s *SearchService) Fees() domain.FeeSchedule {
	return s.fees
}

// Search lists the sailings matching the request, each priced for the base
// party, in the requested order. A failing source fails the whole search.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]domain.Offer, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	sailings, err := s.source.Sailings(ctx, ports.SailingQuery{
		SupplierID: req.SupplierID,
		DepartPort: req.DepartPort,
		ArrivePort: req.ArrivePort,
		Date:       req.DepartDate,
	})
	if err != nil {
		if domain.IsUpstream(err) || domain.IsInvalidInput(err) {
			return nil, err
		}
		return nil, domain.UpstreamError{Op: "sailings", Err: err}
	}

	offers := make([]domain.Offer, 0, len(sailings))
	for _, sailing := range sailings {
		if !matches(sailing, req) {
			continue
		}

		quote, err := QuoteSailing(sailing, req.Party, req.Method, s.fees)
		if err != nil {
			return nil, err
		}
		offers = append(offers, domain.Offer{Sailing: sailing, Quote: quote})
	}

	s.log.Info("Search completed",
		"route", req.DepartPort+"-"+req.ArrivePort,
		"date", req.DepartDate,
		"supplier", req.SupplierID,
		"candidates", len(sailings),
		"results", len(offers),
	)

	return SortOffers(offers, req.Sort), nil
}

// ListSailings returns the unpriced sailings of one supplier matching the
// request's route, date and earliest departure.
func (s *SearchService) ListSailings(ctx context.Context, req SearchRequest) ([]domain.Sailing, error) {
	if strings.TrimSpace(req.SupplierID) == "" || strings.EqualFold(strings.TrimSpace(req.SupplierID), AllSuppliers) {
		return nil, domain.InvalidInputError{Field: "supplierId", Msg: "a single supplier is required"}
	}

	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	sailings, err := s.source.Sailings(ctx, ports.SailingQuery{
		SupplierID: req.SupplierID,
		DepartPort: req.DepartPort,
		ArrivePort: req.ArrivePort,
		Date:       req.DepartDate,
	})
	if err != nil {
		if domain.IsUpstream(err) || domain.IsInvalidInput(err) {
			return nil, err
		}
		return nil, domain.UpstreamError{Op: "sailings", Err: err}
	}

	out := make([]domain.Sailing, 0, len(sailings))
	for _, sailing := range sailings {
		if matches(sailing, req) {
			out = append(out, sailing)
		}
	}
	return out, nil
}

func matches(s domain.Sailing, req SearchRequest) bool {
	if req.SupplierID != "" && s.SupplierID != req.SupplierID {
		return false
	}
	if s.DepartPort != req.DepartPort || s.ArrivePort != req.ArrivePort {
		return false
	}
	if !s.DepartsOn(req.DepartDate) {
		return false
	}
	if req.EarliestDeparture != "" {
		// Sailings without a readable clock cannot be judged and are kept.
		if clock, ok := s.DepartureClock(); ok && clock < req.EarliestDeparture {
			return false
		}
	}
	return true
}

// SortOffers returns a re-ordered copy of offers. The input is never modified,
// so the same list can be re-sorted any number of times.
func SortOffers(offers []domain.Offer, key SortKey) []domain.Offer {
	out := slices.Clone(offers)
	if out == nil {
		out = []domain.Offer{}
	}

	switch key {
	case SortPrice:
		slices.SortStableFunc(out, func(a, b domain.Offer) int {
			switch {
			case a.Quote.Total < b.Quote.Total:
				return -1
			case a.Quote.Total > b.Quote.Total:
				return 1
			default:
				return 0
			}
		})
	case SortDeparture:
		slices.SortStableFunc(out, compareDeparture)
	}

	return out
}

// compareDeparture orders readable timestamps chronologically, ahead of
// unreadable ones, which fall back to lexical order.
func compareDeparture(a, b domain.Offer) int {
	ta, okA := a.Sailing.DepartAt()
	tb, okB := b.Sailing.DepartAt()

	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a.Sailing.DepartTime, b.Sailing.DepartTime)
	}
}

// FilterOffersBySupplier keeps the offers of one supplier. An empty or "ALL"
// supplier keeps everything.
func FilterOffersBySupplier(offers []domain.Offer, supplierID string) []domain.Offer {
	if supplierID == "" || strings.EqualFold(supplierID, AllSuppliers) {
		return append([]domain.Offer{}, offers...)
	}

	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Sailing.SupplierID == supplierID {
			out = append(out, o)
		}
	}
	return out
}
