package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/srgjo27/ferry_booking/internal/platform/metrics"
)

type Catalog interface {
	Suppliers(ctx context.Context) ([]domain.Supplier, error)
	Methods(ctx context.Context, supplierID string) ([]domain.TravelMethod, error)
	Routes(ctx context.Context) ([]domain.Route, error)
	Fees() domain.FeeSchedule
	CabinOptions() []domain.CabinOption
}

type Searcher interface {
	Search(ctx context.Context, req services.SearchRequest) ([]domain.Offer, error)
	ListSailings(ctx context.Context, req services.SearchRequest) ([]domain.Sailing, error)
}

// CatalogHandler serves reference data and the session-less search.
type CatalogHandler struct {
	catalog Catalog
	search  Searcher
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewCatalogHandler(catalog Catalog, search Searcher, m *metrics.Metrics, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, search: search, metrics: m, log: log}
}

func (h *CatalogHandler) Suppliers(c *gin.Context) {
	suppliers, err := h.catalog.Suppliers(c.Request.Context())
	if err != nil {
		recordUpstream(h.metrics, err)
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suppliers": suppliers})
}

func (h *CatalogHandler) Methods(c *gin.Context) {
	methods, err := h.catalog.Methods(c.Request.Context(), c.Param("supplierId"))
	if err != nil {
		recordUpstream(h.metrics, err)
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "methods": methods})
}

func (h *CatalogHandler) Routes(c *gin.Context) {
	routes, err := h.catalog.Routes(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "routes": routes})
}

func (h *CatalogHandler) Fees(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fees": h.catalog.Fees()})
}

func (h *CatalogHandler) Cabins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cabins": h.catalog.CabinOptions()})
}

// Sailings lists one supplier's raw sailings for a route and date.
func (h *CatalogHandler) Sailings(c *gin.Context) {
	req, err := searchFromQuery(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	sailings, err := h.search.ListSailings(c.Request.Context(), req)
	if err != nil {
		recordUpstream(h.metrics, err)
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sailings": sailings})
}

// Search prices every matching sailing for the party in the query string.
func (h *CatalogHandler) Search(c *gin.Context) {
	req, err := searchFromQuery(c)
	if err != nil {
		recordSearch(h.metrics, err)
		writeError(c, h.log, err)
		return
	}

	offers, err := h.search.Search(c.Request.Context(), req)
	recordSearch(h.metrics, err)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": offers})
}

// searchFromQuery reads a search from query parameters. adults defaults to
// one; childAges (or childrenAges) overrides children when present.
func searchFromQuery(c *gin.Context) (services.SearchRequest, error) {
	req := services.SearchRequest{
		SupplierID:        c.Query("supplierId"),
		DepartPort:        c.Query("departPort"),
		ArrivePort:        c.Query("arrivePort"),
		DepartDate:        c.Query("departDate"),
		EarliestDeparture: c.Query("departTime"),
		Method:            c.Query("method"),
		Sort:              services.SortKey(c.Query("sort")),
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"departPort", req.DepartPort},
		{"arrivePort", req.ArrivePort},
		{"departDate", req.DepartDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return services.SearchRequest{}, domain.InvalidInputError{
			Field: missing[0],
			Msg:   "missing required query params: " + strings.Join(missing, ", "),
		}
	}

	var err error
	party := domain.PartyComposition{}
	if party.Adults, err = queryCount(c, "adults", 1); err != nil {
		return services.SearchRequest{}, err
	}
	if party.Children, err = queryCount(c, "children", 0); err != nil {
		return services.SearchRequest{}, err
	}
	if party.Pets, err = queryCount(c, "pets", 0); err != nil {
		return services.SearchRequest{}, err
	}
	if party.Vehicles, err = queryCount(c, "vehicles", 0); err != nil {
		return services.SearchRequest{}, err
	}

	rawAges := c.Query("childAges")
	if rawAges == "" {
		rawAges = c.Query("childrenAges")
	}
	for i, part := range strings.Split(rawAges, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		age, convErr := strconv.Atoi(part)
		if convErr != nil {
			return services.SearchRequest{}, domain.InvalidInputError{Field: "childAges[" + strconv.Itoa(i) + "]", Msg: "not a number: " + part}
		}
		party.ChildAges = append(party.ChildAges, age)
	}
	if len(party.ChildAges) > 0 {
		party.Children = len(party.ChildAges)
	}

	req.Party = party
	return req, nil
}

func queryCount(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidInputError{Field: key, Msg: "not a number: " + raw}
	}
	return n, nil
}

func recordSearch(m *metrics.Metrics, err error) {
	switch {
	case err == nil:
		m.Searches.WithLabelValues("ok").Inc()
	case domain.IsUpstream(err):
		m.Searches.WithLabelValues("upstream_error").Inc()
		recordUpstream(m, err)
	default:
		m.Searches.WithLabelValues("rejected").Inc()
	}
}

func recordUpstream(m *metrics.Metrics, err error) {
	var upstream domain.UpstreamError
	if errors.As(err, &upstream) {
		m.UpstreamFailures.WithLabelValues(upstream.Op).Inc()
	}
}
