package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
)

type OfferSearcher interface {
	Search(ctx context.Context, req SearchRequest) ([]domain.Offer, error)
}

type PassengerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type VehicleForm struct {
	Type    string `json:"type"`
	Plate   string `json:"plate"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Caravan string `json:"caravan"`
}

// PassengerForm is everything the passengers step commits at once. Names, when
// given, must match the passenger records one to one. A non-empty Insurance
// overrides the current choice.
type PassengerForm struct {
	Passengers   []PassengerName        `json:"passengers"`
	ContactEmail string                 `json:"contactEmail"`
	Vehicle      *VehicleForm           `json:"vehicle,omitempty"`
	Insurance    domain.InsuranceChoice `json:"insuranceChoice,omitempty"`
}

type WizardSnapshot struct {
	Step           domain.WizardStep    `json:"step"`
	Search         *SearchRequest       `json:"search,omitempty"`
	Results        []domain.Offer       `json:"results"`
	SupplierFilter string               `json:"supplierFilter,omitempty"`
	Draft          *domain.BookingDraft `json:"draft,omitempty"`
	Quote          *domain.Quote        `json:"quote,omitempty"`
	Confirmation   *domain.Confirmation `json:"confirmation,omitempty"`
	CabinOptions   []domain.CabinOption `json:"cabinOptions"`
}

type WizardOption func(*Wizard)

func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) { w.now = now }
}

func WithReferenceGenerator(next func() uuid.UUID) WizardOption {
	return func(w *Wizard) { w.newReference = next }
}

// Wizard walks one booking through Search, Results, Details, Passengers,
// Payment and Confirmed. Every intent either applies completely or returns an
// error and leaves the wizard as it was. A Wizard is owned by a single session
// and is not safe for concurrent use.
type Wizard struct {
	searcher OfferSearcher
	fees     domain.FeeSchedule
	cabins   []domain.CabinOption

	now          func() time.Time
	newReference func() uuid.UUID

	step           domain.WizardStep
	request        *SearchRequest
	results        []domain.Offer
	supplierFilter string
	draft          *domain.BookingDraft
	quote          *domain.Quote
	confirmation   *domain.Confirmation
}

func NewWizard(searcher OfferSearcher, fees domain.FeeSchedule, cabins []domain.CabinOption, opts ...WizardOption) *Wizard {
	w := &Wizard{
		searcher:     searcher,
		fees:         fees,
		cabins:       append([]domain.CabinOption(nil), cabins...),
		now:          time.Now,
		newReference: uuid.New,
		step:         domain.StepSearch,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Step() domain.WizardStep {
	return w.step
}

// SubmitSearch runs the search step and moves to Results. The party and
// filters are kept for the rest of the run.
func (w *Wizard) SubmitSearch(ctx context.Context, req SearchRequest) error {
	w.reenter()
	if err := w.require(domain.StepSearch, "search"); err != nil {
		return err
	}

	var missing []string
	if strings.TrimSpace(req.DepartPort) == "" {
		missing = append(missing, "departPort")
	}
	if strings.TrimSpace(req.ArrivePort) == "" {
		missing = append(missing, "arrivePort")
	}
	if strings.TrimSpace(req.DepartDate) == "" {
		missing = append(missing, "departDate")
	}
	if len(missing) > 0 {
		return domain.ValidationError{
			Field: missing[0],
			Msg:   "search requires " + strings.Join(missing, ", "),
		}
	}

	normalized, err := req.Normalize()
	if err != nil {
		return err
	}

	// Results are kept in source order; the requested sort is applied on view.
	unsorted := normalized
	unsorted.Sort = SortBest
	offers, err := w.searcher.Search(ctx, unsorted)
	if err != nil {
		return err
	}

	w.request = &normalized
	w.results = offers
	w.supplierFilter = ""
	w.step = domain.StepResults
	return nil
}

// SortResults changes the order of the current results without querying the
// source. Each key sorts from source order, so "best" restores it.
func (w *Wizard) SortResults(raw string) error {
	w.reenter()
	if err := w.require(domain.StepResults, "sort results"); err != nil {
		return err
	}

	key, err := ParseSortKey(raw)
	if err != nil {
		return err
	}

	w.request.Sort = key
	return nil
}

// FilterResults narrows the visible results to one supplier; empty or "ALL"
// clears the filter.
func (w *Wizard) FilterResults(supplierID string) error {
	w.reenter()
	if err := w.require(domain.StepResults, "filter results"); err != nil {
		return err
	}

	supplierID = strings.TrimSpace(supplierID)
	if strings.EqualFold(supplierID, AllSuppliers) {
		supplierID = ""
	}
	w.supplierFilter = supplierID
	return nil
}

// SelectSailing commits to one visible result and creates the draft.
func (w *Wizard) SelectSailing(sailingID string) error {
	w.reenter()
	if err := w.require(domain.StepResults, "select a sailing"); err != nil {
		return err
	}

	var chosen *domain.Offer
	for _, offer := range w.visibleResults() {
		if offer.Sailing.SailingID == sailingID {
			o := offer
			chosen = &o
			break
		}
	}
	if chosen == nil {
		return domain.ValidationError{Field: "sailingId", Msg: fmt.Sprintf("sailing %q is not among the current results", sailingID)}
	}

	draft := domain.NewBookingDraft(*chosen)
	quote, err := PriceDraft(draft, w.fees)
	if err != nil {
		return err
	}

	w.draft = draft
	w.quote = &quote
	w.step = domain.StepDetails
	return nil
}

func (w *Wizard) AddCabin(label string) error {
	w.reenter()
	if err := w.require(domain.StepDetails, "add a cabin"); err != nil {
		return err
	}

	cabin, ok := w.cabinOption(label)
	if !ok {
		return domain.ValidationError{Field: "cabin", Msg: fmt.Sprintf("unknown cabin option %q", label)}
	}

	return w.mutate(func(d *domain.BookingDraft) error {
		if len(d.Cabins) >= domain.MaxCabins {
			return domain.ValidationError{Field: "cabins", Msg: fmt.Sprintf("at most %d cabins can be selected", domain.MaxCabins)}
		}
		d.Cabins = append(d.Cabins, cabin)
		return nil
	})
}

func (w *Wizard) RemoveCabin(index int) error {
	w.reenter()
	if err := w.require(domain.StepDetails, "remove a cabin"); err != nil {
		return err
	}

	return w.mutate(func(d *domain.BookingDraft) error {
		if index < 0 || index >= len(d.Cabins) {
			return domain.ValidationError{Field: "cabins", Msg: fmt.Sprintf("no cabin at position %d", index)}
		}
		d.Cabins = append(d.Cabins[:index], d.Cabins[index+1:]...)
		return nil
	})
}

func (w *Wizard) SetSeatCount(n int) error {
	w.reenter()
	if err := w.require(domain.StepDetails, "set seats"); err != nil {
		return err
	}
	if n < 0 {
		return domain.InvalidInputError{Field: "seatCount", Msg: fmt.Sprintf("must not be negative, got %d", n)}
	}
	if n > domain.MaxSeats {
		return domain.ValidationError{Field: "seatCount", Msg: fmt.Sprintf("at most %d seats can be reserved", domain.MaxSeats)}
	}

	return w.mutate(func(d *domain.BookingDraft) error {
		d.SeatCount = n
		return nil
	})
}

// SetInsurance records the insurance choice while in Details or Passengers.
func (w *Wizard) SetInsurance(choice domain.InsuranceChoice) error {
	w.reenter()
	if w.step != domain.StepDetails && w.step != domain.StepPassengers {
		return w.stepError("choose insurance")
	}
	if !choice.Resolved() {
		return domain.InvalidInputError{Field: "insuranceChoice", Msg: fmt.Sprintf("expected yes or no, got %q", choice)}
	}

	return w.mutate(func(d *domain.BookingDraft) error {
		d.Insurance = choice
		return nil
	})
}

// ContinueToPassengers freezes cabins and seats and creates one passenger
// record per adult and child, adults first.
func (w *Wizard) ContinueToPassengers() error {
	w.reenter()
	if err := w.require(domain.StepDetails, "continue to passengers"); err != nil {
		return err
	}

	if w.draft.Passengers == nil {
		c := w.request.Party.Classify()
		passengers := make([]domain.Passenger, 0, c.Adults+c.Children)
		for i := 0; i < c.Adults+c.Children; i++ {
			role := domain.RoleChild
			if i < c.Adults {
				role = domain.RoleAdult
			}
			passengers = append(passengers, domain.Passenger{Role: role})
		}
		w.draft.Passengers = passengers
	}

	w.step = domain.StepPassengers
	return nil
}

// SubmitPassengers checks the payment gates and commits names, vehicle and
// contact email together.
func (w *Wizard) SubmitPassengers(form PassengerForm) error {
	w.reenter()
	if err := w.require(domain.StepPassengers, "submit passengers"); err != nil {
		return err
	}

	insurance := w.draft.Insurance
	if form.Insurance != domain.InsuranceUnset {
		if !form.Insurance.Resolved() {
			return domain.InvalidInputError{Field: "insuranceChoice", Msg: fmt.Sprintf("expected yes or no, got %q", form.Insurance)}
		}
		insurance = form.Insurance
	}
	if !insurance.Resolved() {
		return domain.ValidationError{Field: "insuranceChoice", Msg: "an insurance option (yes or no) must be chosen"}
	}

	email := strings.TrimSpace(form.ContactEmail)
	if !domain.ValidContactEmail(email) {
		return domain.ValidationError{Field: "contactEmail", Msg: "a valid contact email is required for the ticket and invoice"}
	}

	vehicle, err := w.vehicleFromForm(form.Vehicle)
	if err != nil {
		return err
	}

	if len(form.Passengers) != 0 && len(form.Passengers) != len(w.draft.Passengers) {
		return domain.ValidationError{
			Field: "passengers",
			Msg:   fmt.Sprintf("expected %d passenger records, got %d", len(w.draft.Passengers), len(form.Passengers)),
		}
	}

	err = w.mutate(func(d *domain.BookingDraft) error {
		for i, name := range form.Passengers {
			d.Passengers[i].FirstName = strings.TrimSpace(name.FirstName)
			d.Passengers[i].LastName = strings.TrimSpace(name.LastName)
		}
		d.Insurance = insurance
		d.ContactEmail = email
		d.Vehicle = vehicle
		return nil
	})
	if err != nil {
		return err
	}

	w.step = domain.StepPayment
	return nil
}

func (w *Wizard) vehicleFromForm(form *VehicleForm) (*domain.VehicleInfo, error) {
	vehicles := w.request.Party.Vehicles

	if form == nil {
		if vehicles > 0 {
			return nil, domain.ValidationError{Field: "vehicle", Msg: "vehicle make, model and caravan selection are required"}
		}
		return nil, nil
	}

	v := VehicleForm{
		Type:    strings.TrimSpace(form.Type),
		Plate:   strings.TrimSpace(form.Plate),
		Make:    strings.TrimSpace(form.Make),
		Model:   strings.TrimSpace(form.Model),
		Caravan: strings.ToLower(strings.TrimSpace(form.Caravan)),
	}

	if vehicles > 0 {
		var missing []string
		if v.Make == "" {
			missing = append(missing, "make")
		}
		if v.Model == "" {
			missing = append(missing, "model")
		}
		if v.Caravan == "" {
			missing = append(missing, "caravan")
		}
		if len(missing) > 0 {
			return nil, domain.ValidationError{
				Field: "vehicle." + missing[0],
				Msg:   "vehicle details missing: " + strings.Join(missing, ", "),
			}
		}
	}
	if v.Caravan != "" && v.Caravan != "yes" && v.Caravan != "no" {
		return nil, domain.ValidationError{Field: "vehicle.caravan", Msg: fmt.Sprintf("caravan must be yes or no, got %q", form.Caravan)}
	}

	return &domain.VehicleInfo{
		Type:       v.Type,
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		HasCaravan: v.Caravan == "yes",
	}, nil
}

// ConfirmPayment finalizes the booking. No gateway is involved, so any
// supported method succeeds.
func (w *Wizard) ConfirmPayment(method string) (*domain.Confirmation, error) {
	w.reenter()
	if err := w.require(domain.StepPayment, "confirm payment"); err != nil {
		return nil, err
	}

	pm := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	switch pm {
	case "":
		pm = domain.PaymentCard
	case domain.PaymentCard, domain.PaymentPayPal:
	default:
		return nil, domain.ValidationError{Field: "paymentMethod", Msg: fmt.Sprintf("unsupported payment method %q", method)}
	}

	confirmation := &domain.Confirmation{
		Reference:     w.newReference(),
		PaymentMethod: pm,
		Quote:         w.quote.Clone(),
		Draft:         *w.draft.Clone(),
		ConfirmedAt:   w.now(),
	}

	w.confirmation = confirmation
	w.step = domain.StepConfirmed
	return confirmation, nil
}

// Abandon discards the draft and results and returns to Search. The last
// search request is kept.
func (w *Wizard) Abandon() {
	w.reset()
}

// Quote returns the running total, or false before a sailing is chosen.
func (w *Wizard) Quote() (domain.Quote, bool) {
	if w.quote == nil {
		return domain.Quote{}, false
	}
	return w.quote.Clone(), true
}

func (w *Wizard) Snapshot() WizardSnapshot {
	snap := WizardSnapshot{
		Step:           w.step,
		Results:        w.visibleResults(),
		SupplierFilter: w.supplierFilter,
		Draft:          w.draft.Clone(),
		CabinOptions:   append([]domain.CabinOption{}, w.cabins...),
	}
	if w.request != nil {
		req := *w.request
		req.Party = w.request.Party.Clone()
		snap.Search = &req
	}
	if w.quote != nil {
		q := w.quote.Clone()
		snap.Quote = &q
	}
	if w.confirmation != nil {
		c := *w.confirmation
		snap.Confirmation = &c
	}
	return snap
}

// mutate applies fn to a copy of the draft, reprices it and commits both only
// when fn and pricing succeed.
func (w *Wizard) mutate(fn func(d *domain.BookingDraft) error) error {
	candidate := w.draft.Clone()

	if err := fn(candidate); err != nil {
		return err
	}

	quote, err := PriceDraft(candidate, w.fees)
	if err != nil {
		return err
	}

	w.draft = candidate
	w.quote = &quote
	return nil
}

func (w *Wizard) visibleResults() []domain.Offer {
	key := SortBest
	if w.request != nil {
		key = w.request.Sort
	}
	return SortOffers(FilterOffersBySupplier(w.results, w.supplierFilter), key)
}

func (w *Wizard) cabinOption(label string) (domain.CabinOption, bool) {
	for _, c := range w.cabins {
		if c.Label == label {
			c.Features = append([]string(nil), c.Features...)
			return c, true
		}
	}
	return domain.CabinOption{}, false
}

// reenter leaves Confirmed for a fresh Search on the next intent.
func (w *Wizard) reenter() {
	if w.step == domain.StepConfirmed {
		w.reset()
	}
}

func (w *Wizard) reset() {
	w.step = domain.StepSearch
	w.results = nil
	w.supplierFilter = ""
	w.draft = nil
	w.quote = nil
	w.confirmation = nil
}

func (w *Wizard) require(step domain.WizardStep, intent string) error {
	if w.step != step {
		return w.stepError(intent)
	}
	return nil
}

func (w *Wizard) stepError(intent string) error {
	return domain.ValidationError{Field: "step", Msg: fmt.Sprintf("cannot %s while in step %s", intent, w.step)}
}
