package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	MaxCabins = 2
	MaxSeats  = 4
)

var contactEmailPattern = regexp.MustCompile(`.+@.+\..+`)

func ValidContactEmail(email string) bool {
	return contactEmailPattern.MatchString(email)
}

type WizardStep string

const (
	StepSearch     WizardStep = "SEARCH"
	StepResults    WizardStep = "RESULTS"
	StepDetails    WizardStep = "DETAILS"
	StepPassengers WizardStep = "PASSENGERS"
	StepPayment    WizardStep = "PAYMENT"
	StepConfirmed  WizardStep = "CONFIRMED"
)

type InsuranceChoice string

const (
	InsuranceUnset InsuranceChoice = ""
	InsuranceYes   InsuranceChoice = "yes"
	InsuranceNo    InsuranceChoice = "no"
)

func (c InsuranceChoice) Resolved() bool {
	return c == InsuranceYes || c == InsuranceNo
}

type PassengerRole string

const (
	RoleAdult PassengerRole = "adult"
	RoleChild PassengerRole = "child"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
)

type Passenger struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Role      PassengerRole `json:"role"`
}

type VehicleInfo struct {
	Type       string `json:"type,omitempty"`
	Plate      string `json:"plate,omitempty"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	HasCaravan bool   `json:"hasCaravan"`
}

// Extras are the add-ons layered on top of a base quote.
type Extras struct {
	Cabins    []CabinOption
	SeatCount int
	Insurance InsuranceChoice
}

// BookingDraft accumulates the choices of one wizard run. It exists from
// sailing selection until confirmation or abandonment.
type BookingDraft struct {
	Sailing      Sailing         `json:"sailing"`
	BaseQuote    Quote           `json:"baseQuote"`
	Cabins       []CabinOption   `json:"cabins"`
	SeatCount    int             `json:"seatCount"`
	Insurance    InsuranceChoice `json:"insuranceChoice"`
	Passengers   []Passenger     `json:"passengers"`
	Vehicle      *VehicleInfo    `json:"vehicleInfo,omitempty"`
	ContactEmail string          `json:"contactEmail"`
}

func NewBookingDraft(offer Offer) *BookingDraft {
	return &BookingDraft{
		Sailing:   offer.Sailing,
		BaseQuote: offer.Quote.Clone(),
		Cabins:    []CabinOption{},
	}
}

func (d *BookingDraft) Extras() Extras {
	return Extras{
		Cabins:    d.Cabins,
		SeatCount: d.SeatCount,
		Insurance: d.Insurance,
	}
}

func (d *BookingDraft) Clone() *BookingDraft {
	if d == nil {
		return nil
	}
	out := *d
	out.BaseQuote = d.BaseQuote.Clone()
	out.Cabins = append([]CabinOption{}, d.Cabins...)
	if d.Passengers != nil {
		out.Passengers = append([]Passenger(nil), d.Passengers...)
	}
	if d.Vehicle != nil {
		v := *d.Vehicle
		out.Vehicle = &v
	}
	return &out
}

type Confirmation struct {
	Reference     uuid.UUID     `json:"reference"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Quote         Quote         `json:"quote"`
	Draft         BookingDraft  `json:"booking"`
	ConfirmedAt   time.Time     `json:"confirmedAt"`
}
