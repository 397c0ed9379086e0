package domain

import (
	"regexp"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Sailing is one departure offered by a supplier. The core never mutates it.
type Sailing struct {
	SailingID         string   `json:"sailingId"`
	SupplierID        string   `json:"supplierId"`
	DepartPort        string   `json:"departPort"`
	ArrivePort        string   `json:"arrivePort"`
	DepartTime        string   `json:"departTime"`
	ArriveTime        string   `json:"arriveTime"`
	Vessel            string   `json:"vessel,omitempty"`
	DurationMinutes   int      `json:"durationMinutes"`
	OnBoardFacilities []string `json:"onBoardFacilities,omitempty"`
}

// DepartsOn reports whether the local date of departure equals isoDate
// (YYYY-MM-DD).
func (s Sailing) DepartsOn(isoDate string) bool {
	return isoDate != "" && strings.HasPrefix(s.DepartTime, isoDate)
}

func (s Sailing) DepartAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s.DepartTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DepartureClock returns the local HH:MM of departure, or false when the
// departure time cannot be read.
func (s Sailing) DepartureClock() (string, bool) {
	if t, ok := s.DepartAt(); ok {
		return t.Format("15:04"), true
	}

	i := strings.IndexByte(s.DepartTime, 'T')
	if i < 0 || len(s.DepartTime) < i+6 {
		return "", false
	}
	clock := s.DepartTime[i+1 : i+6]
	if !clockPattern.MatchString(clock) {
		return "", false
	}
	return clock, true
}

func ValidClock(hhmm string) bool {
	return clockPattern.MatchString(hhmm)
}

type Supplier struct {
	SupplierID string `json:"supplierId"`
	Name       string `json:"name"`
	Country    string `json:"country,omitempty"`
}

// TravelMethod is a supplier's vehicle category. Its code keys the method
// surcharge in the fee schedule.
type TravelMethod struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	LengthMin float64 `json:"lengthMin"`
	LengthMax float64 `json:"lengthMax"`
	AddLength bool    `json:"addLength"`
	AddHeight bool    `json:"addHeight,omitempty"`
}

type Route struct {
	DepartPort string   `json:"departPort"`
	ArrivePort string   `json:"arrivePort"`
	Suppliers  []string `json:"suppliers"`
}
